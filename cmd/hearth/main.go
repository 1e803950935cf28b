// Hearth is a conversational smart-home controller. It interprets free-text
// commands with deterministic keyword matching and applies them to an
// in-memory model of the household: lights, thermostat, music, security, and
// reminders. Commands arrive over HTTP and, optionally, Matrix chat.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hearth-home/hearth/common/environment"
	"github.com/hearth-home/hearth/common/version"
	"github.com/hearth-home/hearth/internal/hearth/app"
	"github.com/hearth-home/hearth/internal/hearth/matrix"
)

func main() {
	fmt.Println("🏡 Hearth - Conversational Home Controller")
	fmt.Println("Version:", version.Info())
	fmt.Println()

	config, err := loadConfig()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(1)
	}

	application, err := app.New(config)
	if err != nil {
		slog.Error("failed to initialize", "err", err)
		os.Exit(1)
	}
	defer application.Stop()

	if err := application.Run(); err != nil {
		slog.Error("runtime error", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration from environment variables. Only the Matrix
// settings are grouped: setting any of them requires the whole group.
func loadConfig() (*app.Config, error) {
	config := &app.Config{
		HTTPAddr:     environment.StringOr("HEARTH_HTTP_ADDR", ":8084"),
		DatabasePath: environment.StringOr("DATABASE_PATH", "./hearth.db"),
		ProfilePath:  environment.StringOr("HEARTH_PROFILE", ""),
		AdminSenders: environment.StringSliceOr("HEARTH_ADMIN_SENDERS", nil),
		AlertRoom:    environment.StringOr("HEARTH_ALERT_ROOM", ""),
	}

	homeserver, hasHomeserver := environment.String("MATRIX_HOMESERVER")
	if hasHomeserver && homeserver != "" {
		userID, err := environment.RequiredString("MATRIX_USER_ID")
		if err != nil {
			return nil, err
		}
		accessToken, err := environment.RequiredString("MATRIX_ACCESS_TOKEN")
		if err != nil {
			return nil, err
		}
		rooms := environment.StringSliceOr("MATRIX_ADMIN_ROOMS", nil)
		if len(rooms) == 0 {
			return nil, fmt.Errorf("MATRIX_ADMIN_ROOMS must list at least one room when MATRIX_HOMESERVER is set")
		}

		config.Matrix = matrix.Config{
			Homeserver:  homeserver,
			UserID:      userID,
			AccessToken: accessToken,
			Rooms:       rooms,
		}
	} else if config.AlertRoom != "" {
		return nil, fmt.Errorf("HEARTH_ALERT_ROOM requires the Matrix transport (set MATRIX_HOMESERVER)")
	}

	return config, nil
}
