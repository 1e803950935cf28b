// Package app wires the Hearth engine to its transports: the HTTP command
// endpoint, the optional Matrix chat client, the transcript store, and the
// alert-room notifier.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"maunium.net/go/mautrix/event"

	"github.com/hearth-home/hearth/common/trace"
	"github.com/hearth-home/hearth/internal/hearth/audit"
	"github.com/hearth-home/hearth/internal/hearth/engine"
	"github.com/hearth-home/hearth/internal/hearth/matrix"
	"github.com/hearth-home/hearth/internal/hearth/profile"
	"github.com/hearth-home/hearth/internal/hearth/store"
)

// Config holds application configuration.
type Config struct {
	// DatabasePath is the SQLite transcript database location.
	DatabasePath string
	// HTTPAddr is the TCP address of the HTTP transport (e.g. ":8084").
	HTTPAddr string
	// ProfilePath optionally points at a home profile YAML file. When empty
	// the built-in default home is used.
	ProfilePath string
	// Matrix enables the Matrix transport when Homeserver is non-empty.
	Matrix matrix.Config
	// AdminSenders is an optional allowlist of Matrix user IDs permitted to
	// command the home. When empty, any room member can send commands.
	AdminSenders []string
	// AlertRoom is an optional Matrix room ID where security arm/disarm
	// notices are posted. Requires the Matrix transport.
	AlertRoom string
}

// App is the assembled Hearth application.
type App struct {
	config   *Config
	store    *store.Store
	engine   *engine.Engine
	matrix   *matrix.Client
	server   *Server
	notifier audit.Notifier

	// mu serialises engine access. The engine applies one command at a
	// time; transports must never interleave calls.
	mu sync.Mutex
}

// New assembles a Hearth application from config.
func New(config *Config) (*App, error) {
	prof := profile.Default()
	if config.ProfilePath != "" {
		p, err := profile.Load(config.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load home profile: %w", err)
		}
		prof = p
		slog.Info("home profile loaded", "path", config.ProfilePath, "rooms", len(prof.Rooms))
	} else {
		slog.Info("using built-in home profile", "rooms", len(prof.Rooms))
	}

	slog.Info("opening database", "path", config.DatabasePath)
	st, err := store.New(config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	eng := engine.New(prof.EngineConfig())

	a := &App{
		config:   config,
		store:    st,
		engine:   eng,
		notifier: audit.Noop{},
	}

	if config.Matrix.Homeserver != "" {
		matrixCfg := config.Matrix
		matrixCfg.DB = st.DB()
		slog.Info("connecting to Matrix", "homeserver", matrixCfg.Homeserver)
		mc, err := matrix.New(&matrixCfg)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to initialize Matrix client: %w", err)
		}
		a.matrix = mc

		if config.AlertRoom != "" {
			a.notifier = audit.NewMatrixNotifier(mc, config.AlertRoom)
			slog.Info("alert room notifier ready", "room", config.AlertRoom)
		}
	}

	a.server = NewServer(config.HTTPAddr, a)
	return a, nil
}

// Run starts the transports and blocks until SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	if a.matrix != nil {
		slog.Info("starting Matrix sync")
		if err := a.matrix.Start(ctx, a.handleMessage); err != nil {
			return fmt.Errorf("failed to start Matrix client: %w", err)
		}
		for _, roomID := range a.config.Matrix.Rooms {
			a.matrix.SendNotice(roomID, "🏡 Hearth is listening. Try \"turn on the living room lights\" or \"status\".")
		}
	}

	slog.Info("Hearth is running; press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down")
	return nil
}

// Stop shuts down the transports and closes the database.
func (a *App) Stop() {
	if a.matrix != nil {
		slog.Info("stopping Matrix client")
		a.matrix.Stop()
	}

	slog.Info("stopping HTTP server")
	a.server.Stop()

	slog.Info("closing database")
	a.store.Close()
}

// Execute runs one command through the engine, records it in the
// transcript, and posts an alert when the security arming state changed.
// The engine itself never fails; the returned error covers bookkeeping only
// and is already logged by the time Execute returns.
func (a *App) Execute(ctx context.Context, source, actor, raw string) engine.Response {
	traceID := trace.GenerateID()
	ctx = trace.WithTraceID(ctx, traceID)

	a.mu.Lock()
	armedBefore := a.engine.Snapshot().Security.Armed
	resp := a.engine.Process(raw)
	a.mu.Unlock()

	slog.Info("command processed",
		"trace", traceID,
		"source", source,
		"actions", len(resp.Actions),
	)

	if err := a.store.WriteTranscript(ctx, &store.TranscriptEntry{
		TraceID: traceID,
		Source:  source,
		Actor:   actor,
		Command: strings.TrimSpace(raw),
		Reply:   resp.Reply,
		Actions: resp.Actions,
	}); err != nil {
		slog.Warn("transcript write failed", "trace", traceID, "err", err)
	}

	if armedAfter := resp.State.Security.Armed; armedAfter != armedBefore {
		kind := audit.KindSecurityDisarmed
		if armedAfter {
			kind = audit.KindSecurityArmed
		}
		a.notifier.Notify(ctx, audit.Event{
			Kind:    kind,
			Actor:   actor,
			Message: resp.Reply,
			TraceID: traceID,
		})
	}

	return resp
}

// handleMessage processes incoming Matrix messages.
func (a *App) handleMessage(ctx context.Context, evt *event.Event) {
	msgContent := evt.Content.AsMessage()
	if msgContent == nil {
		return
	}

	// Enforce the sender allowlist when configured.
	if len(a.config.AdminSenders) > 0 {
		sender := evt.Sender.String()
		allowed := false
		for _, s := range a.config.AdminSenders {
			if s == sender {
				allowed = true
				break
			}
		}
		if !allowed {
			return
		}
	}

	resp := a.Execute(ctx, "matrix", evt.Sender.String(), msgContent.Body)

	reply := resp.Reply
	if len(resp.Actions) > 0 {
		var sb strings.Builder
		sb.WriteString(reply)
		sb.WriteString("\n\n")
		for _, action := range resp.Actions {
			sb.WriteString("• ")
			sb.WriteString(action)
			sb.WriteString("\n")
		}
		reply = strings.TrimRight(sb.String(), "\n")
	}

	htmlBody := markdownToHTML(reply)
	if err := a.matrix.SendFormattedMessage(evt.RoomID.String(), htmlBody, reply); err != nil {
		slog.Error("failed to send response", "room", evt.RoomID.String(), "err", err)
	}
}

// markdownToHTML converts the small subset of Markdown produced by Hearth
// replies into HTML suitable for a Matrix m.text event with
// format=org.matrix.custom.html: bold, inline code, and newlines.
func markdownToHTML(md string) string {
	escaped := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(md)

	// Inline code: `…`
	result := replaceDelimited(escaped, "`", "<code>", "</code>")

	// Bold: **…**
	result = replaceDelimited(result, "**", "<strong>", "</strong>")

	return strings.ReplaceAll(result, "\n", "<br/>")
}

// replaceDelimited replaces occurrences of delim…delim with open+content+close.
// Only complete pairs are replaced; an unmatched opener is left as-is.
func replaceDelimited(s, delim, open, close string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, delim)
		if start == -1 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start+len(delim):], delim)
		if end == -1 {
			b.WriteString(s)
			break
		}
		end += start + len(delim) // absolute index of closing delim
		b.WriteString(s[:start])
		b.WriteString(open)
		b.WriteString(s[start+len(delim) : end])
		b.WriteString(close)
		s = s[end+len(delim):]
	}
	return b.String()
}
