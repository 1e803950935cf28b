// Package audit provides the alert-room notification subsystem.
//
// When configured with a Matrix room ID (HEARTH_ALERT_ROOM), Hearth posts
// concise human-readable notices for security-relevant household events so
// residents see them without scrolling the command transcript.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hearth-home/hearth/common/trace"
)

// Kind is a machine-readable event category.
type Kind string

const (
	KindSecurityArmed    Kind = "security.armed"
	KindSecurityDisarmed Kind = "security.disarmed"
	KindReset            Kind = "household.reset"
)

// Event carries the data the notifier formats and sends.
type Event struct {
	Kind Kind
	// Actor is who triggered the event (Matrix user ID or HTTP peer).
	Actor string
	// Message is a human-friendly description of what happened.
	Message string
	// TraceID ties the notice back to the transcript entry. When empty the
	// value is taken from the context.
	TraceID string
	// Timestamp defaults to time.Now() when zero.
	Timestamp time.Time
}

// Notifier sends alert-room notifications. Implementations must not block
// the caller for long; send failures are logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, evt Event)
}

// Sender is the subset of the Matrix client the notifier needs. Defined as
// an interface so the notifier can be unit-tested independently.
type Sender interface {
	SendNotice(roomID, message string) error
}

// MatrixNotifier posts formatted notices to a Matrix alert room.
type MatrixNotifier struct {
	sender Sender
	roomID string
}

// NewMatrixNotifier creates a MatrixNotifier that posts to roomID via sender.
func NewMatrixNotifier(sender Sender, roomID string) *MatrixNotifier {
	return &MatrixNotifier{sender: sender, roomID: roomID}
}

// Notify formats evt as a notice and posts it to the alert room.
func (n *MatrixNotifier) Notify(ctx context.Context, evt Event) {
	if n.roomID == "" {
		return
	}

	tid := evt.TraceID
	if tid == "" {
		tid = trace.FromContext(ctx)
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	msg := fmt.Sprintf("%s [%s] %s", kindIcon(evt.Kind), evt.Kind, evt.Message)
	if evt.Actor != "" {
		msg = fmt.Sprintf("%s\n  by: %s", msg, evt.Actor)
	}
	if tid != "" {
		msg = fmt.Sprintf("%s\n  trace: %s", msg, tid)
	}

	if err := n.sender.SendNotice(n.roomID, msg); err != nil {
		slog.Warn("audit notifier: failed to send room notice",
			"room", n.roomID, "kind", evt.Kind, "err", err)
	}
}

// kindIcon picks the notice icon for a kind.
func kindIcon(k Kind) string {
	switch k {
	case KindSecurityArmed:
		return "🔒"
	case KindSecurityDisarmed:
		return "🔓"
	case KindReset:
		return "↩️"
	default:
		return "ℹ️"
	}
}

// Noop is the default Notifier when no alert room is configured.
type Noop struct{}

// Notify discards the event.
func (Noop) Notify(ctx context.Context, evt Event) {}
