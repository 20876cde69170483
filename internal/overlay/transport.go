package overlay

import (
	"context"

	"github.com/jmylchreest/dropdown/internal/wm"
)

// Transport is the request/response side of the window manager connection.
type Transport interface {
	// Query runs a structured query and returns the raw reply body.
	Query(ctx context.Context, q wm.Query) ([]byte, error)
	// Command runs a text command and waits for it to be applied.
	Command(ctx context.Context, cmd string) error
}

// EventStream is an unbounded, ordered sequence of window-manager events.
type EventStream interface {
	// Next blocks until an event arrives or ctx is done.
	Next(ctx context.Context) (wm.Event, error)
	Close() error
}

// SubscribeFunc opens an independent connection subscribed to kinds.
// It is kept apart from the Transport because a subscribed socket can no
// longer carry request/response pairs.
type SubscribeFunc func(ctx context.Context, kinds ...wm.EventKind) (EventStream, error)
