package overlay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/dropdown/internal/wm"
)

// watchKinds are the event kinds the focus watcher subscribes to.
var watchKinds = []wm.EventKind{wm.EventWindow, wm.EventShutdown}

// FocusWatcher dismisses the overlay once focus moves to another window.
type FocusWatcher struct {
	Events EventStream
	Marker wm.Marker
	// Dismiss closes the overlay.
	Dismiss func(ctx context.Context) error
	Logger  *slog.Logger
}

// Run consumes events until one of:
//   - a window other than the overlay gains focus: Dismiss is called
//   - the overlay window itself closes
//   - the window manager shuts down
//   - ctx is done, or the stream fails or yields an undecodable event
func (w *FocusWatcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for {
		ev, err := w.Events.Next(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("watch focus: %w", ctxErr)
			}
			return &TransportError{Op: "read event", Err: err}
		}

		if ev.Kind == wm.EventShutdown {
			logger.Info("window manager shutting down, stopping focus watch")
			return nil
		}
		if ev.Kind != wm.EventWindow {
			continue
		}

		we, err := wm.DecodeWindowEvent(ev.Payload)
		if err != nil {
			return &DecodeError{What: "window event", Err: err}
		}

		isOverlay := w.Marker.Matches(we.Container)
		switch {
		case we.Change == wm.ChangeClose && isOverlay:
			logger.Debug("overlay window closed by itself", "window", we.Container.ID)
			return nil
		case we.Change != wm.ChangeFocus:
			continue
		case isOverlay:
			logger.Debug("overlay focused", "window", we.Container.ID)
			continue
		}

		logger.Debug("focus left overlay",
			"window", we.Container.ID,
			"identity", w.Marker.Identity(we.Container))
		return w.Dismiss(ctx)
	}
}

// watch opens the event subscription and blocks until the overlay is
// dismissed. Reaching WatchTimeout ends the watch and leaves the overlay open.
func (c *Controller) watch(parent context.Context) error {
	ctx := parent
	if c.opts.WatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, c.opts.WatchTimeout)
		defer cancel()
	}

	events, err := c.subscribe(ctx, watchKinds...)
	if err != nil {
		return &TransportError{Op: "subscribe", Err: err}
	}
	defer events.Close()

	w := &FocusWatcher{
		Events:  events,
		Marker:  c.opts.Marker,
		Dismiss: c.Close,
		Logger:  c.logger,
	}
	err = w.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
		c.logger.Info("focus watch timed out, leaving overlay open", "timeout", c.opts.WatchTimeout)
		return nil
	}
	return err
}
