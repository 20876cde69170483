package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jmylchreest/dropdown/internal/config"
	"github.com/jmylchreest/dropdown/internal/geometry"
	"github.com/jmylchreest/dropdown/internal/ipc"
	"github.com/jmylchreest/dropdown/internal/overlay"
	"github.com/jmylchreest/dropdown/internal/wm"
)

// connect dials the window manager and returns a controller bound to it.
// The returned closer releases the request connection.
func connect(ctx context.Context) (*overlay.Controller, io.Closer, error) {
	c := getConfig()

	socket := c.IPC.Socket
	if socket == "" {
		var err error
		socket, err = ipc.SocketPath(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("locate window manager: %w (%w)", err, overlay.ErrEnvironmentMissing)
		}
	}

	conn, err := ipc.Dial(ctx, socket, logger)
	if err != nil {
		return nil, nil, &overlay.TransportError{Op: "connect", Err: err}
	}

	// Subscriptions get their own socket; a subscribed connection only
	// carries events.
	subscribe := func(ctx context.Context, kinds ...wm.EventKind) (overlay.EventStream, error) {
		events, err := ipc.Dial(ctx, socket, logger)
		if err != nil {
			return nil, err
		}
		stream, err := events.Subscribe(ctx, kinds...)
		if err != nil {
			events.Close()
			return nil, err
		}
		return stream, nil
	}

	return overlay.New(conn, subscribe, controllerOptions(c)), conn, nil
}

// controllerOptions maps configuration onto overlay options.
func controllerOptions(c *config.Config) overlay.Options {
	return overlay.Options{
		Marker: c.OverlayMarker(),
		Defaults: geometry.Defaults{
			Width:  c.Geometry.Width,
			Height: c.Geometry.Height,
		},
		OffsetY: c.Geometry.OffsetY,
		Focus:   c.Geometry.Focus,
		Terminal: overlay.Terminal{
			Command:   c.Terminal.Command,
			AppIDFlag: c.Terminal.AppIDFlag,
			TitleFlag: c.Terminal.TitleFlag,
			CwdFlag:   c.Terminal.CwdFlag,
			ExecFlag:  c.Terminal.ExecFlag,
		},
		WatchTimeout: c.IPC.WatchTimeout.Duration(),
		Logger:       logger,
	}
}
