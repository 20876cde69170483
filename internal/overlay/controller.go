package overlay

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmylchreest/dropdown/internal/geometry"
	"github.com/jmylchreest/dropdown/internal/wm"
)

// Options configures a Controller.
type Options struct {
	Marker   wm.Marker
	Defaults geometry.Defaults
	// OffsetY nudges the overlay below the cursor position.
	OffsetY int
	// Focus grants the overlay input focus when it maps.
	Focus    bool
	Terminal Terminal
	// WatchTimeout bounds the focus watch; zero waits indefinitely.
	WatchTimeout time.Duration
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	Logger    *slog.Logger
}

// Request holds the per-invocation inputs of Open and Toggle.
type Request struct {
	Width  geometry.Size
	Height geometry.Size
	// Command runs inside the overlay; the user's shell when empty.
	Command []string
}

// Controller drives the overlay window through the window manager.
// It keeps no state of its own between invocations.
type Controller struct {
	transport Transport
	subscribe SubscribeFunc
	opts      Options
	logger    *slog.Logger
}

// New creates a Controller issuing commands over t and watching focus on
// connections opened by subscribe.
func New(t Transport, subscribe SubscribeFunc, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		transport: t,
		subscribe: subscribe,
		opts:      opts,
		logger:    logger.With("marker", opts.Marker.String()),
	}
}

func (c *Controller) lookupEnv(name string) (string, bool) {
	if c.opts.LookupEnv != nil {
		return c.opts.LookupEnv(name)
	}
	return os.LookupEnv(name)
}

// Windows returns every window carrying the overlay marker.
func (c *Controller) Windows(ctx context.Context) ([]wm.Window, error) {
	body, err := c.transport.Query(ctx, wm.QueryWindows)
	if err != nil {
		return nil, &TransportError{Op: wm.QueryWindows.String(), Err: err}
	}
	tree, err := wm.DecodeTree(body)
	if err != nil {
		return nil, &DecodeError{What: "window tree", Err: err}
	}
	return tree.Find(c.opts.Marker), nil
}

// Exists reports whether an overlay window is currently open.
func (c *Controller) Exists(ctx context.Context) (bool, error) {
	windows, err := c.Windows(ctx)
	if err != nil {
		return false, err
	}
	return len(windows) > 0, nil
}

// Toggle closes the overlay if it is open and opens it otherwise.
func (c *Controller) Toggle(ctx context.Context, req Request) error {
	exists, err := c.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check overlay: %w", err)
	}
	if exists {
		return c.Close(ctx)
	}
	return c.open(ctx, req)
}

// Open launches the overlay and blocks until focus leaves it. It does
// nothing if an overlay window already exists.
func (c *Controller) Open(ctx context.Context, req Request) error {
	exists, err := c.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check overlay: %w", err)
	}
	if exists {
		c.logger.Info("overlay already open")
		return nil
	}
	return c.open(ctx, req)
}

func (c *Controller) open(ctx context.Context, req Request) error {
	warp := c.pointerWarp(ctx)

	// Everything that can fail without side effects happens first.
	flavor, err := c.flavor(ctx)
	if err != nil {
		return err
	}
	dims, out, err := c.dimensions(ctx, req)
	if err != nil {
		return err
	}
	cmdline, err := c.launchCommand(req.Command)
	if err != nil {
		return fmt.Errorf("build launch command: %w", err)
	}

	c.logger.Debug("opening overlay",
		"wm", flavor,
		"output", out.Name,
		"width", dims.Width,
		"height", dims.Height,
		"pointer_warp", warp)

	if err := c.command(ctx, wm.SetConfigValue(wm.PointerWarpSetting, wm.PointerWarpDisabled)); err != nil {
		return fmt.Errorf("disable pointer warping: %w", err)
	}

	rules := wm.OverlayRules(c.opts.Marker, wm.RuleOptions{
		Flavor:  flavor,
		Size:    dims,
		OffsetY: c.opts.OffsetY,
		Focus:   c.opts.Focus,
	})
	for _, rule := range rules {
		if err := c.command(ctx, rule); err != nil {
			return fmt.Errorf("apply window rule: %w", err)
		}
	}

	if err := c.command(ctx, wm.Exec(cmdline)); err != nil {
		return fmt.Errorf("launch terminal: %w", err)
	}

	if err := c.command(ctx, wm.SetConfigValue(wm.PointerWarpSetting, warp)); err != nil {
		return fmt.Errorf("restore pointer warping: %w", err)
	}

	c.logger.Info("overlay launched", "command", cmdline)
	return c.watch(ctx)
}

// Close closes every overlay window. It is not an error if none is open.
func (c *Controller) Close(ctx context.Context) error {
	windows, err := c.Windows(ctx)
	if err != nil {
		return fmt.Errorf("list overlay windows: %w", err)
	}
	for _, w := range windows {
		if err := c.command(ctx, wm.CloseWindow(w.ID)); err != nil {
			return fmt.Errorf("close overlay window %d: %w", w.ID, err)
		}
		c.logger.Info("overlay closed", "window", w.ID)
	}
	if len(windows) == 0 {
		c.logger.Debug("no overlay window to close")
	}
	return nil
}

func (c *Controller) command(ctx context.Context, cmd string) error {
	if err := c.transport.Command(ctx, cmd); err != nil {
		return &TransportError{Op: "command " + cmd, Err: err}
	}
	return nil
}

// dimensions resolves the overlay size against the active output.
func (c *Controller) dimensions(ctx context.Context, req Request) (geometry.Dimensions, geometry.Output, error) {
	body, err := c.transport.Query(ctx, wm.QueryOutputs)
	if err != nil {
		return geometry.Dimensions{}, geometry.Output{}, &TransportError{Op: wm.QueryOutputs.String(), Err: err}
	}
	outputs, err := wm.DecodeOutputs(body)
	if err != nil {
		return geometry.Dimensions{}, geometry.Output{}, &DecodeError{What: "outputs", Err: err}
	}
	dims, out, err := geometry.ResolveDimensions(outputs, req.Width, req.Height, c.opts.Defaults)
	if err != nil {
		return geometry.Dimensions{}, geometry.Output{}, fmt.Errorf("resolve overlay size: %w", err)
	}
	return dims, out, nil
}

// flavor asks which window manager is running; the window rules depend on it.
func (c *Controller) flavor(ctx context.Context) (wm.Flavor, error) {
	body, err := c.transport.Query(ctx, wm.QueryVersion)
	if err != nil {
		return "", &TransportError{Op: wm.QueryVersion.String(), Err: err}
	}
	flavor, err := wm.DecodeVersion(body)
	if err != nil {
		return "", &DecodeError{What: "version", Err: err}
	}
	return flavor, nil
}

// pointerWarp reads the current pointer-warp setting. The setting is
// cosmetic, so failures fall back to the disabled value.
func (c *Controller) pointerWarp(ctx context.Context) string {
	body, err := c.transport.Query(ctx, wm.QueryConfig)
	if err != nil {
		c.logger.Warn("failed to read pointer warp setting, assuming disabled", "error", err)
		return wm.PointerWarpDisabled
	}
	text, err := wm.DecodeConfig(body)
	if err != nil {
		c.logger.Warn("failed to decode config, assuming pointer warp disabled", "error", err)
		return wm.PointerWarpDisabled
	}
	if value, ok := wm.ConfigValue(text, wm.PointerWarpSetting); ok {
		return value
	}
	return wm.PointerWarpDefault
}
