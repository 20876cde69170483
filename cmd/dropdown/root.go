package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dropdown/internal/config"
	"github.com/jmylchreest/dropdown/internal/geometry"
	"github.com/jmylchreest/dropdown/internal/notify"
	"github.com/jmylchreest/dropdown/internal/overlay"
	"github.com/jmylchreest/dropdown/internal/wm"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose     bool
		configPath  string
		socket      string
		marker      string
		titleMarker string
		width       string
		height      string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dropdown [flags] [-- command [args...]]",
	Short: "Dropdown terminal for i3 and sway",
	Long: `dropdown shows, hides or toggles a single floating terminal window on
the active output of a running i3 or sway session.

The overlay opens under the cursor and closes by itself as soon as another
window takes focus. Running dropdown without a subcommand toggles it.

Arguments after -- are run inside the terminal instead of your shell.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return applyOverrides(cfg)
	},
	// Default to toggle when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	fmt.Fprintf(os.Stderr, "dropdown: %v\n", err)
	notifyFailure(err)
	os.Exit(1)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/dropdown/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.socket, "socket", "",
		"Window manager IPC socket (default: $I3SOCK, $SWAYSOCK or --get-socketpath)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.marker, "marker", "",
		"Identify the overlay by this app_id")
	rootCmd.PersistentFlags().StringVar(&globalOpts.titleMarker, "title-marker", "",
		"Identify the overlay by this window title")
	rootCmd.PersistentFlags().StringVar(&globalOpts.width, "width", "",
		"Overlay width in pixels (800), as a fraction (0.3) or percentage (30%)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.height, "height", "",
		"Overlay height in pixels (600), as a fraction (0.4) or percentage (40%)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler).With("run", newRunID())
	slog.SetDefault(logger)
}

// newRunID tags the log lines of one invocation; toggles can race.
func newRunID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "unknown"
	}
	return id.String()
}

// applyOverrides folds command-line flags into c.
func applyOverrides(c *config.Config) error {
	if globalOpts.marker != "" && globalOpts.titleMarker != "" {
		return errors.New("--marker and --title-marker are mutually exclusive")
	}
	if globalOpts.marker != "" {
		c.Marker = config.MarkerConfig{Kind: string(wm.MarkerAppID), Value: globalOpts.marker}
	}
	if globalOpts.titleMarker != "" {
		c.Marker = config.MarkerConfig{Kind: string(wm.MarkerTitle), Value: globalOpts.titleMarker}
	}
	if globalOpts.socket != "" {
		c.IPC.Socket = globalOpts.socket
	}
	return c.Validate()
}

// buildRequest turns the size flags and trailing arguments into a Request.
func buildRequest(args []string) (overlay.Request, error) {
	width, err := geometry.ParseSize(globalOpts.width)
	if err != nil {
		return overlay.Request{}, fmt.Errorf("--width: %w", err)
	}
	height, err := geometry.ParseSize(globalOpts.height)
	if err != nil {
		return overlay.Request{}, fmt.Errorf("--height: %w", err)
	}
	return overlay.Request{Width: width, Height: height, Command: args}, nil
}

// notifyFailure mirrors err as a desktop notification when configured.
// dropdown usually runs from a key binding where stderr is not visible.
func notifyFailure(err error) {
	if cfg == nil || !cfg.Notify.OnError {
		return
	}
	_, nerr := notify.Send(notify.Message{
		AppName: "dropdown",
		Icon:    "utilities-terminal",
		Summary: "dropdown failed",
		Body:    err.Error(),
		Urgency: notify.UrgencyCritical,
		Expiry:  cfg.Notify.Expiry.Duration(),
	})
	if nerr != nil && logger != nil {
		logger.Warn("failed to send notification", "error", nerr)
	}
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
