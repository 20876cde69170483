package ipc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrSocketNotFound is returned when no IPC socket path can be determined.
var ErrSocketNotFound = errors.New("window manager IPC socket not found")

// socketEnv lists the variables checked for a socket path, in order.
// i3's is checked first for compatibility with i3 itself.
var socketEnv = []string{"I3SOCK", "SWAYSOCK"}

// socketBinaries are asked for their socket path when no variable is set.
var socketBinaries = []string{"i3", "sway"}

// Locator resolves the IPC socket path.
type Locator struct {
	Getenv func(string) string
	Run    func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultLocator reads the process environment and runs the real binaries.
func DefaultLocator() Locator {
	return Locator{
		Getenv: os.Getenv,
		Run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// SocketPath returns the socket from the environment, or asks the running
// window manager binary via --get-socketpath.
func (l Locator) SocketPath(ctx context.Context) (string, error) {
	for _, name := range socketEnv {
		if path := l.Getenv(name); path != "" {
			return path, nil
		}
	}

	var errs []error
	for _, bin := range socketBinaries {
		out, err := l.Run(ctx, bin, "--get-socketpath")
		if err != nil {
			errs = append(errs, fmt.Errorf("%s --get-socketpath: %w", bin, err))
			continue
		}
		if path := strings.TrimRight(string(out), "\n"); path != "" {
			return path, nil
		}
		errs = append(errs, fmt.Errorf("%s --get-socketpath: empty output", bin))
	}
	return "", fmt.Errorf("%w: %w", ErrSocketNotFound, errors.Join(errs...))
}

// SocketPath resolves the socket with the default locator.
func SocketPath(ctx context.Context) (string, error) {
	return DefaultLocator().SocketPath(ctx)
}
