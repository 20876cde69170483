package overlay

import (
	"strings"

	"github.com/alessio/shellescape"

	"github.com/jmylchreest/dropdown/internal/wm"
)

// Terminal describes how to launch the terminal emulator.
type Terminal struct {
	// Command is the terminal binary, optionally with fixed arguments.
	// It is passed to the shell unquoted.
	Command string
	// AppIDFlag tags the window with an app_id (kitty --class, foot --app-id).
	AppIDFlag string
	// TitleFlag sets the window title.
	TitleFlag string
	// CwdFlag sets the working directory; empty to skip.
	CwdFlag string
	// ExecFlag separates terminal options from the program; empty to skip.
	ExecFlag string
}

// launchCommand builds the shell command line that starts the overlay.
// Every argument except the terminal command itself is shell-escaped.
func (c *Controller) launchCommand(program []string) (string, error) {
	home, ok := c.lookupEnv("HOME")
	if !ok || home == "" {
		return "", &EnvError{Name: "HOME"}
	}

	if len(program) == 0 {
		shell, ok := c.lookupEnv("SHELL")
		if !ok || shell == "" {
			return "", &EnvError{Name: "SHELL"}
		}
		program = []string{shell}
	}

	term := c.opts.Terminal
	markerFlag := term.AppIDFlag
	if c.opts.Marker.Kind == wm.MarkerTitle {
		markerFlag = term.TitleFlag
	}

	parts := []string{term.Command}
	if markerFlag != "" {
		parts = append(parts, markerFlag, shellescape.Quote(c.opts.Marker.Value))
	}
	if term.CwdFlag != "" {
		parts = append(parts, term.CwdFlag, shellescape.Quote(home))
	}
	if term.ExecFlag != "" {
		parts = append(parts, term.ExecFlag)
	}
	for _, arg := range program {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " "), nil
}
