package wm

import (
	"fmt"

	"github.com/jmylchreest/dropdown/internal/geometry"
)

// Pointer warping knob and the value that disables it.
const (
	PointerWarpSetting  = "mouse_warping"
	PointerWarpDisabled = "none"
	// PointerWarpDefault is the value in effect when the config never sets it.
	PointerWarpDefault = "output"
)

// SetConfigValue sets a runtime configuration knob.
func SetConfigValue(key, value string) string {
	return key + " " + value
}

// RuleOptions controls the window rules applied to the overlay.
type RuleOptions struct {
	Flavor  Flavor
	Size    geometry.Dimensions
	OffsetY int
	Focus   bool
}

// OverlayRules returns the for_window rules scoped to the marker: floating,
// resize, position at the cursor, nudge downward and optionally focus. The
// set is repeated for each criterion the marker renders to.
//
// for_window rules cannot be removed, so every open adds another set. Rules
// run in order, so the newest size and position win.
func OverlayRules(m Marker, opts RuleOptions) []string {
	var rules []string
	for _, criteria := range m.Criteria(opts.Flavor) {
		rules = append(rules, criteriaRules(criteria, opts)...)
	}
	return rules
}

func criteriaRules(criteria string, opts RuleOptions) []string {
	rules := []string{
		fmt.Sprintf("for_window %s floating enable", criteria),
		fmt.Sprintf("for_window %s resize set width %d px height %d px", criteria, opts.Size.Width, opts.Size.Height),
		fmt.Sprintf("for_window %s move position cursor", criteria),
	}
	if opts.OffsetY != 0 {
		dir := "down"
		offset := opts.OffsetY
		if offset < 0 {
			dir, offset = "up", -offset
		}
		rules = append(rules, fmt.Sprintf("for_window %s move %s %d px", criteria, dir, offset))
	}
	if opts.Focus {
		rules = append(rules, fmt.Sprintf("for_window %s focus", criteria))
	}
	return rules
}

// Exec launches a shell command line through the window manager.
func Exec(cmdline string) string {
	return "exec " + cmdline
}

// CloseWindow closes a single window by its container id.
func CloseWindow(id int64) string {
	return fmt.Sprintf("[con_id=%d] kill", id)
}
