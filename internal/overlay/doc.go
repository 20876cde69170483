// Package overlay implements the dropdown terminal: a stateless toggle that
// derives "open" from the window manager's window list, applies window rules
// for the overlay marker, launches the terminal and then watches focus
// events to dismiss the overlay as soon as focus moves elsewhere.
package overlay
