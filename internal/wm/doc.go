// Package wm defines the vocabulary spoken to an i3-compatible window
// manager: query and event kinds, decoding of the window tree, outputs and
// window events, overlay markers and the text commands built from them.
package wm
