// Package ipc is a client for the i3 IPC protocol spoken by i3 and sway.
// It frames requests over the window manager's UNIX socket, runs commands
// and queries, and turns a dedicated connection into an event stream.
package ipc
