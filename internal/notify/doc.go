// Package notify posts desktop notifications through the
// org.freedesktop.Notifications D-Bus interface. dropdown runs from a key
// binding with no visible terminal, so failures are surfaced this way.
package notify
