package notify

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	method     = busName + ".Notify"
)

// Urgency levels defined by the freedesktop notification specification.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Message is a single notification.
type Message struct {
	AppName string
	Icon    string
	Summary string
	Body    string
	Urgency Urgency
	// Expiry of zero leaves the timeout to the notification server.
	Expiry time.Duration
}

// Caller is the subset of a D-Bus object used to post notifications.
type Caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Send posts msg on the session bus and returns the server-assigned ID.
func Send(msg Message) (uint32, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return 0, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return SendTo(conn.Object(busName, objectPath), msg)
}

// SendTo posts msg through obj.
func SendTo(obj Caller, msg Message) (uint32, error) {
	var id uint32
	call := obj.Call(method, 0, msg.args()...)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify reply: %w", err)
	}
	return id, nil
}

// args lays out Notify(app_name, replaces_id, app_icon, summary, body,
// actions, hints, expire_timeout).
func (m Message) args() []any {
	return []any{
		m.AppName,
		uint32(0),
		m.Icon,
		m.Summary,
		m.Body,
		[]string{},
		map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(m.Urgency))},
		expireTimeout(m.Expiry),
	}
}

// expireTimeout converts d to the milliseconds Notify expects, -1 meaning
// the server default.
func expireTimeout(d time.Duration) int32 {
	if d <= 0 {
		return -1
	}
	return int32(d.Milliseconds())
}
