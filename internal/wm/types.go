package wm

// Query selects a structured window-manager query.
type Query int

const (
	// QueryWindows returns the layout tree (outputs, workspaces, windows).
	QueryWindows Query = iota
	// QueryOutputs returns the list of outputs.
	QueryOutputs
	// QueryConfig returns the loaded configuration text.
	QueryConfig
	// QueryVersion identifies the window manager.
	QueryVersion
)

// String returns a human readable description, used in error context.
func (q Query) String() string {
	switch q {
	case QueryWindows:
		return "list windows"
	case QueryOutputs:
		return "list outputs"
	case QueryConfig:
		return "read config"
	case QueryVersion:
		return "read version"
	default:
		return "unknown query"
	}
}

// EventKind names an event class that can be subscribed to.
type EventKind string

const (
	EventWindow    EventKind = "window"
	EventWorkspace EventKind = "workspace"
	EventShutdown  EventKind = "shutdown"
)

// Event is a raw event delivered by a subscription.
type Event struct {
	Kind    EventKind
	Payload []byte
}

// Window change values carried by window events.
const (
	ChangeFocus = "focus"
	ChangeClose = "close"
)

// Flavor is the window manager on the other end of the socket. They share
// the protocol but not every criterion: i3 has no app_id.
type Flavor string

const (
	FlavorI3   Flavor = "i3"
	FlavorSway Flavor = "sway"
)
