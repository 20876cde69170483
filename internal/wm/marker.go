package wm

import (
	"fmt"
	"regexp"
	"strings"
)

// MarkerKind selects which window attribute identifies the overlay.
type MarkerKind string

const (
	// MarkerAppID matches the Wayland app_id, or the X11 class when no
	// app_id is set.
	MarkerAppID MarkerKind = "app_id"
	// MarkerTitle matches the window title.
	MarkerTitle MarkerKind = "title"
)

// ParseMarkerKind validates a marker kind name.
func ParseMarkerKind(s string) (MarkerKind, error) {
	switch MarkerKind(strings.ToLower(strings.TrimSpace(s))) {
	case MarkerAppID, "":
		return MarkerAppID, nil
	case MarkerTitle:
		return MarkerTitle, nil
	default:
		return "", fmt.Errorf("unknown marker kind %q (want app_id or title)", s)
	}
}

// Marker identifies the overlay window among all managed windows.
type Marker struct {
	Kind  MarkerKind
	Value string
}

// Identity returns the attribute of w that is compared against the marker.
func (m Marker) Identity(w Window) string {
	if m.Kind == MarkerTitle {
		return w.Title
	}
	if w.AppID != "" {
		return w.AppID
	}
	return w.Class
}

// Matches reports whether w is the overlay window.
func (m Marker) Matches(w Window) bool {
	return m.Identity(w) == m.Value
}

// Criteria renders the marker as the window criteria selecting every window
// Matches accepts, e.g. [app_id="^dropdown$"]. An app_id marker also covers
// the X11 class: both on sway (XWayland) and class alone on i3.
// Criteria values are regular expressions, so the marker is escaped and anchored.
func (m Marker) Criteria(f Flavor) []string {
	var attrs []string
	switch {
	case m.Kind == MarkerTitle:
		attrs = []string{"title"}
	case f == FlavorI3:
		attrs = []string{"class"}
	default:
		attrs = []string{"app_id", "class"}
	}

	pattern := "^" + regexp.QuoteMeta(m.Value) + "$"
	pattern = strings.ReplaceAll(pattern, `"`, `\"`)

	criteria := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		criteria = append(criteria, fmt.Sprintf(`[%s="%s"]`, attr, pattern))
	}
	return criteria
}

// String returns kind=value, for logging.
func (m Marker) String() string {
	return string(m.Kind) + "=" + m.Value
}
