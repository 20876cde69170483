package wm

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmylchreest/dropdown/internal/geometry"
)

// DecodeOutputs decodes a GET_OUTPUTS response body. An empty body yields
// no outputs.
func DecodeOutputs(body []byte) ([]geometry.Output, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var outputs []geometry.Output
	if err := json.Unmarshal(body, &outputs); err != nil {
		return nil, fmt.Errorf("decode outputs: %w", err)
	}
	return outputs, nil
}

// DecodeConfig extracts the configuration text from a GET_CONFIG response.
func DecodeConfig(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}
	var reply struct {
		Config string `json:"config"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return "", fmt.Errorf("decode config: %w", err)
	}
	return reply.Config, nil
}

// ConfigValue returns the argument of the last top-level directive named key
// in config text. Comments and blank lines are skipped.
func ConfigValue(config, key string) (string, bool) {
	var (
		value string
		found bool
	)
	scanner := bufio.NewScanner(strings.NewReader(config))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != key {
			continue
		}
		value, found = fields[1], true
	}
	return value, found
}

// DecodeVersion identifies the window manager from a GET_VERSION response.
// sway reports itself in variant and human_readable; anything else is i3.
func DecodeVersion(body []byte) (Flavor, error) {
	var raw struct {
		HumanReadable string `json:"human_readable"`
		Variant       string `json:"variant"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode version: %w", err)
	}
	if raw.Variant == string(FlavorSway) || strings.Contains(strings.ToLower(raw.HumanReadable), "sway") {
		return FlavorSway, nil
	}
	return FlavorI3, nil
}

// WindowEvent is a decoded "window" event.
type WindowEvent struct {
	Change    string
	Container Window
}

// DecodeWindowEvent decodes the payload of a window event.
func DecodeWindowEvent(payload []byte) (WindowEvent, error) {
	var raw struct {
		Change    string `json:"change"`
		Container *node  `json:"container"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return WindowEvent{}, fmt.Errorf("decode window event: %w", err)
	}
	if raw.Change == "" {
		return WindowEvent{}, fmt.Errorf("decode window event: missing change")
	}
	ev := WindowEvent{Change: raw.Change}
	if raw.Container != nil {
		ev.Container = raw.Container.window()
	}
	return ev, nil
}
