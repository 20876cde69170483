package overlay

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmylchreest/dropdown/internal/geometry"
	"github.com/jmylchreest/dropdown/internal/wm"
)

const (
	oneOutput   = `[{"name": "eDP-1", "active": true, "focused": true, "rect": {"x": 0, "y": 0, "width": 1920, "height": 1080}}]`
	noOutputs   = `[{"name": "eDP-1", "active": false, "rect": {"x": 0, "y": 0, "width": 0, "height": 0}}]`
	warpConfig  = `{"config": "set $mod Mod4\nmouse_warping container\n"}`
	swayVersion = `{"human_readable": "sway version 1.10", "variant": "sway", "major": 1, "minor": 10}`
	i3Version   = `{"human_readable": "4.23 (2023-10-29)", "major": 4, "minor": 23}`
	overlayID   = 12
)

// treeWith renders a GET_TREE body holding one foot window and, optionally,
// the overlay.
func treeWith(overlay bool) string {
	floating := "[]"
	if overlay {
		floating = fmt.Sprintf(`[{"id": %d, "name": "dropdown", "type": "floating_con", "app_id": "dropdown", "nodes": [], "floating_nodes": []}]`, overlayID)
	}
	return fmt.Sprintf(`{"type": "root", "nodes": [{"name": "eDP-1", "type": "output", "nodes": [
		{"name": "1", "type": "workspace",
			"nodes": [{"id": 10, "name": "vim", "type": "con", "app_id": "foot", "nodes": [], "floating_nodes": []}],
			"floating_nodes": %s}
	]}]}`, floating)
}

// classTreeWith is treeWith as i3 reports it: X11 windows carry a class in
// window_properties and no app_id.
func classTreeWith(overlay bool) string {
	floating := "[]"
	if overlay {
		floating = fmt.Sprintf(`[{"id": %d, "name": "dropdown", "type": "floating_con",
			"window_properties": {"class": "dropdown", "title": "dropdown"}, "nodes": [], "floating_nodes": []}]`, overlayID)
	}
	return fmt.Sprintf(`{"type": "root", "nodes": [{"name": "eDP-1", "type": "output", "nodes": [
		{"name": "content", "type": "con", "nodes": [
			{"name": "1", "type": "workspace",
				"nodes": [{"id": 10, "name": "vim", "type": "con", "window_properties": {"class": "URxvt"}, "nodes": [], "floating_nodes": []}],
				"floating_nodes": %s}
		]}
	]}]}`, floating)
}

// fakeWM is a scripted in-memory window manager. Exec commands map the
// overlay and kill commands unmap it.
type fakeWM struct {
	mu sync.Mutex

	// render draws the tree with or without the overlay mapped.
	render     func(overlay bool) string
	tree       string
	outputs    string
	config     string
	version    string
	queryErr   map[wm.Query]error
	commandErr map[string]error

	commands   []string
	events     []wm.Event
	streamErr  error
	subscribed [][]wm.EventKind
}

func newFakeWM() *fakeWM {
	return &fakeWM{
		render:     treeWith,
		tree:       treeWith(false),
		outputs:    oneOutput,
		config:     warpConfig,
		version:    swayVersion,
		queryErr:   map[wm.Query]error{},
		commandErr: map[string]error{},
	}
}

func (f *fakeWM) Query(_ context.Context, q wm.Query) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.queryErr[q]; err != nil {
		return nil, err
	}
	switch q {
	case wm.QueryWindows:
		return []byte(f.tree), nil
	case wm.QueryOutputs:
		return []byte(f.outputs), nil
	case wm.QueryConfig:
		return []byte(f.config), nil
	case wm.QueryVersion:
		return []byte(f.version), nil
	}
	return nil, fmt.Errorf("unexpected query %v", q)
}

func (f *fakeWM) Command(_ context.Context, cmd string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.commands = append(f.commands, cmd)
	if err := f.commandErr[cmd]; err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(cmd, "exec "):
		f.tree = f.render(true)
	case cmd == wm.CloseWindow(overlayID):
		f.tree = f.render(false)
	}
	return nil
}

func (f *fakeWM) Subscribe(_ context.Context, kinds ...wm.EventKind) (EventStream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.subscribed = append(f.subscribed, kinds)
	events := f.events
	f.events = nil
	return &fakeStream{events: events, err: f.streamErr}, nil
}

func (f *fakeWM) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

// count returns how many issued commands equal cmd.
func (f *fakeWM) count(cmd string) int {
	n := 0
	for _, c := range f.Commands() {
		if c == cmd {
			n++
		}
	}
	return n
}

// fakeStream replays events, then fails with err or blocks until ctx is done.
type fakeStream struct {
	events []wm.Event
	err    error
	closed bool
}

func (s *fakeStream) Next(ctx context.Context) (wm.Event, error) {
	if len(s.events) > 0 {
		ev := s.events[0]
		s.events = s.events[1:]
		return ev, nil
	}
	if s.err != nil {
		return wm.Event{}, s.err
	}
	<-ctx.Done()
	return wm.Event{}, ctx.Err()
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

func focusEvent(id int64, appID string) wm.Event {
	return wm.Event{
		Kind:    wm.EventWindow,
		Payload: []byte(fmt.Sprintf(`{"change": "focus", "container": {"id": %d, "app_id": %q}}`, id, appID)),
	}
}

func testEnv(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func defaultEnv() func(string) (string, bool) {
	return testEnv(map[string]string{"HOME": "/home/user", "SHELL": "/bin/zsh"})
}

func testOptions() Options {
	return Options{
		Marker:   wm.Marker{Kind: wm.MarkerAppID, Value: "dropdown"},
		Defaults: geometry.Defaults{Width: 0.30, Height: 0.40},
		OffsetY:  35,
		Focus:    true,
		Terminal: Terminal{
			Command:   "kitty",
			AppIDFlag: "--class",
			TitleFlag: "--title",
			CwdFlag:   "--directory",
			ExecFlag:  "--",
		},
		LookupEnv: defaultEnv(),
	}
}

func newTestController(f *fakeWM, opts Options) *Controller {
	return New(f, f.Subscribe, opts)
}
