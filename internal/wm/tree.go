package wm

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node types found in the layout tree.
const (
	nodeOutput      = "output"
	nodeWorkspace   = "workspace"
	nodeCon         = "con"
	nodeFloatingCon = "floating_con"
)

// node mirrors the subset of a GET_TREE node that we read.
type node struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	Type             string       `json:"type"`
	Focused          bool         `json:"focused"`
	PID              int          `json:"pid"`
	AppID            *string      `json:"app_id"`
	WindowProperties *windowProps `json:"window_properties"`
	Nodes            []node       `json:"nodes"`
	FloatingNodes    []node       `json:"floating_nodes"`
}

type windowProps struct {
	Class string `json:"class"`
	Title string `json:"title"`
}

// Window is a flattened reference to a managed window.
type Window struct {
	ID      int64
	Title   string
	AppID   string
	Class   string
	PID     int
	Focused bool
}

// Tab groups windows the way the window manager groups them on an output.
// For i3-compatible managers a tab is a workspace.
type Tab struct {
	Name    string
	Windows []Window
}

// OutputNode is one output in the window tree.
type OutputNode struct {
	Name string
	Tabs []Tab
}

// Tree is the decoded output → tab → window hierarchy.
type Tree struct {
	Outputs []OutputNode
}

// DecodeTree decodes a GET_TREE response body. An empty body is a valid,
// empty tree.
func DecodeTree(body []byte) (*Tree, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return &Tree{}, nil
	}

	var root node
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("decode window tree: %w", err)
	}

	tree := &Tree{}
	switch root.Type {
	case nodeOutput:
		tree.Outputs = append(tree.Outputs, decodeOutput(root))
	default:
		for _, child := range root.Nodes {
			if child.Type != nodeOutput {
				continue
			}
			tree.Outputs = append(tree.Outputs, decodeOutput(child))
		}
	}
	return tree, nil
}

func decodeOutput(n node) OutputNode {
	out := OutputNode{Name: n.Name}
	for _, child := range n.Nodes {
		if child.Type == nodeWorkspace {
			out.Tabs = append(out.Tabs, Tab{Name: child.Name, Windows: collectWindows(child, nil)})
			continue
		}
		// i3 nests workspaces below a "content" container.
		for _, grandchild := range child.Nodes {
			if grandchild.Type == nodeWorkspace {
				out.Tabs = append(out.Tabs, Tab{Name: grandchild.Name, Windows: collectWindows(grandchild, nil)})
			}
		}
	}
	return out
}

// collectWindows appends every leaf container below n.
func collectWindows(n node, acc []Window) []Window {
	children := len(n.Nodes) + len(n.FloatingNodes)
	if children == 0 && (n.Type == nodeCon || n.Type == nodeFloatingCon) {
		return append(acc, n.window())
	}
	for _, child := range n.Nodes {
		acc = collectWindows(child, acc)
	}
	for _, child := range n.FloatingNodes {
		acc = collectWindows(child, acc)
	}
	return acc
}

func (n node) window() Window {
	w := Window{
		ID:      n.ID,
		Title:   n.Name,
		PID:     n.PID,
		Focused: n.Focused,
	}
	if n.AppID != nil {
		w.AppID = *n.AppID
	}
	if n.WindowProperties != nil {
		w.Class = n.WindowProperties.Class
		if w.Title == "" {
			w.Title = n.WindowProperties.Title
		}
	}
	return w
}

// AllWindows flattens the tree into a single list of windows.
func (t *Tree) AllWindows() []Window {
	if t == nil {
		return nil
	}
	var windows []Window
	for _, out := range t.Outputs {
		for _, tab := range out.Tabs {
			windows = append(windows, tab.Windows...)
		}
	}
	return windows
}

// Find returns every window matching the marker.
func (t *Tree) Find(m Marker) []Window {
	var matches []Window
	for _, w := range t.AllWindows() {
		if m.Matches(w) {
			matches = append(matches, w)
		}
	}
	return matches
}
