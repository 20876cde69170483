package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swayTree is a trimmed GET_TREE reply with one tiled, one floating and one
// XWayland window spread over two workspaces.
const swayTree = `{
	"id": 1, "name": "root", "type": "root",
	"nodes": [
		{"id": 2, "name": "__i3", "type": "output", "nodes": [
			{"id": 3, "name": "__i3_scratch", "type": "workspace", "nodes": [], "floating_nodes": []}
		]},
		{"id": 4, "name": "eDP-1", "type": "output", "nodes": [
			{"id": 5, "name": "1", "type": "workspace",
				"nodes": [
					{"id": 6, "name": null, "type": "con", "nodes": [
						{"id": 10, "name": "vim", "type": "con", "app_id": "foot", "pid": 100, "nodes": [], "floating_nodes": []},
						{"id": 11, "name": "Firefox", "type": "con", "app_id": null,
							"window_properties": {"class": "firefox", "title": "Firefox"}, "nodes": [], "floating_nodes": []}
					], "floating_nodes": []}
				],
				"floating_nodes": [
					{"id": 12, "name": "dropdown", "type": "floating_con", "app_id": "dropdown", "focused": true, "nodes": [], "floating_nodes": []}
				]
			},
			{"id": 7, "name": "2", "type": "workspace", "nodes": [], "floating_nodes": []}
		]}
	]
}`

func TestDecodeTree(t *testing.T) {
	tree, err := DecodeTree([]byte(swayTree))
	require.NoError(t, err)
	require.Len(t, tree.Outputs, 2)

	edp := tree.Outputs[1]
	assert.Equal(t, "eDP-1", edp.Name)
	require.Len(t, edp.Tabs, 2)
	assert.Equal(t, "1", edp.Tabs[0].Name)
	assert.Len(t, edp.Tabs[0].Windows, 3)
	assert.Empty(t, edp.Tabs[1].Windows)

	windows := tree.AllWindows()
	require.Len(t, windows, 3)

	assert.Equal(t, int64(10), windows[0].ID)
	assert.Equal(t, "foot", windows[0].AppID)
	assert.Equal(t, 100, windows[0].PID)

	assert.Equal(t, "firefox", windows[1].Class)
	assert.Equal(t, "", windows[1].AppID)
	assert.Equal(t, "Firefox", windows[1].Title)

	assert.Equal(t, int64(12), windows[2].ID)
	assert.True(t, windows[2].Focused)
}

func TestDecodeTree_EmptyBody(t *testing.T) {
	for _, body := range []string{"", "  \n"} {
		tree, err := DecodeTree([]byte(body))
		require.NoError(t, err)
		assert.Empty(t, tree.AllWindows())
	}
}

func TestDecodeTree_Malformed(t *testing.T) {
	_, err := DecodeTree([]byte(`{"nodes": [`))
	assert.Error(t, err)
}

func TestDecodeTree_I3ContentContainer(t *testing.T) {
	body := `{"type": "root", "nodes": [
		{"name": "HDMI-1", "type": "output", "nodes": [
			{"name": "topdock", "type": "dockarea", "nodes": []},
			{"name": "content", "type": "con", "nodes": [
				{"name": "3", "type": "workspace", "nodes": [
					{"id": 40, "name": "dropdown", "type": "con",
						"window_properties": {"class": "kitty", "title": "dropdown"}, "nodes": []}
				]}
			]}
		]}
	]}`

	tree, err := DecodeTree([]byte(body))
	require.NoError(t, err)

	windows := tree.AllWindows()
	require.Len(t, windows, 1)
	assert.Equal(t, "kitty", windows[0].Class)
	assert.Equal(t, "dropdown", windows[0].Title)
}

func TestTree_Find(t *testing.T) {
	tree, err := DecodeTree([]byte(swayTree))
	require.NoError(t, err)

	matches := tree.Find(Marker{Kind: MarkerAppID, Value: "dropdown"})
	require.Len(t, matches, 1)
	assert.Equal(t, int64(12), matches[0].ID)

	assert.Len(t, tree.Find(Marker{Kind: MarkerAppID, Value: "firefox"}), 1)
	assert.Len(t, tree.Find(Marker{Kind: MarkerTitle, Value: "vim"}), 1)
	assert.Empty(t, tree.Find(Marker{Kind: MarkerAppID, Value: "missing"}))

	var nilTree *Tree
	assert.Empty(t, nilTree.AllWindows())
}
