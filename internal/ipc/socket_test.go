package ipc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLocator_PrefersI3SOCK(t *testing.T) {
	l := Locator{
		Getenv: envMap(map[string]string{"I3SOCK": "/run/i3.sock", "SWAYSOCK": "/run/sway.sock"}),
		Run: func(context.Context, string, ...string) ([]byte, error) {
			t.Fatal("binary should not be consulted")
			return nil, nil
		},
	}

	path, err := l.SocketPath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/run/i3.sock", path)
}

func TestLocator_SwaySock(t *testing.T) {
	l := Locator{Getenv: envMap(map[string]string{"SWAYSOCK": "/run/sway.sock"})}

	path, err := l.SocketPath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/run/sway.sock", path)
}

func TestLocator_FallsBackToBinaries(t *testing.T) {
	var asked []string
	l := Locator{
		Getenv: envMap(nil),
		Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			asked = append(asked, name)
			assert.Equal(t, []string{"--get-socketpath"}, args)
			if name == "i3" {
				return nil, errors.New("executable file not found")
			}
			return []byte("/run/user/1000/sway-ipc.sock\n"), nil
		},
	}

	path, err := l.SocketPath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/run/user/1000/sway-ipc.sock", path)
	assert.Equal(t, []string{"i3", "sway"}, asked)
}

func TestLocator_NotFound(t *testing.T) {
	l := Locator{
		Getenv: envMap(nil),
		Run: func(context.Context, string, ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		},
	}

	_, err := l.SocketPath(context.Background())
	assert.ErrorIs(t, err, ErrSocketNotFound)
}
