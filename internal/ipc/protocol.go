package ipc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/jmylchreest/dropdown/internal/wm"
)

// MessageType is an i3 IPC request or reply type.
type MessageType uint32

// Request types.
const (
	MessageRunCommand MessageType = 0
	MessageSubscribe  MessageType = 2
	MessageGetOutputs MessageType = 3
	MessageGetTree    MessageType = 4
	MessageGetVersion MessageType = 7
	MessageGetConfig  MessageType = 9
)

// eventBit is set on the type of every asynchronous event.
const eventBit MessageType = 1 << 31

// Event types, without the event bit.
const (
	eventWorkspace MessageType = 0
	eventOutput    MessageType = 1
	eventMode      MessageType = 2
	eventWindow    MessageType = 3
	eventBinding   MessageType = 5
	eventShutdown  MessageType = 6
	eventTick      MessageType = 7
)

var eventKinds = map[MessageType]wm.EventKind{
	eventWorkspace: wm.EventWorkspace,
	eventOutput:    "output",
	eventMode:      "mode",
	eventWindow:    wm.EventWindow,
	eventBinding:   "binding",
	eventShutdown:  wm.EventShutdown,
	eventTick:      "tick",
}

var magic = []byte("i3-ipc")

const headerLen = 14

// maxPayload bounds a single reply; a full tree on a busy desktop is well below it.
const maxPayload = 64 << 20

// ErrBadMagic is returned when a frame does not start with the i3-ipc magic.
var ErrBadMagic = errors.New("invalid i3-ipc magic")

// IsEvent reports whether t is an asynchronous event type.
func (t MessageType) IsEvent() bool {
	return t&eventBit != 0
}

// EventKind maps an event type to its subscription name.
func (t MessageType) EventKind() wm.EventKind {
	if kind, ok := eventKinds[t&^eventBit]; ok {
		return kind
	}
	return wm.EventKind(fmt.Sprintf("event-%d", uint32(t&^eventBit)))
}

// writeFrame writes one request frame.
func writeFrame(w io.Writer, t MessageType, payload []byte) error {
	buf := make([]byte, headerLen+len(payload))
	copy(buf[0:6], magic)
	binary.LittleEndian.PutUint32(buf[6:10], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[10:14], uint32(t))
	copy(buf[headerLen:], payload)
	_, err := w.Write(buf)
	return err
}

// readFrame reads one reply or event frame.
func readFrame(r *bufio.Reader) (MessageType, []byte, error) {
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, err
	}
	if string(header[0:6]) != string(magic) {
		return 0, nil, ErrBadMagic
	}
	size := binary.LittleEndian.Uint32(header[6:10])
	t := MessageType(binary.LittleEndian.Uint32(header[10:14]))
	if size > maxPayload {
		return 0, nil, fmt.Errorf("reply of %d bytes exceeds limit", size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}
	return t, payload, nil
}
