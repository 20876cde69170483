package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/jmylchreest/dropdown/internal/wm"
)

// ErrSubscribed is returned when a request is made on a connection that has
// been turned into an event stream.
var ErrSubscribed = errors.New("connection is subscribed to events")

// CommandError reports a command the window manager refused.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("command %q failed", e.Command)
	}
	return fmt.Sprintf("command %q failed: %s", e.Command, e.Message)
}

// Conn is a connection to the window manager's IPC socket.
type Conn struct {
	mu         sync.Mutex
	conn       net.Conn
	reader     *bufio.Reader
	logger     *slog.Logger
	subscribed bool
}

// Dial connects to the IPC socket at path.
func Dial(ctx context.Context, path string, logger *slog.Logger) (*Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", path, err)
	}
	logger.Debug("connected to window manager", "socket", path)
	return &Conn{
		conn:   conn,
		reader: bufio.NewReader(conn),
		logger: logger,
	}, nil
}

// Close closes the connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// watch interrupts blocking I/O on the connection when ctx is cancelled.
func (c *Conn) watch(ctx context.Context) (stop func() bool) {
	return context.AfterFunc(ctx, func() {
		_ = c.conn.SetDeadline(time.Now())
	})
}

// ctxErr prefers the context error over the I/O error it caused.
func ctxErr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	return err
}

// Send performs one request/reply exchange.
func (c *Conn) Send(ctx context.Context, t MessageType, payload []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subscribed {
		return nil, ErrSubscribed
	}

	stop := c.watch(ctx)
	defer stop()

	if err := writeFrame(c.conn, t, payload); err != nil {
		return nil, ctxErr(ctx, err)
	}

	for {
		rt, body, err := readFrame(c.reader)
		if err != nil {
			return nil, ctxErr(ctx, err)
		}
		if rt.IsEvent() {
			c.logger.Debug("dropping event on request connection", "kind", rt.EventKind())
			continue
		}
		if rt != t {
			return nil, fmt.Errorf("reply type %d does not match request type %d", rt, t)
		}
		return body, nil
	}
}

// Query runs a structured query and returns the raw reply body.
func (c *Conn) Query(ctx context.Context, q wm.Query) ([]byte, error) {
	var t MessageType
	switch q {
	case wm.QueryWindows:
		t = MessageGetTree
	case wm.QueryOutputs:
		t = MessageGetOutputs
	case wm.QueryConfig:
		t = MessageGetConfig
	case wm.QueryVersion:
		t = MessageGetVersion
	default:
		return nil, fmt.Errorf("unsupported query %d", q)
	}
	return c.Send(ctx, t, nil)
}

type commandResult struct {
	Success    bool   `json:"success"`
	ParseError bool   `json:"parse_error"`
	Error      string `json:"error"`
}

// Command runs a text command and waits for its result.
func (c *Conn) Command(ctx context.Context, cmd string) error {
	c.logger.Debug("ipc command", "command", cmd)

	body, err := c.Send(ctx, MessageRunCommand, []byte(cmd))
	if err != nil {
		return err
	}

	var results []commandResult
	if err := json.Unmarshal(body, &results); err != nil {
		return fmt.Errorf("decode command reply: %w", err)
	}
	var failures []string
	for _, r := range results {
		if !r.Success {
			failures = append(failures, r.Error)
		}
	}
	if len(failures) > 0 {
		return &CommandError{Command: cmd, Message: strings.Join(failures, "; ")}
	}
	return nil
}

// Subscribe turns the connection into an event stream for kinds. The
// connection can no longer be used for requests afterwards.
func (c *Conn) Subscribe(ctx context.Context, kinds ...wm.EventKind) (*EventStream, error) {
	payload, err := json.Marshal(kinds)
	if err != nil {
		return nil, err
	}

	body, err := c.Send(ctx, MessageSubscribe, payload)
	if err != nil {
		return nil, err
	}

	var reply struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("decode subscribe reply: %w", err)
	}
	if !reply.Success {
		return nil, fmt.Errorf("subscribe to %v rejected", kinds)
	}

	c.mu.Lock()
	c.subscribed = true
	c.mu.Unlock()

	c.logger.Debug("subscribed to events", "kinds", kinds)
	return &EventStream{conn: c}, nil
}

// EventStream yields events from a subscribed connection.
type EventStream struct {
	conn *Conn
}

// Next blocks until the next event arrives or ctx is done.
func (s *EventStream) Next(ctx context.Context) (wm.Event, error) {
	c := s.conn
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return wm.Event{}, err
	}

	stop := c.watch(ctx)
	defer stop()

	for {
		t, body, err := readFrame(c.reader)
		if err != nil {
			return wm.Event{}, ctxErr(ctx, err)
		}
		if !t.IsEvent() {
			// Late reply to the subscribe request.
			continue
		}
		return wm.Event{Kind: t.EventKind(), Payload: body}, nil
	}
}

// Close closes the underlying connection.
func (s *EventStream) Close() error {
	return s.conn.Close()
}
