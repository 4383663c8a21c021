package telnet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Telnet protocol bytes (RFC 854).
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	GA   byte = 249
	NOP  byte = 241
	SE   byte = 240
)

// Telnet options.
const (
	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptNAWS            byte = 31
)

// maxLineLength bounds a single input line; longer input is truncated.
const maxLineLength = 512

// ErrClosed is returned by reads and writes after Close.
var ErrClosed = errors.New("telnet: connection closed")

// Conn is one player's telnet connection. Reads belong to the session
// goroutine; writes are serialised and may come from any goroutine (the
// stamina timer writes notifications while the session waits for input).
type Conn struct {
	id     string
	raw    net.Conn
	reader *bufio.Reader

	readTimeout  time.Duration
	writeTimeout time.Duration

	decoder decoder
	skipLF  bool

	wmu    sync.Mutex
	closed bool
}

// NewConn wraps raw. A zero timeout disables that deadline.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		id:           uuid.New().String(),
		raw:          raw,
		reader:       bufio.NewReader(raw),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// ID returns the session identifier used in logs.
func (c *Conn) ID() string { return c.id }

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr { return c.raw.RemoteAddr() }

// Negotiate asks the client to suppress go-ahead and leaves echo on its side.
func (c *Conn) Negotiate() error {
	return c.writeRaw([]byte{IAC, WILL, OptSuppressGoAhead, IAC, WONT, OptEcho})
}

// ReadLine reads one line of text, stripping telnet commands and control
// characters. Cancelling ctx unblocks a pending read.
//
// Postcondition: on success the line has no trailing CR/LF and no leading or
// trailing whitespace; on cancellation the error wraps ctx.Err().
func (c *Conn) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	} else {
		_ = c.raw.SetReadDeadline(time.Time{})
	}
	stop := context.AfterFunc(ctx, func() {
		_ = c.raw.SetReadDeadline(time.Now())
	})
	defer stop()

	var line []byte
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", fmt.Errorf("reading line: %w", ctxErr)
			}
			return "", fmt.Errorf("reading line: %w", err)
		}
		if !c.decoder.feed(b) {
			continue
		}
		switch {
		case b == '\n' && c.skipLF:
			c.skipLF = false
			continue
		case b == '\r' || b == '\n':
			c.skipLF = b == '\r'
			return strings.TrimSpace(string(line)), nil
		}
		c.skipLF = false
		if b < 32 || b == 127 || b == IAC {
			continue
		}
		if len(line) < maxLineLength {
			line = append(line, b)
		}
	}
}

// Prompt writes text without a newline and reads the reply.
func (c *Conn) Prompt(ctx context.Context, text string) (string, error) {
	if err := c.WritePrompt(text); err != nil {
		return "", err
	}
	return c.ReadLine(ctx)
}

// WriteLine writes text followed by CRLF. Bare LFs inside text are expanded.
func (c *Conn) WriteLine(text string) error {
	return c.writeRaw([]byte(crlf(text) + "\r\n"))
}

// WritePrompt writes text with no line ending.
func (c *Conn) WritePrompt(text string) error {
	return c.writeRaw([]byte(crlf(text)))
}

// Close closes the connection. It is safe to call more than once.
func (c *Conn) Close() error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.raw.Close()
}

func (c *Conn) writeRaw(p []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	if _, err := c.raw.Write(p); err != nil {
		return fmt.Errorf("writing to %s: %w", c.id, err)
	}
	return nil
}

func crlf(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", "\r\n")
}

// decoder tracks position inside telnet command sequences.
type decoder uint8

const (
	decData decoder = iota
	decCommand
	decOption
	decSub
	decSubIAC
)

// feed advances the decoder by one byte and reports whether b is payload.
// An escaped IAC (IAC IAC) is reported once as payload.
func (d *decoder) feed(b byte) bool {
	switch *d {
	case decCommand:
		switch b {
		case WILL, WONT, DO, DONT:
			*d = decOption
		case SB:
			*d = decSub
		case IAC:
			*d = decData
			return true
		default:
			*d = decData
		}
		return false
	case decOption:
		*d = decData
		return false
	case decSub:
		if b == IAC {
			*d = decSubIAC
		}
		return false
	case decSubIAC:
		if b == SE {
			*d = decData
		} else {
			*d = decSub
		}
		return false
	default:
		if b == IAC {
			*d = decCommand
			return false
		}
		return true
	}
}

// FilterIAC removes telnet command sequences from p, collapsing IAC IAC to a
// single 0xFF. A truncated trailing sequence is dropped.
func FilterIAC(p []byte) []byte {
	out := make([]byte, 0, len(p))
	var d decoder
	for _, b := range p {
		if d.feed(b) {
			out = append(out, b)
		}
	}
	return out
}
