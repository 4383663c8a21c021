package testutil

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/cory-johannsen/delve/internal/frontend/telnet"
)

// TelnetClient plays a player against a running acceptor. Output is
// returned with telnet commands and ANSI colors removed so tests can match
// on plain text.
type TelnetClient struct {
	t    *testing.T
	conn net.Conn
	raw  bytes.Buffer
}

// NewTelnetClient dials addr and closes the connection when the test ends.
//
// Postcondition: Returns a connected client or fails the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("dialing %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &TelnetClient{t: t, conn: conn}
}

// ReadUntil reads until the cleaned output contains substr and returns the
// cleaned text read by this call.
//
// Precondition: substr must be non-empty.
// Postcondition: Fails the test if substr does not arrive within timeout.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	var got []byte
	chunk := make([]byte, 512)
	for {
		n, err := c.conn.Read(chunk)
		if n > 0 {
			c.raw.Write(chunk[:n])
			got = append(got, chunk[:n]...)
			if text := clean(got); strings.Contains(text, substr) {
				return text
			}
		}
		if err != nil {
			c.t.Fatalf("waiting for %q: read %q: %v", substr, clean(got), err)
		}
	}
}

// Send writes text followed by CRLF, as a telnet client does.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := c.conn.Write([]byte(text + "\r\n")); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Raw returns every byte received so far, negotiation included.
func (c *TelnetClient) Raw() []byte {
	return bytes.Clone(c.raw.Bytes())
}

// Close hangs up.
func (c *TelnetClient) Close() {
	_ = c.conn.Close()
}

func clean(p []byte) string {
	return telnet.StripANSI(strings.ReplaceAll(string(telnet.FilterIAC(p)), "\r\n", "\n"))
}
