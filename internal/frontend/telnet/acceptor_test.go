package telnet_test

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/frontend/telnet"
	"github.com/cory-johannsen/delve/internal/testutil"
)

// echoHandler echoes lines until "quit".
type echoHandler struct {
	sessions atomic.Int32
}

func (h *echoHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	h.sessions.Add(1)
	for {
		line, err := conn.ReadLine(ctx)
		if err != nil {
			return err
		}
		if line == "quit" {
			return conn.WriteLine("bye")
		}
		_ = conn.WriteLine("echo: " + line)
	}
}

func startAcceptor(t *testing.T, cfg config.TelnetConfig, h telnet.SessionHandler) (*telnet.Acceptor, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	acc := telnet.NewAcceptor(cfg, h, zaptest.NewLogger(t))
	errCh := make(chan error, 1)
	go func() { errCh <- acc.Serve(ln) }()
	require.Eventually(t, func() bool { return acc.IsRunning() && acc.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	t.Cleanup(acc.Stop)
	return acc, errCh
}

func testTelnetConfig() config.TelnetConfig {
	return config.TelnetConfig{
		Host:         "127.0.0.1",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func TestAcceptor_EchoSession(t *testing.T) {
	h := &echoHandler{}
	acc, errCh := startAcceptor(t, testTelnetConfig(), h)

	client := testutil.NewTelnetClient(t, acc.Addr())
	client.Send("hello")
	assert.Contains(t, client.ReadUntil("echo: hello", 2*time.Second), "echo: hello")
	client.Send("quit")
	client.ReadUntil("bye", 2*time.Second)
	assert.Equal(t, []byte{telnet.IAC, telnet.WILL, telnet.OptSuppressGoAhead}, client.Raw()[:3], "negotiation comes first")
	client.Close()

	acc.Stop()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("acceptor did not stop")
	}
	assert.Equal(t, int32(1), h.sessions.Load())
	assert.False(t, acc.IsRunning())
}

func TestAcceptor_MultipleClients(t *testing.T) {
	h := &echoHandler{}
	acc, _ := startAcceptor(t, testTelnetConfig(), h)

	const n = 3
	for i := 0; i < n; i++ {
		c := testutil.NewTelnetClient(t, acc.Addr())
		c.Send("quit")
		c.ReadUntil("bye", 2*time.Second)
		c.Close()
	}
	require.Eventually(t, func() bool { return acc.ActiveSessions() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(n), h.sessions.Load())
}

func TestAcceptor_SessionCap(t *testing.T) {
	cfg := testTelnetConfig()
	cfg.MaxSessions = 1
	h := &echoHandler{}
	acc, _ := startAcceptor(t, cfg, h)

	first := testutil.NewTelnetClient(t, acc.Addr())
	first.Send("ping")
	first.ReadUntil("echo: ping", 2*time.Second)

	second := testutil.NewTelnetClient(t, acc.Addr())
	second.ReadUntil(telnet.FullMessage, 2*time.Second)

	assert.Equal(t, int32(1), h.sessions.Load())
}

func TestAcceptor_StopCancelsSessions(t *testing.T) {
	h := &echoHandler{}
	acc, errCh := startAcceptor(t, testTelnetConfig(), h)

	c := testutil.NewTelnetClient(t, acc.Addr())
	c.Send("ping")
	c.ReadUntil("echo: ping", 2*time.Second)

	stopped := make(chan struct{})
	go func() {
		acc.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop blocked on an idle session")
	}
	assert.NoError(t, <-errCh)
}

func TestAcceptor_StopBeforeServe(t *testing.T) {
	acc := telnet.NewAcceptor(testTelnetConfig(), &echoHandler{}, nil)
	acc.Stop()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	assert.NoError(t, acc.Serve(ln))
	assert.False(t, acc.IsRunning())
}
