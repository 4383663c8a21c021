package telnet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
)

// SessionHandler runs one player's session. It returns when the player
// quits, the connection fails, or ctx is cancelled by Stop.
type SessionHandler interface {
	HandleSession(ctx context.Context, conn *Conn) error
}

// SessionHandlerFunc adapts a function to SessionHandler.
type SessionHandlerFunc func(ctx context.Context, conn *Conn) error

// HandleSession calls f.
func (f SessionHandlerFunc) HandleSession(ctx context.Context, conn *Conn) error {
	return f(ctx, conn)
}

// FullMessage is sent to clients turned away by the session cap.
const FullMessage = "The dungeon halls are crowded. Try again later."

// Acceptor accepts telnet connections and runs a SessionHandler for each on
// its own goroutine.
type Acceptor struct {
	cfg     config.TelnetConfig
	handler SessionHandler
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	listener net.Listener
	running  bool
	wg       sync.WaitGroup
	active   atomic.Int32
}

// NewAcceptor creates an acceptor for cfg.
//
// Precondition: handler must be non-nil. A nil logger is replaced with a no-op.
func NewAcceptor(cfg config.TelnetConfig, handler SessionHandler, logger *zap.Logger) *Acceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Acceptor{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// ListenAndServe listens on cfg.Addr() and serves until Stop.
func (a *Acceptor) ListenAndServe() error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}
	return a.Serve(ln)
}

// Start implements server.Service.
func (a *Acceptor) Start() error { return a.ListenAndServe() }

// Serve accepts connections on ln until Stop. The acceptor takes ownership of ln.
//
// Postcondition: returns nil after Stop, or the accept error that ended the loop.
func (a *Acceptor) Serve(ln net.Listener) error {
	a.mu.Lock()
	if a.ctx.Err() != nil {
		a.mu.Unlock()
		_ = ln.Close()
		return nil
	}
	a.listener = ln
	a.running = true
	a.mu.Unlock()

	a.logger.Info("telnet acceptor listening",
		zap.String("addr", ln.Addr().String()),
		zap.Int("max_sessions", a.cfg.MaxSessions),
	)

	for {
		raw, err := ln.Accept()
		if err != nil {
			if a.ctx.Err() != nil {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				a.logger.Warn("accept timeout", zap.Error(err))
				continue
			}
			return fmt.Errorf("accepting connection: %w", err)
		}
		a.wg.Add(1)
		go a.handleConn(raw)
	}
}

func (a *Acceptor) handleConn(raw net.Conn) {
	defer a.wg.Done()
	start := time.Now()

	conn := NewConn(raw, a.cfg.ReadTimeout, a.cfg.WriteTimeout)
	defer conn.Close()
	logger := a.logger.With(
		zap.String("session_id", conn.ID()),
		zap.String("remote_addr", raw.RemoteAddr().String()),
	)

	n := a.active.Add(1)
	defer a.active.Add(-1)
	if a.cfg.MaxSessions > 0 && int(n) > a.cfg.MaxSessions {
		logger.Warn("session cap reached, rejecting client", zap.Int32("active", n-1))
		_ = conn.WriteLine(FullMessage)
		return
	}
	logger.Info("client connected", zap.Int32("active", n))

	if err := conn.Negotiate(); err != nil {
		logger.Error("telnet negotiation failed", zap.Error(err))
		return
	}

	err := a.handler.HandleSession(a.ctx, conn)
	fields := []zap.Field{zap.Duration("duration", time.Since(start))}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Info("session ended", append(fields, zap.Error(err))...)
		return
	}
	logger.Info("session ended cleanly", fields...)
}

// Stop closes the listener, cancels every session context, and waits for
// the session goroutines to return. It is safe to call more than once.
func (a *Acceptor) Stop() {
	a.cancel()

	a.mu.Lock()
	ln := a.listener
	wasRunning := a.running
	a.running = false
	a.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	a.wg.Wait()
	if wasRunning {
		a.logger.Info("telnet acceptor stopped")
	}
}

// Addr returns the listening address, or "" before Serve.
func (a *Acceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// IsRunning reports whether the acceptor is accepting connections.
func (a *Acceptor) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// ActiveSessions returns the number of connected clients, including any
// being turned away.
func (a *Acceptor) ActiveSessions() int { return int(a.active.Load()) }
