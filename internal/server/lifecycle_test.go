package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// blockingService runs until stopped and records stop order.
type blockingService struct {
	name    string
	order   *stopOrder
	started atomic.Bool
	stop    chan struct{}
	once    sync.Once
}

type stopOrder struct {
	mu    sync.Mutex
	names []string
}

func (o *stopOrder) add(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.names = append(o.names, name)
}

func newBlocking(name string, order *stopOrder) *blockingService {
	return &blockingService{name: name, order: order, stop: make(chan struct{})}
}

func (s *blockingService) Start() error {
	s.started.Store(true)
	<-s.stop
	return nil
}

func (s *blockingService) Stop() {
	s.once.Do(func() {
		if s.order != nil {
			s.order.add(s.name)
		}
		close(s.stop)
	})
}

func runAsync(ctx context.Context, lc *Lifecycle) <-chan error {
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
		return nil
	}
}

func TestLifecycle_StopsInReverseOrderOnCancel(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	order := &stopOrder{}
	svc1 := newBlocking("recovery", order)
	svc2 := newBlocking("telnet", order)
	lc.Add(svc1.name, svc1)
	lc.Add(svc2.name, svc2)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, lc)
	require.Eventually(t, func() bool { return svc1.started.Load() && svc2.started.Load() }, 2*time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, waitDone(t, done))
	assert.Equal(t, []string{"telnet", "recovery"}, order.names)
}

func TestLifecycle_ServiceFailureStopsEverything(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	survivor := newBlocking("recovery", nil)
	boom := errors.New("address in use")
	lc.Add("recovery", survivor)
	lc.Add("telnet", &FuncService{StartFn: func() error { return boom }, StopFn: func() {}})

	err := waitDone(t, runAsync(context.Background(), lc))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "service telnet")

	select {
	case <-survivor.stop:
	default:
		t.Fatal("surviving service was not stopped")
	}
}

func TestLifecycle_NoServices(t *testing.T) {
	lc := NewLifecycle(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, lc.Run(ctx))
}

func TestFuncService(t *testing.T) {
	started, stopped := false, false
	svc := &FuncService{
		StartFn: func() error { started = true; return nil },
		StopFn:  func() { stopped = true },
	}

	assert.NoError(t, svc.Start())
	assert.True(t, started)
	svc.Stop()
	assert.True(t, stopped)
}

func TestBackground_LaunchesOnceAndCancels(t *testing.T) {
	var launches atomic.Int32
	var cancelled atomic.Bool
	bg := NewBackground(func(ctx context.Context) {
		launches.Add(1)
		go func() {
			<-ctx.Done()
			cancelled.Store(true)
		}()
	})

	done := make(chan error, 1)
	go func() { done <- bg.Start() }()
	require.Eventually(t, func() bool { return launches.Load() == 1 }, time.Second, time.Millisecond)

	bg.Stop()
	bg.Stop()
	assert.NoError(t, waitDone(t, done))
	assert.Eventually(t, cancelled.Load, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), launches.Load())
}
