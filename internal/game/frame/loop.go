// Package frame provides the host update loop. Every queued input action and
// every tick callback runs on the loop goroutine, so game state driven by the
// loop needs no locking.
package frame

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrInputQueueFull is returned by Enqueue when the input buffer is full.
var ErrInputQueueFull = errors.New("frame: input queue full")

type namedTick struct {
	name string
	fn   func()
}

// Loop runs a fixed-interval frame loop.
//
// Invariant: each frame drains the queued input actions, in arrival order,
// and then invokes every registered tick callback once, in registration order.
type Loop struct {
	interval time.Duration
	inputs   chan func()
	logger   *zap.Logger

	mu    sync.Mutex
	ticks []namedTick
	frame uint64
}

// NewLoop returns a stopped Loop.
//
// Precondition: interval > 0 and buffer >= 1 (panics otherwise).
func NewLoop(interval time.Duration, buffer int, logger *zap.Logger) *Loop {
	if interval <= 0 {
		panic("frame.NewLoop: interval must be > 0")
	}
	if buffer < 1 {
		panic("frame.NewLoop: buffer must be >= 1")
	}
	return &Loop{
		interval: interval,
		inputs:   make(chan func(), buffer),
		logger:   logger,
	}
}

// RegisterTick registers fn under name. Replaces any existing callback with that name.
func (l *Loop) RegisterTick(name string, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.ticks {
		if l.ticks[i].name == name {
			l.ticks[i].fn = fn
			return
		}
	}
	l.ticks = append(l.ticks, namedTick{name: name, fn: fn})
}

// Unregister removes the tick callback for name.
func (l *Loop) Unregister(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.ticks {
		if l.ticks[i].name == name {
			l.ticks = append(l.ticks[:i], l.ticks[i+1:]...)
			return
		}
	}
}

// Enqueue schedules fn to run at the start of the next frame. Safe from any goroutine.
//
// Postcondition: returns ErrInputQueueFull without queuing fn when the buffer is full.
func (l *Loop) Enqueue(fn func()) error {
	select {
	case l.inputs <- fn:
		return nil
	default:
		return ErrInputQueueFull
	}
}

// Do schedules fn and blocks until it has run on the loop goroutine or ctx ends.
// It must not be called from the loop goroutine.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case l.inputs <- func() { defer close(done); fn() }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Frame returns the number of completed frames.
func (l *Loop) Frame() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame
}

// Step runs one frame on the calling goroutine.
func (l *Loop) Step() {
	for drained := false; !drained; {
		select {
		case fn := <-l.inputs:
			fn()
		default:
			drained = true
		}
	}

	l.mu.Lock()
	ticks := make([]namedTick, len(l.ticks))
	copy(ticks, l.ticks)
	l.mu.Unlock()
	for _, t := range ticks {
		t.fn()
	}

	l.mu.Lock()
	l.frame++
	l.mu.Unlock()
}

// Run steps the loop once per interval until ctx is cancelled.
//
// Postcondition: returns ctx.Err() after the in-flight frame completes.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	l.logger.Info("frame loop started", zap.Duration("interval", l.interval))
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("frame loop stopped", zap.Uint64("frames", l.Frame()))
			return ctx.Err()
		case <-ticker.C:
			l.Step()
		}
	}
}
