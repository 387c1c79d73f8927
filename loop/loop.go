// Package loop provides the single-goroutine event loop that drives
// deferred updates: posted tasks and animation-frame callbacks.
package loop

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultFrameInterval is the pacing used by Run, roughly 60 frames per
// second.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameID identifies a requested animation-frame callback.
type FrameID int

// Scheduler queues callbacks for the next animation frame.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

type frameCallback struct {
	id FrameID
	fn func()
}

// Loop queues tasks and frame callbacks. Post, RequestFrame and
// CancelFrame may be called from any goroutine; callbacks always run on
// the goroutine calling RunFrame or Run.
type Loop struct {
	mu       sync.Mutex
	tasks    []func()
	frames   []frameCallback
	nextID   FrameID
	interval time.Duration
	count    uint64
}

// Option configures a Loop.
type Option func(*Loop)

// WithFrameInterval sets the frame pacing used by Run.
func WithFrameInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// New creates a loop.
func New(opts ...Option) *Loop {
	l := &Loop{interval: DefaultFrameInterval}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues fn to run at the start of the next frame.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks = append(l.tasks, fn)
}

// RequestFrame queues fn for the next animation frame.
func (l *Loop) RequestFrame(fn func()) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.frames = append(l.frames, frameCallback{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame removes a pending frame callback. Unknown or already run ids
// are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// Pending reports whether any task or frame callback is queued.
func (l *Loop) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks) > 0 || len(l.frames) > 0
}

// Frames returns the number of frames run so far.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// RunFrame drains posted tasks, then runs the frame callbacks that were
// queued before the frame started. Callbacks requested while the frame
// runs are deferred to the next frame. It returns the number of frame
// callbacks run.
func (l *Loop) RunFrame() int {
	for {
		l.mu.Lock()
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			break
		}
		t := l.tasks[0]
		l.tasks = l.tasks[1:]
		l.mu.Unlock()

		t()
	}

	l.mu.Lock()
	l.count++
	ids := make([]FrameID, len(l.frames))
	for i, f := range l.frames {
		ids[i] = f.id
	}
	l.mu.Unlock()

	ran := 0
	for _, id := range ids {
		// Re-check each id so callbacks cancelled by an earlier callback in
		// the same frame do not run.
		fn := l.take(id)
		if fn == nil {
			continue
		}
		fn()
		ran++
	}
	return ran
}

func (l *Loop) take(id FrameID) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return f.fn
		}
	}
	return nil
}

// Run runs frames at the configured interval until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(l.interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		l.RunFrame()
	}
}
