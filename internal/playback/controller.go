package playback

import (
	"errors"
	"sync"
	"time"

	"github.com/san-kum/algoscope/internal/trace"
)

var ErrInvalidSpeed = errors.New("playback: speed must be positive")

type Status int

const (
	Stopped Status = iota
	Playing
	Paused
	Finished
)

func (s Status) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Observer receives the step under the cursor after every cursor change.
// This is the sole channel renderers consume.
type Observer func(step trace.Step, status Status)

// Controller walks one finalized trace under play/pause/step/seek
// commands. Play ticks are driven by a timer owned by the controller; at
// most one tick is in flight, and Pause/Reset cancel the pending one.
type Controller struct {
	mu        sync.Mutex
	tr        *trace.Trace
	cursor    int
	status    Status
	speed     float64
	timer     *time.Timer
	gen       int
	observers []Observer
}

func New(tr *trace.Trace) *Controller {
	return &Controller{tr: tr, cursor: -1, speed: 1.0}
}

func (c *Controller) Trace() *trace.Trace { return c.tr }

func (c *Controller) AddObserver(fn Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Current returns the step under the cursor, or false before the first
// cursor move.
func (c *Controller) Current() (trace.Step, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor < 0 || c.cursor >= c.tr.Len() {
		return trace.Step{}, false
	}
	step, _ := c.tr.At(c.cursor)
	return step, true
}

func (c *Controller) Play() {
	c.mu.Lock()
	if c.status == Playing || c.tr.Len() == 0 {
		c.mu.Unlock()
		return
	}
	moved := false
	if c.status == Finished {
		c.cursor = 0
		moved = true
	}
	c.status = Playing
	c.scheduleLocked()
	notify := c.notifierLocked(moved || c.cursor >= 0)
	c.mu.Unlock()
	notify()
}

func (c *Controller) Pause() {
	c.mu.Lock()
	if c.status != Playing {
		c.mu.Unlock()
		return
	}
	c.status = Paused
	c.cancelLocked()
	notify := c.notifierLocked(c.cursor >= 0)
	c.mu.Unlock()
	notify()
}

func (c *Controller) StepForward() {
	c.mu.Lock()
	if c.status == Playing || c.tr.Len() == 0 || c.cursor >= c.tr.Len()-1 {
		c.mu.Unlock()
		return
	}
	c.cursor++
	if c.cursor == c.tr.Len()-1 {
		c.status = Finished
	} else {
		c.status = Paused
	}
	notify := c.notifierLocked(true)
	c.mu.Unlock()
	notify()
}

func (c *Controller) StepBackward() {
	c.mu.Lock()
	if c.status == Playing || c.cursor <= 0 {
		c.mu.Unlock()
		return
	}
	c.cursor--
	if c.status == Finished {
		c.status = Paused
	}
	notify := c.notifierLocked(true)
	c.mu.Unlock()
	notify()
}

// Seek jumps the cursor, clamped to trace bounds. A cursor landing on the
// final index has exhausted the trace and finishes regardless of how it
// got there; seeking back off the end resumes paused.
func (c *Controller) Seek(i int) {
	c.mu.Lock()
	if c.tr.Len() == 0 {
		c.mu.Unlock()
		return
	}
	i = min(max(i, 0), c.tr.Len()-1)
	moved := i != c.cursor
	c.cursor = i
	if c.cursor == c.tr.Len()-1 {
		if c.status == Playing {
			c.cancelLocked()
		}
		c.status = Finished
	} else if c.status == Finished {
		c.status = Paused
	}
	notify := c.notifierLocked(moved)
	c.mu.Unlock()
	notify()
}

func (c *Controller) Reset() {
	c.mu.Lock()
	c.cursor = -1
	c.status = Stopped
	c.cancelLocked()
	c.mu.Unlock()
}

// SetSpeed changes steps per second, effective from the next tick.
func (c *Controller) SetSpeed(v float64) error {
	if v <= 0 {
		return ErrInvalidSpeed
	}
	c.mu.Lock()
	c.speed = v
	c.mu.Unlock()
	return nil
}

func (c *Controller) interval() time.Duration {
	return time.Duration(float64(time.Second) / c.speed)
}

func (c *Controller) scheduleLocked() {
	c.cancelLocked()
	gen := c.gen
	c.timer = time.AfterFunc(c.interval(), func() { c.tick(gen) })
}

// cancelLocked invalidates any pending tick; a fired-but-not-yet-run
// callback sees the stale generation and drops out.
func (c *Controller) cancelLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) tick(gen int) {
	c.mu.Lock()
	if gen != c.gen || c.status != Playing {
		c.mu.Unlock()
		return
	}
	if c.cursor < c.tr.Len()-1 {
		c.cursor++
	}
	if c.cursor >= c.tr.Len()-1 {
		c.status = Finished
		c.cancelLocked()
	} else {
		c.scheduleLocked()
	}
	notify := c.notifierLocked(true)
	c.mu.Unlock()
	notify()
}

// notifierLocked captures the current step and observer list; the caller
// invokes the result after releasing the lock so observers may call back
// into the controller.
func (c *Controller) notifierLocked(changed bool) func() {
	if !changed || c.cursor < 0 || c.cursor >= c.tr.Len() {
		return func() {}
	}
	step, _ := c.tr.At(c.cursor)
	status := c.status
	obs := make([]Observer, len(c.observers))
	copy(obs, c.observers)
	return func() {
		for _, fn := range obs {
			fn(step, status)
		}
	}
}
