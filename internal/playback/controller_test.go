package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/san-kum/algoscope/internal/structures"
	"github.com/san-kum/algoscope/internal/trace"
)

func makeTrace(t *testing.T, steps int) *trace.Trace {
	t.Helper()
	a := structures.NewArray([]int{2, 1})
	a.Tracer().Begin()
	for i := 0; i < steps-1; i++ {
		if err := a.Observe(trace.OpVisit, nil, "step %d", i); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}
	done, err := a.Tracer().Finish()
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	return done
}

func TestControllerInitialState(t *testing.T) {
	c := New(makeTrace(t, 5))
	if c.Status() != Stopped {
		t.Errorf("expected stopped, got %s", c.Status())
	}
	if c.Cursor() != -1 {
		t.Errorf("expected cursor -1, got %d", c.Cursor())
	}
	if _, ok := c.Current(); ok {
		t.Error("expected no current step before start")
	}
}

func TestStepForwardToFinish(t *testing.T) {
	c := New(makeTrace(t, 3))

	c.StepForward()
	if c.Cursor() != 0 || c.Status() != Paused {
		t.Errorf("after one step: cursor %d status %s", c.Cursor(), c.Status())
	}

	c.StepForward()
	c.StepForward()
	if c.Cursor() != 2 || c.Status() != Finished {
		t.Errorf("at end: cursor %d status %s", c.Cursor(), c.Status())
	}

	// clamped at the end
	c.StepForward()
	if c.Cursor() != 2 {
		t.Errorf("cursor moved past end: %d", c.Cursor())
	}
}

func TestStepBackwardLeavesFinished(t *testing.T) {
	c := New(makeTrace(t, 3))
	c.Seek(2)
	c.StepForward() // no-op, already at end
	c.Seek(2)

	c.StepBackward()
	if c.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", c.Cursor())
	}

	c.StepBackward()
	c.StepBackward() // clamped at 0
	if c.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", c.Cursor())
	}
}

func TestFinishedStepBackwardResumesPaused(t *testing.T) {
	c := New(makeTrace(t, 2))
	c.StepForward()
	c.StepForward()
	if c.Status() != Finished {
		t.Fatalf("expected finished, got %s", c.Status())
	}
	c.StepBackward()
	if c.Status() != Paused {
		t.Errorf("expected paused after stepping off the end, got %s", c.Status())
	}
}

func TestSeekClampsAndIsIdempotent(t *testing.T) {
	c := New(makeTrace(t, 5))

	var notified []int
	c.AddObserver(func(s trace.Step, _ Status) {
		notified = append(notified, s.Index)
	})

	c.Seek(100)
	if c.Cursor() != 4 {
		t.Errorf("expected clamp to 4, got %d", c.Cursor())
	}
	c.Seek(-7)
	if c.Cursor() != 0 {
		t.Errorf("expected clamp to 0, got %d", c.Cursor())
	}

	c.Seek(2)
	c.Seek(2)
	if len(notified) != 3 {
		t.Errorf("repeated seek re-notified: %v", notified)
	}
	if notified[len(notified)-1] != 2 {
		t.Errorf("last notified %d, want 2", notified[len(notified)-1])
	}
}

func TestSeekToLastIndexFinishes(t *testing.T) {
	c := New(makeTrace(t, 5))

	// a clamped seek exhausts the trace no matter the prior state
	c.Seek(100)
	if c.Cursor() != 4 || c.Status() != Finished {
		t.Errorf("after clamped seek: cursor %d status %s, want 4 finished", c.Cursor(), c.Status())
	}

	// seeking back off the end resumes paused
	c.Seek(1)
	if c.Status() != Paused {
		t.Errorf("after seeking back: status %s, want paused", c.Status())
	}

	c.Seek(4)
	if c.Status() != Finished {
		t.Errorf("exact seek to last index: status %s, want finished", c.Status())
	}
}

func TestForwardThenBackwardYieldsSameSteps(t *testing.T) {
	tr := makeTrace(t, 6)
	c := New(tr)

	forward := make([]trace.Step, 0, tr.Len())
	for i := 0; i < tr.Len(); i++ {
		c.StepForward()
		step, _ := c.Current()
		forward = append(forward, step)
	}

	for i := tr.Len() - 1; i >= 0; i-- {
		step, _ := c.Current()
		if !step.Equal(forward[i]) {
			t.Errorf("backward pass diverged at index %d", i)
		}
		c.StepBackward()
	}
}

func TestPlayAdvancesOnTicks(t *testing.T) {
	c := New(makeTrace(t, 4))
	if err := c.SetSpeed(200); err != nil {
		t.Fatalf("set speed failed: %v", err)
	}

	done := make(chan struct{})
	c.AddObserver(func(_ trace.Step, st Status) {
		if st == Finished {
			close(done)
		}
	})

	c.Play()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("playback never finished")
	}
	if c.Cursor() != 3 {
		t.Errorf("expected cursor at 3, got %d", c.Cursor())
	}
}

func TestPlayFromFinishedRestarts(t *testing.T) {
	c := New(makeTrace(t, 2))
	c.StepForward()
	c.StepForward()
	if c.Status() != Finished {
		t.Fatalf("expected finished, got %s", c.Status())
	}

	c.Play() // default speed, first tick is a full second away
	if c.Cursor() != 0 {
		t.Errorf("play from finished should rewind to 0, got %d", c.Cursor())
	}
	c.Pause()
}

func TestPauseCancelsPendingTick(t *testing.T) {
	c := New(makeTrace(t, 100))
	c.SetSpeed(20)
	c.Play()
	time.Sleep(75 * time.Millisecond)
	c.Pause()

	cur := c.Cursor()
	time.Sleep(150 * time.Millisecond)
	if c.Cursor() != cur {
		t.Errorf("cursor advanced after pause: %d -> %d", cur, c.Cursor())
	}
	if c.Status() != Paused {
		t.Errorf("expected paused, got %s", c.Status())
	}
}

func TestResetReturnsToStopped(t *testing.T) {
	c := New(makeTrace(t, 4))
	c.Seek(3)
	c.Reset()
	if c.Status() != Stopped || c.Cursor() != -1 {
		t.Errorf("after reset: cursor %d status %s", c.Cursor(), c.Status())
	}
}

func TestSetSpeedRejectsNonPositive(t *testing.T) {
	c := New(makeTrace(t, 2))
	for _, v := range []float64{0, -1, -0.5} {
		if err := c.SetSpeed(v); !errors.Is(err, ErrInvalidSpeed) {
			t.Errorf("SetSpeed(%v): expected ErrInvalidSpeed, got %v", v, err)
		}
	}
}
