package compare

import (
	"github.com/san-kum/algoscope/internal/playback"
	"github.com/san-kum/algoscope/internal/trace"
)

// Track pairs one trace with its own playback controller inside a session.
type Track struct {
	name string
	ctrl *playback.Controller
}

func (t *Track) Name() string                  { return t.name }
func (t *Track) Controller() *playback.Controller { return t.ctrl }
func (t *Track) Trace() *trace.Trace           { return t.ctrl.Trace() }
func (t *Track) Status() playback.Status       { return t.ctrl.Status() }
func (t *Track) Cursor() int                   { return t.ctrl.Cursor() }
func (t *Track) Len() int                      { return t.ctrl.Trace().Len() }

// Counters returns the running counters at the track's cursor, so the UI
// can show relative cost as the session advances.
func (t *Track) Counters() trace.Counters {
	step, ok := t.ctrl.Current()
	if !ok {
		return trace.Counters{}
	}
	return step.Counters
}

// Session broadcasts one control surface over several tracks. Tracks of
// different lengths finish independently; a finished track ignores further
// forward commands, and the session is finished only when every track is.
type Session struct {
	tracks []*Track
}

func NewSession() *Session { return &Session{} }

func (s *Session) Add(name string, tr *trace.Trace) *Track {
	t := &Track{name: name, ctrl: playback.New(tr)}
	s.tracks = append(s.tracks, t)
	return t
}

func (s *Session) Tracks() []*Track { return s.tracks }

func (s *Session) Play() {
	for _, t := range s.tracks {
		if t.Status() != playback.Finished {
			t.ctrl.Play()
		}
	}
}

func (s *Session) Pause() {
	for _, t := range s.tracks {
		t.ctrl.Pause()
	}
}

func (s *Session) StepForward() {
	for _, t := range s.tracks {
		t.ctrl.StepForward()
	}
}

func (s *Session) StepBackward() {
	for _, t := range s.tracks {
		t.ctrl.StepBackward()
	}
}

// Seek clamps per track to that track's own bounds; shorter tracks land on
// their last index. This is the documented alignment policy, not an error.
func (s *Session) Seek(i int) {
	for _, t := range s.tracks {
		t.ctrl.Seek(i)
	}
}

func (s *Session) Reset() {
	for _, t := range s.tracks {
		t.ctrl.Reset()
	}
}

func (s *Session) SetSpeed(v float64) error {
	for _, t := range s.tracks {
		if err := t.ctrl.SetSpeed(v); err != nil {
			return err
		}
	}
	return nil
}

// Finished reports whether every track has reached its last step.
func (s *Session) Finished() bool {
	if len(s.tracks) == 0 {
		return false
	}
	for _, t := range s.tracks {
		if t.Status() != playback.Finished {
			return false
		}
	}
	return true
}

// GlobalStep is the logical session position: the furthest cursor across
// all tracks.
func (s *Session) GlobalStep() int {
	g := -1
	for _, t := range s.tracks {
		g = max(g, t.Cursor())
	}
	return g
}

// MaxLen is the length of the longest track.
func (s *Session) MaxLen() int {
	n := 0
	for _, t := range s.tracks {
		n = max(n, t.Len())
	}
	return n
}
