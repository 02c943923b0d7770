package compare

import (
	"testing"

	"github.com/san-kum/algoscope/internal/playback"
	"github.com/san-kum/algoscope/internal/structures"
	"github.com/san-kum/algoscope/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTrace(t *testing.T, steps int) *trace.Trace {
	t.Helper()
	a := structures.NewArray([]int{1, 2})
	a.Tracer().Begin()
	for i := 0; i < steps-1; i++ {
		require.NoError(t, a.Observe(trace.OpVisit, nil, "step %d", i))
	}
	done, err := a.Tracer().Finish()
	require.NoError(t, err)
	return done
}

func TestUnequalTracksFinishIndependently(t *testing.T) {
	s := NewSession()
	short := s.Add("short", makeTrace(t, 12))
	long := s.Add("long", makeTrace(t, 20))

	for i := 0; i < 12; i++ {
		s.StepForward()
	}
	assert.Equal(t, playback.Finished, short.Status())
	assert.Equal(t, playback.Paused, long.Status())
	assert.False(t, s.Finished())

	for i := 0; i < 8; i++ {
		s.StepForward()
	}
	assert.Equal(t, playback.Finished, short.Status())
	assert.Equal(t, playback.Finished, long.Status())
	assert.True(t, s.Finished())
}

func TestSeekClampsPerTrack(t *testing.T) {
	s := NewSession()
	short := s.Add("short", makeTrace(t, 5))
	long := s.Add("long", makeTrace(t, 15))

	s.Seek(10)
	assert.Equal(t, 4, short.Cursor(), "shorter track clamps to its own last index")
	assert.Equal(t, 10, long.Cursor())
	assert.Equal(t, 10, s.GlobalStep())
}

func TestSeekPastEveryTrackFinishesSession(t *testing.T) {
	s := NewSession()
	short := s.Add("short", makeTrace(t, 5))
	long := s.Add("long", makeTrace(t, 15))

	// a clamped track has exhausted its trace and reports finished
	s.Seek(100)
	assert.Equal(t, playback.Finished, short.Status())
	assert.Equal(t, playback.Finished, long.Status())
	assert.True(t, s.Finished())

	// forward commands still no-op at the end
	s.StepForward()
	assert.Equal(t, 4, short.Cursor())
	assert.Equal(t, 14, long.Cursor())

	// rewinding brings the session back into play
	s.Seek(0)
	assert.Equal(t, playback.Paused, short.Status())
	assert.False(t, s.Finished())
}

func TestSeekToMidpointFinishesOnlyExhaustedTracks(t *testing.T) {
	s := NewSession()
	short := s.Add("short", makeTrace(t, 5))
	long := s.Add("long", makeTrace(t, 15))

	s.Seek(10)
	assert.Equal(t, playback.Finished, short.Status())
	assert.NotEqual(t, playback.Finished, long.Status())
	assert.False(t, s.Finished())
}

func TestStepBackwardRewindsAllTracks(t *testing.T) {
	s := NewSession()
	a := s.Add("a", makeTrace(t, 6))
	b := s.Add("b", makeTrace(t, 3))

	s.Seek(5)
	s.StepBackward()
	assert.Equal(t, 4, a.Cursor())
	assert.Equal(t, 1, b.Cursor())
}

func TestPerTrackCounters(t *testing.T) {
	s := NewSession()

	arr := structures.NewArray([]int{3, 1, 2})
	arr.Tracer().Begin()
	_, err := arr.Greater(0, 1)
	require.NoError(t, err)
	require.NoError(t, arr.Swap(0, 1))
	tr, err := arr.Tracer().Finish()
	require.NoError(t, err)

	track := s.Add("work", tr)
	other := s.Add("idle", makeTrace(t, 3))

	assert.Equal(t, trace.Counters{}, track.Counters(), "no counters before start")

	s.Seek(2)
	assert.Equal(t, 1, track.Counters().Comparisons)
	assert.Equal(t, 1, track.Counters().Swaps)
	assert.Equal(t, 0, other.Counters().Swaps)
}

func TestSessionResetAndSpeed(t *testing.T) {
	s := NewSession()
	a := s.Add("a", makeTrace(t, 4))

	s.Seek(2)
	s.Reset()
	assert.Equal(t, -1, a.Cursor())
	assert.Equal(t, playback.Stopped, a.Status())

	assert.ErrorIs(t, s.SetSpeed(0), playback.ErrInvalidSpeed)
	assert.NoError(t, s.SetSpeed(2.5))
}

func TestEmptySessionNeverFinished(t *testing.T) {
	assert.False(t, NewSession().Finished())
	assert.Equal(t, -1, NewSession().GlobalStep())
}
