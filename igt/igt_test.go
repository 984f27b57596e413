package igt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrames(t *testing.T) {
	assert.Equal(t, time.Duration(0), Frames(0))
	assert.Equal(t, time.Second, Frames(30))
	assert.Equal(t, 10*time.Second, Frames(300))
}

func TestBasis_LevelLoadResetAbsorbed(t *testing.T) {
	// The mid-sequence zero is a level load reinitializing the counter; it
	// must contribute zero, never negative time.
	raw := []uint32{0, 0, 100, 250, 0, 50}
	wantFrames := []uint32{0, 100, 150, 0, 50}

	b := New(0)
	for i := 1; i < len(raw); i++ {
		delta := b.Advance(raw[i-1], raw[i])
		assert.Equal(t, Frames(wantFrames[i-1]), delta, "pair %d", i)
	}
	assert.Equal(t, Frames(300), b.Total())
}

func TestBasis_Monotonic(t *testing.T) {
	raw := []uint32{0, 10, 5, 5, 900, 2, 40}

	b := New(0)
	last := time.Duration(0)
	for i := 1; i < len(raw); i++ {
		b.Advance(raw[i-1], raw[i])
		assert.GreaterOrEqual(t, b.Total(), last)
		last = b.Total()
	}
}

func TestBasis_CeilingClampsStaleReads(t *testing.T) {
	b := New(time.Second)

	// 31 frames exceed a one-second ceiling: treated as a stale read
	assert.Equal(t, time.Duration(0), b.Advance(0, 31))
	assert.Equal(t, time.Duration(0), b.Total())

	// a plausible delta still counts
	assert.Equal(t, Frames(3), b.Advance(31, 34))
	assert.Equal(t, Frames(3), b.Total())
}

func TestBasis_DefaultCeiling(t *testing.T) {
	b := New(0)

	// 10s of frames is exactly the default ceiling, still accepted
	assert.Equal(t, Frames(300), b.Advance(0, 300))
	// anything more is not
	assert.Equal(t, time.Duration(0), b.Advance(300, 700))
	assert.Equal(t, Frames(300), b.Total())
}

func TestBasis_NoAccumulatedDrift(t *testing.T) {
	// 1-frame deltas would lose a nanosecond per tick if each delta were
	// rounded to a duration before accumulating. 900 frames must come out
	// as exactly 30s.
	b := New(0)
	for f := uint32(0); f < 900; f++ {
		assert.Equal(t, Frames(1), b.Advance(f, f+1))
	}
	assert.Equal(t, 30*time.Second, b.Total())
}

func TestBasis_Reset(t *testing.T) {
	b := New(0)
	b.Advance(0, 60)
	assert.Equal(t, 2*time.Second, b.Total())

	b.Reset()
	assert.Equal(t, time.Duration(0), b.Total())
}
