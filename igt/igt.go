// Package igt accumulates an in-game-time basis from a raw frame counter.
// The basis is monotonically non-decreasing within one attach session:
// counter resets and stale reads contribute zero, never negative time.
package igt

import "time"

// FrameRate is the rate the game advances its frame counter at.
const FrameRate = 30

// DefaultCeiling is the largest per-tick delta accepted as real gameplay
// time. Anything above it is a wrapped counter or a stale read.
const DefaultCeiling = 10 * time.Second

// Frames converts a frame count to a duration at FrameRate.
func Frames(n uint32) time.Duration {
	return time.Duration(n) * time.Second / FrameRate
}

// Basis is the accumulated in-game time for the current attach session.
// It counts raw frames and converts to a duration only on read, so the
// total stays frame-exact no matter how many ticks contributed.
type Basis struct {
	frames  uint64
	ceiling uint64 // whole frames
}

// New returns a Basis with the given per-tick sanity ceiling. A zero or
// negative ceiling selects DefaultCeiling.
func New(ceiling time.Duration) *Basis {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	return &Basis{ceiling: uint64(ceiling * FrameRate / time.Second)}
}

// Advance folds one tick's frame-counter pair into the basis and returns the
// duration actually credited. A backwards counter (level load reinitialized
// it) and a delta above the ceiling both credit zero.
func (b *Basis) Advance(oldFrames, currentFrames uint32) time.Duration {
	if currentFrames < oldFrames {
		return 0
	}
	delta := currentFrames - oldFrames
	if uint64(delta) > b.ceiling {
		return 0
	}
	b.frames += uint64(delta)
	return Frames(delta)
}

// Total returns the accumulated in-game time.
func (b *Basis) Total() time.Duration {
	return time.Duration(b.frames) * time.Second / FrameRate
}

// Reset zeroes the basis, as on run start or a fresh attach.
func (b *Basis) Reset() {
	b.frames = 0
}
