package splitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds a fully-readable tick observation.
func sample(frames uint32, mapID uint16) Sample {
	return Sample{
		ValidGame: true,
		MapID:     mapID, MapIDOK: true,
		Frames: frames, FramesOK: true,
		InventoryOK: true,
		EndingOK:    true,
		HPOK:        true,
	}
}

func withInventory(s Sample, ids ...uint16) Sample {
	var inv Inventory
	copy(inv[:], ids)
	s.Inventory = inv
	return s
}

func withEnding(s Sample, flag uint16) Sample {
	s.Ending = flag
	return s
}

func doorConfig(t *testing.T, rooms ...uint16) *Config {
	t.Helper()
	cfg := &Config{Start: true}
	for _, room := range rooms {
		cfg.Splits = append(cfg.Splits, Split{Kind: KindDoor, Room: room})
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestMachine_StartsWhenIGTLeavesZero(t *testing.T) {
	m := NewMachine(doorConfig(t, 2))

	assert.Equal(t, ActionNone, m.Tick(sample(0, 1)), "no pair yet")
	assert.Equal(t, ActionNone, m.Tick(sample(0, 1)), "igt still zero")
	assert.Equal(t, ActionStart, m.Tick(sample(5, 1)))
	assert.Equal(t, PhaseRunning, m.Phase())
	assert.Equal(t, time.Duration(0), m.GameTime(), "basis zeroed on start")
}

func TestMachine_StartDisabled(t *testing.T) {
	cfg := doorConfig(t, 2)
	cfg.Start = false
	m := NewMachine(cfg)

	for _, frames := range []uint32{0, 0, 5, 10} {
		assert.Equal(t, ActionNone, m.Tick(sample(frames, 1)))
	}
	assert.Equal(t, PhaseNotRunning, m.Phase())
}

func TestMachine_DoorSplitsFireInOrder(t *testing.T) {
	m := NewMachine(doorConfig(t, 2, 3))

	frames := uint32(0)
	tick := func(mapID uint16) Action {
		frames += 5
		return m.Tick(sample(frames, mapID))
	}

	assert.Equal(t, ActionNone, m.Tick(sample(0, 1)))
	assert.Equal(t, ActionStart, tick(1))

	// door sequence 1,2,2,3 against configured rooms [2,3]
	assert.Equal(t, ActionSplit, tick(2), "entering room 2 splits")
	assert.Equal(t, 1, m.Position())
	assert.Equal(t, ActionNone, tick(2), "staying in room 2 does not re-split")
	assert.Equal(t, ActionFinish, tick(3), "final configured split finishes the run")
	assert.Equal(t, 2, m.Position())
	assert.Equal(t, PhaseFinished, m.Phase())

	// nothing fires once finished
	assert.Equal(t, ActionNone, tick(2))
}

func TestMachine_SplitsNeverFireOutOfOrder(t *testing.T) {
	m := NewMachine(doorConfig(t, 2, 3))

	frames := uint32(0)
	tick := func(mapID uint16) Action {
		frames += 5
		return m.Tick(sample(frames, mapID))
	}

	m.Tick(sample(0, 1))
	require.Equal(t, ActionStart, tick(1))

	// memory jumps straight past room 2; the pending split must not be
	// skipped and the later one must not fire early
	assert.Equal(t, ActionNone, tick(3))
	assert.Equal(t, ActionNone, tick(3))
	assert.Equal(t, 0, m.Position())

	// walking back through the configured order still works
	assert.Equal(t, ActionSplit, tick(2))
	assert.Equal(t, ActionFinish, tick(3))
}

func TestMachine_PositionNonDecreasingUntilReset(t *testing.T) {
	cfg := doorConfig(t, 2, 3, 4)
	cfg.Reset = true
	m := NewMachine(cfg)

	frames := uint32(0)
	tick := func(mapID uint16) Action {
		frames += 5
		return m.Tick(sample(frames, mapID))
	}

	m.Tick(sample(0, 1))
	require.Equal(t, ActionStart, tick(1))

	last := 0
	for _, mapID := range []uint16{1, 2, 2, 3, 3, 1} {
		tick(mapID)
		assert.GreaterOrEqual(t, m.Position(), last)
		last = m.Position()
	}
	assert.Equal(t, 2, m.Position())

	// igt back to zero: explicit reset clears the pointer
	assert.Equal(t, ActionReset, m.Tick(sample(0, 1)))
	assert.Equal(t, 0, m.Position())
	assert.Equal(t, PhaseNotRunning, m.Phase())
	assert.Equal(t, time.Duration(0), m.GameTime())
}

func TestMachine_ItemSplitExactMembershipEdge(t *testing.T) {
	cfg := &Config{Start: true, Splits: []Split{{Kind: KindItem, Item: "spear_key"}}}
	require.NoError(t, cfg.Validate())
	m := NewMachine(cfg)

	frames := uint32(0)
	tick := func(ids ...uint16) Action {
		frames += 5
		return m.Tick(withInventory(sample(frames, 1), ids...))
	}

	m.Tick(withInventory(sample(0, 1)))
	require.Equal(t, ActionStart, tick())

	assert.Equal(t, ActionNone, tick(309), "unrelated item must not fire the split")
	assert.Equal(t, ActionFinish, tick(309, 308), "spear key appearing fires")
}

func TestMachine_ItemSplitNeverFiresIfItemNeverAppears(t *testing.T) {
	cfg := &Config{Start: true, Splits: []Split{{Kind: KindItem, Item: "fuse"}}}
	require.NoError(t, cfg.Validate())
	m := NewMachine(cfg)

	frames := uint32(0)
	m.Tick(withInventory(sample(0, 1)))
	for _, ids := range [][]uint16{{}, {309}, {309, 415}, {309, 415, 404}} {
		frames += 5
		m.Tick(withInventory(sample(frames, 1), ids...))
	}
	assert.Equal(t, 0, m.Position(), "no fallback match may fire")
	assert.NotEqual(t, PhaseFinished, m.Phase())
}

func TestMachine_EndingSplit(t *testing.T) {
	cfg := &Config{Start: true, Splits: []Split{{Kind: KindEnding}}}
	require.NoError(t, cfg.Validate())
	m := NewMachine(cfg)

	m.Tick(sample(0, 50))
	require.Equal(t, ActionStart, m.Tick(sample(5, 50)))

	// flag flips without the map changing to an ending room: no split
	assert.Equal(t, ActionNone, m.Tick(withEnding(sample(10, 50), 0xFFFF)))

	m = NewMachine(cfg)
	m.Tick(sample(0, 50))
	require.Equal(t, ActionStart, m.Tick(sample(5, 50)))

	// flag flips while entering the good-end room: run finished
	assert.Equal(t, ActionFinish, m.Tick(withEnding(sample(10, 123), 0xFFFF)))
	assert.Equal(t, PhaseFinished, m.Phase())
}

func TestMachine_PauseAndResume(t *testing.T) {
	cfg := doorConfig(t, 99)
	cfg.PauseTicks = 2
	m := NewMachine(cfg)

	m.Tick(sample(0, 1))
	require.Equal(t, ActionStart, m.Tick(sample(5, 1)))

	assert.Equal(t, ActionNone, m.Tick(sample(10, 1)), "igt advancing")
	assert.Equal(t, ActionNone, m.Tick(sample(10, 1)), "first stalled tick")
	assert.Equal(t, ActionPause, m.Tick(sample(10, 1)), "second stalled tick pauses")
	assert.Equal(t, PhasePaused, m.Phase())

	// watchers keep updating but no split evaluation happens while paused
	assert.Equal(t, ActionNone, m.Tick(sample(10, 99)))
	assert.Equal(t, 0, m.Position())

	assert.Equal(t, ActionResume, m.Tick(sample(15, 99)))
	assert.Equal(t, PhaseRunning, m.Phase())
}

func TestMachine_GameTimeMonotonicWithinRun(t *testing.T) {
	m := NewMachine(doorConfig(t, 99))

	m.Tick(sample(0, 1))
	require.Equal(t, ActionStart, m.Tick(sample(5, 1)))

	last := time.Duration(0)
	for _, frames := range []uint32{35, 65, 5, 10, 40} {
		m.Tick(sample(frames, 1))
		assert.GreaterOrEqual(t, m.GameTime(), last)
		last = m.GameTime()
	}
}

func TestMachine_ResetWinsOverSplitInSameTick(t *testing.T) {
	cfg := doorConfig(t, 2)
	cfg.Reset = true
	m := NewMachine(cfg)

	m.Tick(sample(0, 1))
	require.Equal(t, ActionStart, m.Tick(sample(5, 1)))

	// igt hits zero on the same tick the door trigger matches: one action
	// per tick, and reset is evaluated first
	assert.Equal(t, ActionReset, m.Tick(sample(0, 2)))
	assert.Equal(t, PhaseNotRunning, m.Phase())
	assert.Equal(t, 0, m.Position())
}

func TestMachine_SessionResetEquivalentToResetWithoutAction(t *testing.T) {
	m := NewMachine(doorConfig(t, 2, 3))

	frames := uint32(0)
	tick := func(mapID uint16) Action {
		frames += 5
		return m.Tick(sample(frames, mapID))
	}

	m.Tick(sample(0, 1))
	require.Equal(t, ActionStart, tick(1))
	require.Equal(t, ActionSplit, tick(2))
	require.Greater(t, int64(m.GameTime()), int64(0))

	m.SessionReset()
	assert.Equal(t, PhaseNotRunning, m.Phase())
	assert.Equal(t, 0, m.Position())
	assert.Equal(t, time.Duration(0), m.GameTime())

	// watcher history is gone: a fresh pair is needed before any edge
	assert.Equal(t, ActionNone, m.Tick(sample(5, 2)), "stale pre-reset state must not produce edges")
}

func TestMachine_WrongGameObservesZeroValues(t *testing.T) {
	m := NewMachine(doorConfig(t, 2))

	m.Tick(sample(0, 1))
	require.Equal(t, ActionStart, m.Tick(sample(5, 1)))

	// wrong disc inserted: watchers settle on zeros, nothing fires
	assert.Equal(t, ActionNone, m.Tick(Sample{}))
	assert.Equal(t, ActionNone, m.Tick(Sample{}))
	assert.Equal(t, 0, m.Position())
}

func TestMachine_AbsentReadsProduceNoEdges(t *testing.T) {
	m := NewMachine(doorConfig(t, 2))

	m.Tick(sample(0, 1))
	require.Equal(t, ActionStart, m.Tick(sample(5, 1)))

	// map read fails this tick, then reads 2: the edge spans an absent
	// slot and must not fire
	s := sample(10, 0)
	s.MapIDOK = false
	assert.Equal(t, ActionNone, m.Tick(s))
	assert.Equal(t, ActionNone, m.Tick(sample(15, 2)))

	// with history re-established, a genuine transition fires
	assert.Equal(t, ActionNone, m.Tick(sample(20, 1)))
	assert.Equal(t, ActionFinish, m.Tick(sample(25, 2)))
}
