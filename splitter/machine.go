package splitter

import (
	"time"

	"splitwatch/igt"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// Ending condition constants: the ending flag value and the two rooms the
// game can end in (good end and bad end).
const (
	endingFlag  = 0xFFFF
	goodEndRoom = 123
	badEndRoom  = 110
)

// Machine is the split decision state machine. It owns the watchers and the
// time basis; Tick is its only mutation point and emits at most one action.
type Machine struct {
	cfg *Config
	log *logger.Logger

	phase     Phase
	next      int // position in cfg.Splits
	zeroTicks int // consecutive zero-IGT-delta ticks

	watchers Watchers
	basis    *igt.Basis
}

// NewMachine builds a machine for the validated configuration.
func NewMachine(cfg *Config) *Machine {
	return &Machine{
		cfg:   cfg,
		log:   logger.NewLogger(coloransi.Color(coloransi.ColorTeal, coloransi.ColorOrange, "splitter")),
		basis: igt.New(time.Duration(cfg.IGTCeiling)),
	}
}

// Phase returns the current run phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Position returns the index of the next pending split.
func (m *Machine) Position() int {
	return m.next
}

// GameTime returns the accumulated in-game time for the current run.
func (m *Machine) GameTime() time.Duration {
	return m.basis.Total()
}

// Tick advances every watcher from the sample, folds the frame counter into
// the time basis, and decides the single action for this tick.
//
// Evaluation order within a tick is fixed: reset, then start (NotRunning
// only), then the next pending split, then pause. The first match wins.
func (m *Machine) Tick(s Sample) Action {
	m.watchers.observe(s)

	// The delta is unknown (-1) until the frame watcher holds a full pair.
	// Pause detection must not trigger on absent reads.
	igtDelta := time.Duration(-1)
	if old, cur, ok := m.watchers.Frames.Pair(); ok && (m.phase == PhaseRunning || m.phase == PhasePaused) {
		igtDelta = m.basis.Advance(old, cur)
	}

	switch m.phase {
	case PhaseNotRunning:
		if m.cfg.Start && m.watchers.Frames.ChangedFrom(0) {
			m.basis.Reset()
			m.next = 0
			m.zeroTicks = 0
			m.phase = PhaseRunning
			m.log.Infoln("Run started")
			return ActionStart
		}

	case PhaseRunning:
		if m.resetCondition() {
			m.reset()
			m.log.Infoln("Run reset")
			return ActionReset
		}
		if a := m.evalSplit(); a != ActionNone {
			return a
		}
		if m.cfg.PauseTicks > 0 {
			if igtDelta == 0 {
				m.zeroTicks++
				if m.zeroTicks >= m.cfg.PauseTicks {
					m.phase = PhasePaused
					m.log.Debugln("Paused after", m.zeroTicks, "stalled ticks")
					return ActionPause
				}
			} else {
				m.zeroTicks = 0
			}
		}

	case PhasePaused:
		if m.resetCondition() {
			m.reset()
			m.log.Infoln("Run reset")
			return ActionReset
		}
		if igtDelta > 0 {
			m.phase = PhaseRunning
			m.zeroTicks = 0
			return ActionResume
		}

	case PhaseFinished:
		// Terminal; only the host can rearm the timer
	}

	return ActionNone
}

// SessionReset clears all run state after a process exit. It is equivalent
// to a reset but emits nothing: the run was abandoned, not reset by the
// player.
func (m *Machine) SessionReset() {
	m.reset()
	m.log.Infoln("Session reset")
}

func (m *Machine) reset() {
	m.phase = PhaseNotRunning
	m.next = 0
	m.zeroTicks = 0
	m.basis.Reset()
	m.watchers.reset()
}

// resetCondition fires when the frame counter returns to zero, which only
// happens when the player backs out to the title screen.
func (m *Machine) resetCondition() bool {
	return m.cfg.Reset && m.watchers.Frames.ChangedTo(0)
}

// evalSplit tests only the next pending entry of the split sequence. Splits
// can never fire out of order, even if memory jumps past an intermediate
// trigger value.
func (m *Machine) evalSplit() Action {
	if m.next >= len(m.cfg.Splits) {
		return ActionNone
	}
	sp := m.cfg.Splits[m.next]
	if !m.splitFired(sp) {
		return ActionNone
	}

	m.next++
	if m.next == len(m.cfg.Splits) {
		m.phase = PhaseFinished
		m.log.Infoln("Final split", sp.Kind, "- run finished")
		return ActionFinish
	}
	m.log.Infoln("Split", m.next, "of", len(m.cfg.Splits))
	return ActionSplit
}

func (m *Machine) splitFired(sp Split) bool {
	switch sp.Kind {
	case KindDoor:
		return m.watchers.MapID.ChangedTo(sp.Room)

	case KindItem:
		// Edge-triggered exact membership: the id must be absent on the
		// previous tick and present now. No greater-or-equal fallback.
		id := sp.itemID
		return m.watchers.Inventory.Check(func(old, cur Inventory) bool {
			return cur.Contains(id) && !old.Contains(id)
		})

	case KindEnding:
		return m.watchers.Ending.ChangedTo(endingFlag) &&
			m.watchers.MapID.Check(func(old, cur uint16) bool {
				return old != cur && (cur == goodEndRoom || cur == badEndRoom)
			})
	}
	return false
}
