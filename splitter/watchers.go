package splitter

import (
	"splitwatch/watcher"
)

// InventorySlots is the number of inventory slots the game exposes.
const InventorySlots = 12

// Inventory is the item id of each inventory slot; empty slots are zero.
type Inventory [InventorySlots]uint16

// Contains reports whether the inventory holds the item id.
func (inv Inventory) Contains(id uint16) bool {
	for _, slot := range inv {
		if slot == id {
			return true
		}
	}
	return false
}

// Sample is one tick's worth of raw memory observations. A false OK flag
// means the read failed this tick and the value is absent.
type Sample struct {
	// ValidGame is false when the emulator is running the wrong game; all
	// watchers then observe zero values.
	ValidGame bool

	MapID   uint16
	MapIDOK bool

	Frames   uint32
	FramesOK bool

	Inventory   Inventory
	InventoryOK bool

	Ending   uint16
	EndingOK bool

	HP   uint16
	HPOK bool
}

// Watchers is the full set of two-slot watchers the machine tracks, one per
// observed quantity.
type Watchers struct {
	MapID     watcher.Watcher[uint16]
	Frames    watcher.Watcher[uint32]
	Inventory watcher.Watcher[Inventory]
	Ending    watcher.Watcher[uint16]
	HP        watcher.Watcher[uint16]
}

// observe advances every watcher exactly once from the sample.
func (w *Watchers) observe(s Sample) {
	if !s.ValidGame {
		// Wrong game loaded: watchers settle on zero values rather than
		// carrying stale state from the right one
		w.MapID.UpdateInfallible(0)
		w.Frames.UpdateInfallible(0)
		w.Inventory.UpdateInfallible(Inventory{})
		w.Ending.UpdateInfallible(0)
		w.HP.UpdateInfallible(0)
		return
	}
	w.MapID.Update(s.MapID, s.MapIDOK)
	w.Frames.Update(s.Frames, s.FramesOK)
	w.Inventory.Update(s.Inventory, s.InventoryOK)
	w.Ending.Update(s.Ending, s.EndingOK)
	w.HP.Update(s.HP, s.HPOK)
}

// reset clears every watcher's history.
func (w *Watchers) reset() {
	w.MapID.Reset()
	w.Frames.Reset()
	w.Inventory.Reset()
	w.Ending.Reset()
	w.HP.Reset()
}
