package agent

import (
	"splitwatch/emucore"
	"splitwatch/process"
)

// Offsets of observed values, relative to the start of the emulated RAM.
// Stable across both NTSC revisions of the game.
const (
	offGameCode  process.ProcessMemorySize = 0x93DC
	offMapID     process.ProcessMemorySize = 0xB3EF2
	offIGT       process.ProcessMemorySize = 0xB3EFC
	offEnding    process.ProcessMemorySize = 0xB3F28
	offHP        process.ProcessMemorySize = 0xB3F2E
	offInventory process.ProcessMemorySize = 0xB3F42
)

// Each inventory slot is three uint16 fields; the first is the item id.
const inventorySlotBytes = 6

// gameCodes are the accepted NTSC boot executable names.
var gameCodes = [][]byte{
	[]byte("SLUS_008.98"),
	[]byte("SLUS_011.99"),
}

// GameSignature identifies the target game inside emulated RAM.
func GameSignature() emucore.Signature {
	return emucore.Signature{
		Offset: offGameCode,
		Codes:  gameCodes,
	}
}
