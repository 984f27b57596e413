//go:build linux

package procfs

import (
	"fmt"

	"splitwatch/process"
)

// ReadPointerChain walks pointer fields at all offsets except the last,
// which is treated as a raw byte offset into the final struct, and then
// reads `size` bytes starting there.
//
// Example:
//
//	// base -> [ +0 ]ptrA -> [ +24 ]ptrB
//	// final read at (ptrB + 504), length 0x10
//	data, err := proc.ReadPointerChain(base, 0x10, 0, 24, 504)
//
// Every hop is independently fallible; a NULL or unmapped hop degrades to an
// error, never to a wild read.
func (p *Proc) ReadPointerChain(
	base process.ProcessMemoryAddress,
	size process.ProcessMemorySize,
	offsets ...process.ProcessMemorySize,
) ([]byte, error) {

	// No offsets: read size bytes directly at base
	if len(offsets) == 0 {
		return p.ReadMemory(base, size)
	}

	current := base

	// Deref each offset except the last
	for i := 0; i < len(offsets)-1; i++ {
		off := offsets[i]
		addr := current + process.ProcessMemoryAddress(off)

		ptr := p.ReadPOINTER2(addr)
		if ptr == 0 {
			return nil, fmt.Errorf("ReadPointerChain: NULL pointer at step %d (addr=%#x + off=%#x): %w", i, uint64(current), uint64(off), process.ErrInvalidPointer)
		}
		if !p.IsValidAddress(ptr) {
			return nil, fmt.Errorf("ReadPointerChain: invalid pointer %#x at step %d (addr=%#x + off=%#x): %w", uint64(ptr), i, uint64(current), uint64(off), process.ErrInvalidPointer)
		}
		current = ptr
	}

	// Last offset is a raw byte offset into `current` (no deref)
	finalOff := offsets[len(offsets)-1]
	start := current + process.ProcessMemoryAddress(finalOff)

	data, err := p.ReadMemory(start, size)
	if err != nil {
		return nil, fmt.Errorf("ReadPointerChain: read at %#x (size=%#x) failed: %w", uint64(start), uint64(size), err)
	}
	return data, nil
}
