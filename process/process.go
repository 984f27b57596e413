package process

import (
	"splitwatch/process/memorymap"
)

// Process is the interface for read-only inspection of a running process.
// A Process is exclusively owned; once a read reports ErrProcessExited the
// handle is invalid and a fresh attach is required.
type Process interface {
	// Open opens a process with the given PID for memory reads
	Open(pid ProcessID) error

	// Close closes the process and releases resources
	Close() error

	// GetPID returns the process ID
	GetPID() ProcessID

	// Alive reports whether the target process still exists
	Alive() bool

	// UpdateMemoryMap refreshes the memory map for the process
	UpdateMemoryMap() error

	// IsValidAddress checks if the given memory address is valid and readable
	IsValidAddress(addr ProcessMemoryAddress) bool

	// GetMemoryMap returns a copy of the current memory map
	GetMemoryMap() ([]memorymap.Item, error)

	// ReadMemory reads memory from the process at the specified address
	ReadMemory(addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error)

	// Typed memory reading operations
	ProcessRead

	// Memory scanning operations
	MemoryScanner
}

// ProcessRead defines typed read operations for process memory.
// All integer reads are little-endian, matching the targets we attach to.
type ProcessRead interface {
	// ReadUINT8 reads an unsigned 8-bit integer from the specified address
	ReadUINT8(addr ProcessMemoryAddress) (uint8, error)

	// ReadUINT16 reads an unsigned 16-bit integer from the specified address
	ReadUINT16(addr ProcessMemoryAddress) (uint16, error)

	// ReadUINT32 reads an unsigned 32-bit integer from the specified address
	ReadUINT32(addr ProcessMemoryAddress) (uint32, error)

	// ReadPOINTER reads a pointer value from the specified address
	ReadPOINTER(addr ProcessMemoryAddress) (ProcessMemoryAddress, error)

	// ReadPOINTER2 reads a pointer value from the specified address, zero on error
	ReadPOINTER2(addr ProcessMemoryAddress) ProcessMemoryAddress

	// ReadPointerChain walks pointer fields at all offsets except the last,
	// which is a raw byte offset into the final struct, then reads size bytes there
	ReadPointerChain(base ProcessMemoryAddress, size ProcessMemorySize, offsets ...ProcessMemorySize) ([]byte, error)
}

// MemoryScanner defines operations for searching patterns in process memory
type MemoryScanner interface {
	// Scan searches for a pattern in anonymous writable process memory
	Scan(aob AOB) ([]ProcessMemoryAddress, error)

	// ScanFirst searches for the first occurrence of a pattern
	ScanFirst(aob AOB) (ProcessMemoryAddress, error)
}
