//go:build linux

// Package procfs implements the process.Process capability for Linux,
// reading foreign memory with process_vm_readv and /proc metadata.
package procfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	"splitwatch/process"
	"splitwatch/process/memorymap"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// Proc implements the process.Process interface for Linux systems
type Proc struct {
	pid process.ProcessID
	log *logger.Logger
	mm  []memorymap.Item
	mu  sync.Mutex
}

// New creates a new Proc instance
func New() process.Process {
	return &Proc{
		log: logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
}

// NewWithPID creates a new Proc instance and opens it with the given PID
func NewWithPID(pid process.ProcessID) (process.Process, error) {
	p := &Proc{}
	if err := p.Open(pid); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Proc) Open(pid process.ProcessID) error {
	if !procExists(int(pid)) {
		return fmt.Errorf("process with PID %d: %w", pid, process.ErrProcessNotFound)
	}

	p.mu.Lock()
	p.pid = pid
	p.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid)))
	p.mu.Unlock()

	// Initialize memory map - call without holding the lock to avoid deadlock
	if err := p.UpdateMemoryMap(); err != nil {
		return fmt.Errorf("failed to initialize memory map: %w", err)
	}

	p.log.Infoln("Process opened")

	return nil
}

func (p *Proc) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.log.Infoln("Closing process")

	// Reset process state
	p.pid = 0
	p.mm = nil

	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))

	return nil
}

// GetPID returns the process ID
func (p *Proc) GetPID() process.ProcessID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// Alive reports whether the target process still exists.
func (p *Proc) Alive() bool {
	p.mu.Lock()
	pid := p.pid
	p.mu.Unlock()
	if pid == 0 {
		return false
	}
	return procExists(int(pid))
}

func (p *Proc) UpdateMemoryMap() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pid == 0 {
		return process.ErrProcessNotOpen
	}

	mm, err := memorymap.Read(int(p.pid))
	if err != nil {
		return fmt.Errorf("failed to read memory map: %w", err)
	}

	// Find requires the memory map to be sorted by address
	memorymap.Sort(mm)

	p.mm = mm
	return nil
}

func (p *Proc) IsValidAddress(addr process.ProcessMemoryAddress) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.isValidAddressInternal(addr)
}

// Internal helper function that assumes the mutex is already locked
func (p *Proc) isValidAddressInternal(addr process.ProcessMemoryAddress) bool {
	if addr <= 0x10000 {
		return false
	}

	// Upper bound of the x86-64 user-space canonical range. Anonymous mmap
	// regions sit just below it, at 0x7f... addresses.
	if addr > 0x7FFFFFFFFFFF {
		return false
	}

	if item := memorymap.Find(uint64(addr), p.mm); item != nil {
		return item.IsReadable()
	}

	return false
}

func (p *Proc) GetMemoryMap() ([]memorymap.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pid == 0 {
		return nil, process.ErrProcessNotOpen
	}

	// Make a copy of the memory map to prevent external modification
	result := make([]memorymap.Item, len(p.mm))
	copy(result, p.mm)

	return result, nil
}

// ----- helpers -----

func procExists(pid int) bool {
	// Fast path: stat /proc/<pid>
	_, err := os.Stat(filepath.Join("/proc", strconv.Itoa(pid)))
	if err == nil {
		return true
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	// For transient errors (permission, EIO): fall back to kill 0
	return syscall.Kill(pid, 0) == nil
}
