// Package emucore locates the emulated console's main RAM inside a PS1
// emulator process and exposes game-relative reads on top of it. The game
// sees a fixed 2 MiB address space; the emulator may put it anywhere.
package emucore

import (
	"encoding/binary"
	"errors"
	"fmt"

	"splitwatch/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// RAMSize is the size of PS1 main RAM.
const RAMSize = 2 << 20

// ramMask folds mirrored addresses into the 2 MiB RAM window.
const ramMask = RAMSize - 1

// ErrRAMNotFound is returned when an emulator process is attached but the
// emulated RAM cannot be located in it, typically because no game has
// booted yet.
var ErrRAMNotFound = errors.New("emulated RAM not found")

// Spec describes one supported emulator.
type Spec struct {
	// Name is the process name to attach by (comm or exe basename).
	Name string

	// RAMAnchor and RAMChain declare a pointer chain from a static address
	// to the emulated RAM pointer. An empty chain means the RAM is located
	// by signature scan instead.
	RAMAnchor process.ProcessMemoryAddress
	RAMChain  []process.ProcessMemorySize
}

// KnownEmulators lists the Linux PS1 emulators the agent can attach to, in
// preference order.
var KnownEmulators = []Spec{
	{Name: "duckstation-qt"},
	{Name: "duckstation-nogui"},
	{Name: "DuckStation"},
	{Name: "pcsx-redux"},
	{Name: "ePSXe"},
	{Name: "mednafen"},
	{Name: "retroarch"},
}

// Signature identifies the expected game inside the emulated RAM: the
// game-relative offset of the boot executable name and the accepted codes.
type Signature struct {
	Offset process.ProcessMemorySize
	Codes  [][]byte
}

// Emu is one attach session to an emulator hosting the target game. It is
// invalid the moment any read reports process exit; attach again, never
// repair.
type Emu struct {
	proc process.Process
	spec Spec
	sig  Signature
	base process.ProcessMemoryAddress
	log  *logger.Logger
}

// New wraps an already-open process, resolving the emulated RAM base once.
func New(proc process.Process, spec Spec, sig Signature) (*Emu, error) {
	base, err := resolveBase(proc, spec, sig)
	if err != nil {
		return nil, err
	}

	e := &Emu{
		proc: proc,
		spec: spec,
		sig:  sig,
		base: base,
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorIndigo, coloransi.ColorOrange, "emucore")),
	}
	e.log.Infoln("Emulated RAM of", spec.Name, "at", base.ToString())
	return e, nil
}

// resolveBase locates the emulated RAM: by the emulator's declared pointer
// chain when one is known, else by scanning for the game's boot code string
// and anchoring the RAM window around it.
func resolveBase(proc process.Process, spec Spec, sig Signature) (process.ProcessMemoryAddress, error) {
	if len(spec.RAMChain) > 0 {
		data, err := proc.ReadPointerChain(spec.RAMAnchor, 8, spec.RAMChain...)
		if err != nil {
			if errors.Is(err, process.ErrProcessExited) {
				return 0, err
			}
			return 0, fmt.Errorf("%w: %v", ErrRAMNotFound, err)
		}
		base := process.ProcessMemoryAddress(binary.LittleEndian.Uint64(data))
		if verifyBase(proc, base, sig) {
			return base, nil
		}
		return 0, ErrRAMNotFound
	}

	for _, code := range sig.Codes {
		addrs, err := proc.Scan(process.ExactAOB(code))
		if err != nil {
			if errors.Is(err, process.ErrProcessExited) {
				return 0, err
			}
			continue
		}
		for _, addr := range addrs {
			if addr < process.ProcessMemoryAddress(sig.Offset) {
				continue
			}
			base := addr - process.ProcessMemoryAddress(sig.Offset)
			if verifyBase(proc, base, sig) {
				return base, nil
			}
		}
	}

	return 0, ErrRAMNotFound
}

// verifyBase confirms a candidate RAM base: the whole RAM window must be
// mapped and the boot code must read back from it.
func verifyBase(proc process.Process, base process.ProcessMemoryAddress, sig Signature) bool {
	if !proc.IsValidAddress(base) || !proc.IsValidAddress(base+RAMSize-1) {
		return false
	}
	for _, code := range sig.Codes {
		data, err := proc.ReadMemory(base+process.ProcessMemoryAddress(sig.Offset), process.ProcessMemorySize(len(code)))
		if err != nil {
			return false
		}
		if string(data) == string(code) {
			return true
		}
	}
	return false
}

// Name returns the emulator process name.
func (e *Emu) Name() string {
	return e.spec.Name
}

// Alive reports whether the emulator process still exists.
func (e *Emu) Alive() bool {
	return e.proc.Alive()
}

// Close releases the underlying process handle.
func (e *Emu) Close() error {
	return e.proc.Close()
}

// ValidGame re-reads the boot code and reports whether the expected game is
// still the one loaded. ErrProcessExited is surfaced; any other read
// failure reads as "wrong game this tick".
func (e *Emu) ValidGame() (bool, error) {
	for _, code := range e.sig.Codes {
		data, err := e.ReadBytes(e.sig.Offset, process.ProcessMemorySize(len(code)))
		if err != nil {
			if errors.Is(err, process.ErrProcessExited) {
				return false, err
			}
			return false, nil
		}
		if string(data) == string(code) {
			return true, nil
		}
	}
	return false, nil
}

func (e *Emu) addr(offset process.ProcessMemorySize) process.ProcessMemoryAddress {
	return e.base + process.ProcessMemoryAddress(uint64(offset)&ramMask)
}

// ReadU8 reads a byte at a game-relative offset.
func (e *Emu) ReadU8(offset process.ProcessMemorySize) (uint8, error) {
	return e.proc.ReadUINT8(e.addr(offset))
}

// ReadU16 reads a little-endian uint16 at a game-relative offset.
func (e *Emu) ReadU16(offset process.ProcessMemorySize) (uint16, error) {
	return e.proc.ReadUINT16(e.addr(offset))
}

// ReadU32 reads a little-endian uint32 at a game-relative offset.
func (e *Emu) ReadU32(offset process.ProcessMemorySize) (uint32, error) {
	return e.proc.ReadUINT32(e.addr(offset))
}

// ReadBytes reads size bytes at a game-relative offset.
func (e *Emu) ReadBytes(offset, size process.ProcessMemorySize) ([]byte, error) {
	return e.proc.ReadMemory(e.addr(offset), size)
}
