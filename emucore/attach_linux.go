//go:build linux

package emucore

import (
	"errors"

	"splitwatch/process"
	"splitwatch/procfs"
)

// Attach tries each known emulator in order and returns the first one that
// both exists and hosts a recognizable game. procName, when non-empty,
// restricts the search to that single process name.
//
// Not finding anything is a normal condition; the caller owns the retry
// cadence. A found emulator without a bootable game reads as not found.
func Attach(procName string, sig Signature) (*Emu, error) {
	specs := KnownEmulators
	if procName != "" {
		specs = []Spec{specForName(procName)}
	}

	for _, spec := range specs {
		proc, err := procfs.Attach(spec.Name)
		if err != nil {
			if errors.Is(err, process.ErrProcessNotFound) {
				continue
			}
			return nil, err
		}

		emu, err := New(proc, spec, sig)
		if err != nil {
			proc.Close()
			continue
		}
		return emu, nil
	}

	return nil, process.ErrProcessNotFound
}

// specForName returns the known spec for a process name, or a scan-based
// spec for an emulator we have no pointer chain for.
func specForName(name string) Spec {
	for _, spec := range KnownEmulators {
		if spec.Name == name {
			return spec
		}
	}
	return Spec{Name: name}
}
