package agent

import (
	"encoding/binary"
	"errors"

	"splitwatch/emucore"
	"splitwatch/process"
	"splitwatch/splitter"
)

// sampler produces one tick's worth of raw memory observations. A returned
// error means the attach session is dead; individual failed reads are
// reported through the sample's OK flags instead.
type sampler interface {
	Sample() (splitter.Sample, error)
	Close() error
}

// emuSampler reads the game's observed values out of emulated RAM.
type emuSampler struct {
	emu *emucore.Emu
}

func (s *emuSampler) Close() error {
	return s.emu.Close()
}

func (s *emuSampler) Sample() (splitter.Sample, error) {
	valid, err := s.emu.ValidGame()
	if err != nil {
		return splitter.Sample{}, err
	}
	if !valid {
		return splitter.Sample{}, nil
	}

	smp := splitter.Sample{ValidGame: true}

	if v, err := s.emu.ReadU16(offMapID); err == nil {
		smp.MapID, smp.MapIDOK = v, true
	} else if fatal(err) {
		return splitter.Sample{}, err
	}

	if v, err := s.emu.ReadU32(offIGT); err == nil {
		smp.Frames, smp.FramesOK = v, true
	} else if fatal(err) {
		return splitter.Sample{}, err
	}

	if v, err := s.emu.ReadU16(offEnding); err == nil {
		smp.Ending, smp.EndingOK = v, true
	} else if fatal(err) {
		return splitter.Sample{}, err
	}

	if v, err := s.emu.ReadU16(offHP); err == nil {
		smp.HP, smp.HPOK = v, true
	} else if fatal(err) {
		return splitter.Sample{}, err
	}

	data, err := s.emu.ReadBytes(offInventory, splitter.InventorySlots*inventorySlotBytes)
	if err == nil {
		for i := 0; i < splitter.InventorySlots; i++ {
			smp.Inventory[i] = binary.LittleEndian.Uint16(data[i*inventorySlotBytes:])
		}
		smp.InventoryOK = true
	} else if fatal(err) {
		return splitter.Sample{}, err
	}

	return smp, nil
}

// fatal distinguishes a dead session from a value merely absent this tick.
func fatal(err error) bool {
	return errors.Is(err, process.ErrProcessExited)
}
