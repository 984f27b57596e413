//go:build linux

package procfs

import (
	"bytes"
	"fmt"

	"splitwatch/process"
)

// Scan searches for the given pattern in anonymous writable process memory
// and returns all matching addresses. Emulated console RAM always lives in
// regions like these, so file-backed and read-only regions are skipped.
func (p *Proc) Scan(aob process.AOB) ([]process.ProcessMemoryAddress, error) {
	memMap, err := p.GetMemoryMap()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory map: %w", err)
	}

	if len(aob.Pattern) == 0 {
		return nil, fmt.Errorf("empty pattern")
	}
	if len(aob.Mask) != 0 && len(aob.Mask) != len(aob.Pattern) {
		return nil, fmt.Errorf("mask length (%d) doesn't match pattern length (%d)",
			len(aob.Mask), len(aob.Pattern))
	}

	p.log.Debugln("Starting memory scan for pattern of length", len(aob.Pattern))

	var results []process.ProcessMemoryAddress

	for _, region := range memMap {
		if !region.IsReadable() || !region.IsWritable() || !region.IsAnonymous() {
			continue
		}

		data, err := p.ReadMemory(process.ProcessMemoryAddress(region.Address), process.ProcessMemorySize(region.Size))
		if err != nil {
			if err == process.ErrProcessExited {
				return nil, err
			}
			// Some regions fail to read due to permissions; skip and continue
			p.log.Debugln("Failed to read memory region at", fmt.Sprintf("%x", region.Address), err)
			continue
		}

		for _, off := range findPattern(data, aob) {
			results = append(results, process.ProcessMemoryAddress(region.Address+uint64(off)))
		}
	}

	return results, nil
}

// ScanFirst searches for the first occurrence of a pattern in process memory
func (p *Proc) ScanFirst(aob process.AOB) (process.ProcessMemoryAddress, error) {
	results, err := p.Scan(aob)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("pattern not found")
	}
	return results[0], nil
}

func findPattern(data []byte, aob process.AOB) []int {
	// Exact patterns take the fast path through bytes.Index
	if len(aob.Mask) == 0 {
		var out []int
		idx := 0
		for {
			i := bytes.Index(data[idx:], aob.Pattern)
			if i < 0 {
				return out
			}
			out = append(out, idx+i)
			idx += i + 1
		}
	}

	var out []int
	limit := len(data) - len(aob.Pattern)
	for i := 0; i <= limit; i++ {
		if matchAt(data[i:], aob) {
			out = append(out, i)
		}
	}
	return out
}

func matchAt(data []byte, aob process.AOB) bool {
	for j := range aob.Pattern {
		if data[j]&aob.Mask[j] != aob.Pattern[j]&aob.Mask[j] {
			return false
		}
	}
	return true
}
