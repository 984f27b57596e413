//go:build linux

package memorymap

import (
	"fmt"
	"os"
)

// Read reads and parses the memory map for a process from /proc/[pid]/maps
func Read(pid int) ([]Item, error) {
	file, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}
