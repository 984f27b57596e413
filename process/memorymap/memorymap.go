// Package memorymap models the mapped regions of a process's address space.
package memorymap

import (
	"fmt"
	"sort"
)

// Item represents a memory region in a process's address space
type Item struct {
	Address uint64 // The starting address of the memory region
	Size    uint   // The size of the memory region in bytes
	Perms   string // Permissions (e.g., "r-xp" for read, execute, private)
	Path    string // Backing pathname, empty for anonymous mappings
}

// String returns a string representation of the memory map item
func (item Item) String() string {
	return fmt.Sprintf("Address: %x, Size: %d, Perms: %s, Path: %s", item.Address, item.Size, item.Perms, item.Path)
}

func (item Item) IsReadable() bool {
	return len(item.Perms) > 0 && item.Perms[0] == 'r'
}

func (item Item) IsWritable() bool {
	return len(item.Perms) > 1 && item.Perms[1] == 'w'
}

// IsAnonymous reports whether the region has no backing file. Emulated
// console RAM lives in regions like these.
func (item Item) IsAnonymous() bool {
	return item.Path == ""
}

// Sort orders regions by start address. Find requires sorted input.
func Sort(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Address < items[j].Address
	})
}

// Find returns the region containing addr, or nil. items must be sorted.
func Find(addr uint64, items []Item) *Item {
	i := sort.Search(len(items), func(i int) bool {
		return items[i].Address+uint64(items[i].Size) > addr
	})
	if i < len(items) && items[i].Address <= addr {
		return &items[i]
	}

	return nil
}
