package memorymap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMaps = `00400000-0040b000 r-xp 00000000 08:01 1234 /usr/bin/emulator
0060a000-0060b000 rw-p 0000a000 08:01 1234 /usr/bin/emulator
7f2e40000000-7f2e40200000 rw-p 00000000 00:00 0
7f2e42000000-7f2e42021000 r--p 00000000 08:01 5678 /usr/lib/libc.so.6
7fffa7a52000-7fffa7a73000 rw-p 00000000 00:00 0 [stack]
garbage line
ffffffffff600000-ffffffffff601000 --xp 00000000 00:00 0 [vsyscall]
`

func TestParse(t *testing.T) {
	items, err := Parse(strings.NewReader(sampleMaps))
	require.NoError(t, err)
	require.Len(t, items, 6, "garbage lines are skipped")

	assert.Equal(t, uint64(0x400000), items[0].Address)
	assert.Equal(t, uint(0xb000), items[0].Size)
	assert.Equal(t, "r-xp", items[0].Perms)
	assert.Equal(t, "/usr/bin/emulator", items[0].Path)

	anon := items[2]
	assert.Equal(t, uint64(0x7f2e40000000), anon.Address)
	assert.Equal(t, "", anon.Path)
	assert.True(t, anon.IsAnonymous())
	assert.True(t, anon.IsReadable())
	assert.True(t, anon.IsWritable())

	stack := items[4]
	assert.Equal(t, "[stack]", stack.Path)
	assert.False(t, stack.IsAnonymous())

	vsyscall := items[5]
	assert.False(t, vsyscall.IsReadable())
	assert.False(t, vsyscall.IsWritable())
}

func TestFind(t *testing.T) {
	items := []Item{
		{Address: 0x1000, Size: 0x1000, Perms: "r--p"},
		{Address: 0x5000, Size: 0x2000, Perms: "rw-p"},
		{Address: 0x9000, Size: 0x1000, Perms: "r-xp"},
	}
	Sort(items)

	assert.Nil(t, Find(0x0fff, items))
	require.NotNil(t, Find(0x1000, items))
	assert.Equal(t, uint64(0x1000), Find(0x1fff, items).Address)
	assert.Nil(t, Find(0x2000, items), "end of region is exclusive")
	assert.Equal(t, uint64(0x5000), Find(0x6abc, items).Address)
	assert.Nil(t, Find(0x8000, items))
	assert.Equal(t, uint64(0x9000), Find(0x9000, items).Address)
	assert.Nil(t, Find(0xa000, items))
}

func TestFind_UnsortedInputGetsSorted(t *testing.T) {
	items := []Item{
		{Address: 0x9000, Size: 0x1000},
		{Address: 0x1000, Size: 0x1000},
	}
	Sort(items)
	assert.Equal(t, uint64(0x1000), items[0].Address)
	assert.Equal(t, uint64(0x1000), Find(0x1800, items).Address)
}
