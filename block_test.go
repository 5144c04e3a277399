package memlib

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ostosh/memlib/region"
)

func newTestHeap(t *testing.T, limit uint32) *Heap {
	t.Helper()
	h, err := New(region.NewBuffer(limit))
	assert.Nil(t, err)
	return h
}

func TestAlignUp(t *testing.T) {
	table := []struct {
		name     string
		size     uint32
		expected uint32
	}{
		{
			name:     "zero",
			size:     0,
			expected: 0,
		},
		{
			name:     "one",
			size:     1,
			expected: 8,
		},
		{
			name:     "already-aligned",
			size:     64,
			expected: 64,
		},
		{
			name:     "just-above",
			size:     65,
			expected: 72,
		},
		{
			name:     "just-below",
			size:     71,
			expected: 72,
		},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			assert.Equal(t, e.expected, alignUp(e.size))
		})
	}
}

func TestPack(t *testing.T) {
	assert.Equal(t, uint32(64), pack(64, false))
	assert.Equal(t, uint32(65), pack(64, true))
	assert.Equal(t, uint32(minBlockSize|allocatedBit), pack(minBlockSize, true))
}

func TestSetTags(t *testing.T) {
	h := newTestHeap(t, 1<<12)

	p := h.growHeap(48)
	h.setTags(p, 48, true)

	assert.Equal(t, uint32(48|allocatedBit), h.word(uint32(p)-wordSize))
	assert.Equal(t, uint32(48|allocatedBit), h.word(uint32(p)+48-overhead))
	assert.Equal(t, uint32(48), h.blockSize(p))
	assert.True(t, h.blockAllocated(p))

	h.setTags(p, 48, false)
	assert.Equal(t, uint32(48), h.word(uint32(p)-wordSize))
	assert.False(t, h.blockAllocated(p))
}

func TestBlockNeighbors(t *testing.T) {
	h := newTestHeap(t, 1<<12)

	a := h.growHeap(32)
	h.setTags(a, 32, true)
	b := h.growHeap(48)
	h.setTags(b, 48, false)

	assert.Equal(t, b, h.nextBlock(a))
	assert.Equal(t, a, h.prevBlock(b))

	guard := Ptr(h.start)
	assert.Equal(t, guard, h.prevBlock(a))
	assert.Equal(t, uint32(minBlockSize), h.blockSize(guard))
	assert.True(t, h.blockAllocated(guard))
}

func TestFreeLink(t *testing.T) {
	h := newTestHeap(t, 1<<12)

	a := h.growHeap(32)
	h.setTags(a, 32, false)
	b := h.growHeap(32)
	h.setTags(b, 32, false)

	h.setNextFree(a, b)
	assert.Equal(t, b, h.nextFree(a))

	h.setNextFree(a, Null)
	assert.Equal(t, Null, h.nextFree(a))
}
