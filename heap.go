// Package memlib is a light-weight dynamic memory allocation package.
// Allocation is first-fit search of a segregated fits table combined with
// block splitting; deallocation coalesces with free physical neighbors
// found through boundary tags. Blocks are addressed by byte offsets into a
// growable region supplied by a region.Region.
package memlib

import (
	"errors"
	"unsafe"

	"github.com/ostosh/memlib/region"
)

// ErrRegionExhausted ...
var ErrRegionExhausted = errors.New("memlib: region cannot supply initial extent")

// Heap ...
type Heap struct {
	region region.Region
	mem    []byte

	start uint32 // payload offset of the guard block
	end   uint32 // current end of the region

	lists [numClasses]Ptr

	memoryUsage uint64
}

// New initializes a heap on r: one pad word so payloads land 8-aligned,
// then a permanently-allocated minimum-size guard block, so the first real
// block always has a predecessor whose tag is safe to inspect.
func New(r region.Region) (*Heap, error) {
	if _, ok := r.Grow(wordSize + minBlockSize); !ok {
		return nil, ErrRegionExhausted
	}

	h := &Heap{region: r}
	h.refreshBounds()

	guard := Ptr(wordSize + wordSize)
	h.setTags(guard, minBlockSize, true)
	h.start = uint32(guard)
	return h, nil
}

func (h *Heap) refreshBounds() {
	h.mem = h.region.Bytes()
	h.end = h.region.Size()
}

// Allocate returns the 8-byte aligned payload offset of a block of at
// least size bytes, or Null for a zero-size request and on out-of-memory.
// Payload bytes are not zeroed.
func (h *Heap) Allocate(size uint32) Ptr {
	if size == 0 || size > maxRequest {
		return Null
	}

	blockSize := alignUp(size + overhead)
	if blockSize < minBlockSize {
		blockSize = minBlockSize
	}

	p := h.findFit(blockSize)
	if p == Null {
		p = h.growHeap(blockSize)
		if p == Null {
			return Null
		}
		h.setTags(p, blockSize, true)
		h.memoryUsage += uint64(blockSize)
		return p
	}

	total := h.blockSize(p)
	h.listRemove(p)
	if remainder := total - blockSize; remainder >= minBlockSize {
		h.setTags(p, blockSize, true)
		rest := p + Ptr(blockSize)
		h.setTags(rest, remainder, false)
		h.listInsert(rest)
	} else {
		// Leftover too small to stand alone: the whole candidate is
		// handed out and the slack stays internal to the block.
		h.setTags(p, total, true)
	}
	h.memoryUsage += uint64(h.blockSize(p))
	return p
}

// Deallocate frees the block at p, merging it with either physically
// adjacent neighbor that is currently free. Null is a no-op. Freeing an
// offset twice, or one not returned by this heap, is undefined.
func (h *Heap) Deallocate(p Ptr) {
	if p == Null {
		return
	}
	size := h.blockSize(p)
	h.memoryUsage -= uint64(size)
	h.coalesce(p, size)
}

func (h *Heap) coalesce(p Ptr, size uint32) {
	start, total := p, size

	prev := h.prevBlock(p)
	if h.insideHeap(prev) && !h.blockAllocated(prev) {
		total += h.blockSize(prev)
		h.listRemove(prev)
		start = prev
	}

	next := h.nextBlock(p)
	if h.insideHeap(next) && !h.blockAllocated(next) {
		total += h.blockSize(next)
		h.listRemove(next)
	}

	h.setTags(start, total, false)
	h.listInsert(start)
}

// Reallocate resizes the block at p. A Null p allocates fresh; a zero size
// frees p and returns Null. Otherwise the contents are copied into a new
// block, up to the smaller of the old payload and size, and the old block
// is freed. On failure Null is returned and p stays live.
func (h *Heap) Reallocate(p Ptr, size uint32) Ptr {
	if p == Null {
		return h.Allocate(size)
	}
	if size == 0 {
		h.Deallocate(p)
		return Null
	}

	newPtr := h.Allocate(size)
	if newPtr == Null {
		return Null
	}

	n := h.blockSize(p) - overhead
	if size < n {
		n = size
	}
	copy(h.Bytes(newPtr, n), h.Bytes(p, n))

	h.Deallocate(p)
	return newPtr
}

// growHeap extends the region by exactly blockSize bytes and returns the
// payload offset of the new block. Tags are the caller's to write.
func (h *Heap) growHeap(blockSize uint32) Ptr {
	off, ok := h.region.Grow(blockSize)
	if !ok {
		return Null
	}
	h.refreshBounds()
	return Ptr(off + wordSize)
}

// Bytes returns a view of n payload bytes at p. The region never moves, so
// views stay valid across later growth.
func (h *Heap) Bytes(p Ptr, n uint32) []byte {
	return h.mem[uint32(p) : uint32(p)+n]
}

// ToRealAddr ...
func (h *Heap) ToRealAddr(p Ptr) unsafe.Pointer {
	return unsafe.Pointer(&h.mem[p])
}

// GetMemUsage returns the total bytes of currently allocated blocks,
// tags included.
func (h *Heap) GetMemUsage() uint64 {
	return h.memoryUsage
}
