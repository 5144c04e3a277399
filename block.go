package memlib

import "unsafe"

// Ptr is a byte offset into the heap region addressing the first payload
// byte of a block.
type Ptr uint32

// Null is the null pointer. Offset 0 is the alignment pad word before the
// guard block, so it can never address a payload. It doubles as the
// free-list terminator.
const Null Ptr = 0

const (
	wordSize     = 4
	overhead     = 8 // header + footer
	alignment    = 8
	minBlockSize = 16
	allocatedBit = 0x1

	// maxRequest keeps size+overhead from wrapping uint32.
	maxRequest = (1 << 32) - (minBlockSize + alignment)
)

func alignUp(size uint32) uint32 {
	return (size + (alignment - 1)) &^ (alignment - 1)
}

func pack(size uint32, allocated bool) uint32 {
	if allocated {
		return size | allocatedBit
	}
	return size
}

func (h *Heap) word(off uint32) uint32 {
	return *(*uint32)(unsafe.Pointer(&h.mem[off]))
}

func (h *Heap) setWord(off uint32, value uint32) {
	*(*uint32)(unsafe.Pointer(&h.mem[off])) = value
}

// A block spans [p-wordSize, p-wordSize+size): 4-byte header, payload,
// 4-byte footer, both tags encoding size|allocatedBit identically.

func (h *Heap) blockSize(p Ptr) uint32 {
	return h.word(uint32(p)-wordSize) &^ (alignment - 1)
}

func (h *Heap) blockAllocated(p Ptr) bool {
	return h.word(uint32(p)-wordSize)&allocatedBit != 0
}

func (h *Heap) setTags(p Ptr, size uint32, allocated bool) {
	tag := pack(size, allocated)
	h.setWord(uint32(p)-wordSize, tag)
	h.setWord(uint32(p)+size-overhead, tag)
}

func (h *Heap) nextBlock(p Ptr) Ptr {
	return p + Ptr(h.blockSize(p))
}

// prevBlock reads the predecessor's footer, which sits just before this
// block's header.
func (h *Heap) prevBlock(p Ptr) Ptr {
	return p - Ptr(h.word(uint32(p)-overhead)&^(alignment-1))
}

// The first payload word of a free block is repurposed as the link to the
// next free block of the same size class.

func (h *Heap) nextFree(p Ptr) Ptr {
	return Ptr(h.word(uint32(p)))
}

func (h *Heap) setNextFree(p Ptr, next Ptr) {
	h.setWord(uint32(p), uint32(next))
}
