package memlib

import "fmt"

// Check walks the whole heap and verifies its structural invariants:
// well-formed sizes, blocks inside bounds, header/footer agreement, no two
// adjacent free blocks, and agreement between the block chain and the
// segregated index. It returns nil on a consistent heap and a descriptive
// error for the first violation found.
func (h *Heap) Check() error {
	prevFree := false
	for p := Ptr(h.start); uint32(p) < h.end; p = h.nextBlock(p) {
		size := h.blockSize(p)
		if size < minBlockSize {
			return fmt.Errorf("block %d: size %d below minimum", p, size)
		}
		if size%alignment != 0 {
			return fmt.Errorf("block %d: size %d not 8-byte aligned", p, size)
		}
		if uint32(p)%alignment != 0 {
			return fmt.Errorf("block %d: payload not 8-byte aligned", p)
		}
		if uint32(p)+size-wordSize > h.end {
			return fmt.Errorf("block %d: size %d runs past heap end %d", p, size, h.end)
		}

		header := h.word(uint32(p) - wordSize)
		footer := h.word(uint32(p) + size - overhead)
		if header != footer {
			return fmt.Errorf("block %d: header %#x and footer %#x disagree", p, header, footer)
		}

		free := !h.blockAllocated(p)
		if free && prevFree {
			return fmt.Errorf("block %d: adjacent to a preceding free block", p)
		}
		if free && !h.inList(p) {
			return fmt.Errorf("block %d: free but missing from class %d list", p, sizeClass(size))
		}
		prevFree = free
	}

	for class := 0; class < numClasses; class++ {
		for _, p := range h.contentOfClass(class) {
			if h.blockAllocated(p) {
				return fmt.Errorf("class %d: block %d listed but allocated", class, p)
			}
			if got := sizeClass(h.blockSize(p)); got != class {
				return fmt.Errorf("class %d: block %d of size %d belongs to class %d",
					class, p, h.blockSize(p), got)
			}
		}
	}
	return nil
}

func (h *Heap) inList(p Ptr) bool {
	class := sizeClass(h.blockSize(p))
	for q := h.lists[class]; q != Null && h.insideHeap(q); q = h.nextFree(q) {
		if q == p {
			return true
		}
	}
	return false
}
