package memlib

const (
	numClasses = 8
	classWidth = 64
)

func sizeClass(size uint32) int {
	class := int(size / classWidth)
	if class >= numClasses {
		return numClasses - 1
	}
	return class
}

// insideHeap reports whether p is a plausible payload offset given the
// current bounds. Traversals use it as the authoritative stop condition, so
// a stale link is treated as end-of-list rather than followed.
func (h *Heap) insideHeap(p Ptr) bool {
	return uint32(p) >= h.start && uint32(p) < h.end
}

// listInsert pushes p onto the head of the class list matching its
// current size.
func (h *Heap) listInsert(p Ptr) {
	class := sizeClass(h.blockSize(p))
	head := h.lists[class]
	if head != Null && head != p {
		h.setNextFree(p, head)
	} else {
		h.setNextFree(p, Null)
	}
	h.lists[class] = p
}

// listRemove splices p out of the class list matching its current size.
// Must run before the block's header is rewritten: the class is derived
// from the size still in the tag.
func (h *Heap) listRemove(p Ptr) {
	class := sizeClass(h.blockSize(p))
	prev := Null
	for q := h.lists[class]; q != Null && h.insideHeap(q); q = h.nextFree(q) {
		if q != p {
			prev = q
			continue
		}
		next := h.nextFree(q)
		if next != Null && !h.insideHeap(next) {
			next = Null
		}
		if prev == Null {
			h.lists[class] = next
		} else {
			h.setNextFree(prev, next)
		}
		h.setNextFree(p, Null)
		return
	}
}

// findFit returns the first free block of at least size bytes, scanning
// the starting class front-to-back and then each higher class in turn.
func (h *Heap) findFit(size uint32) Ptr {
	for class := sizeClass(size); class < numClasses; class++ {
		for p := h.lists[class]; p != Null && h.insideHeap(p); p = h.nextFree(p) {
			if !h.blockAllocated(p) && h.blockSize(p) >= size {
				return p
			}
		}
	}
	return Null
}

func (h *Heap) contentOfClass(class int) []Ptr {
	var result []Ptr
	for p := h.lists[class]; p != Null && h.insideHeap(p); p = h.nextFree(p) {
		result = append(result, p)
	}
	return result
}
