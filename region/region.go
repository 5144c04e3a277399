package region

// Region supplies raw address space to an allocator. The space grows
// monotonically by appending at the end: bytes already handed out never
// move and are never reclaimed.
type Region interface {
	// Grow extends the region by n bytes and returns the offset of the
	// start of the new extent, or false if the backing store is exhausted.
	Grow(n uint32) (uint32, bool)
	// Size ...
	Size() uint32
	// Bytes ...
	Bytes() []byte
}

// Buffer is an in-process Region bounded by a fixed capacity reserved up
// front. Grow only bumps the length, so the backing array never moves.
type Buffer struct {
	buf []byte
}

// NewBuffer ...
func NewBuffer(limit uint32) *Buffer {
	return &Buffer{
		buf: make([]byte, 0, limit),
	}
}

// Grow ...
func (b *Buffer) Grow(n uint32) (uint32, bool) {
	off := uint32(len(b.buf))
	if uint64(off)+uint64(n) > uint64(cap(b.buf)) {
		return 0, false
	}
	b.buf = b.buf[:off+n]
	return off, true
}

// Size ...
func (b *Buffer) Size() uint32 {
	return uint32(len(b.buf))
}

// Bytes ...
func (b *Buffer) Bytes() []byte {
	return b.buf
}
