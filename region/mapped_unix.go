//go:build unix

package region

import "golang.org/x/sys/unix"

// Mapped is a Region backed by an anonymous memory mapping. The whole
// capacity is mapped once; Grow bumps a cursor inside the mapping, so the
// kernel commits pages lazily as they are touched.
type Mapped struct {
	buf  []byte
	size uint32
}

// NewMapped ...
func NewMapped(limit uint32) (*Mapped, error) {
	buf, err := unix.Mmap(-1, 0, int(limit),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, err
	}
	return &Mapped{buf: buf}, nil
}

// Grow ...
func (m *Mapped) Grow(n uint32) (uint32, bool) {
	off := m.size
	if uint64(off)+uint64(n) > uint64(len(m.buf)) {
		return 0, false
	}
	m.size = off + n
	return off, true
}

// Size ...
func (m *Mapped) Size() uint32 {
	return m.size
}

// Bytes ...
func (m *Mapped) Bytes() []byte {
	return m.buf[:m.size]
}

// Close unmaps the region. The owning allocator must not be used afterward.
func (m *Mapped) Close() error {
	buf := m.buf
	m.buf = nil
	m.size = 0
	return unix.Munmap(buf)
}
