//go:build unix

package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappedGrow(t *testing.T) {
	m, err := NewMapped(1 << 16)
	assert.Nil(t, err)
	defer func() {
		assert.Nil(t, m.Close())
	}()

	assert.Equal(t, uint32(0), m.Size())

	off, ok := m.Grow(1 << 12)
	assert.True(t, ok)
	assert.Equal(t, uint32(0), off)

	buf := m.Bytes()
	buf[0] = 0xcd
	buf[len(buf)-1] = 0xef

	off, ok = m.Grow(1 << 12)
	assert.True(t, ok)
	assert.Equal(t, uint32(1<<12), off)
	assert.Equal(t, byte(0xcd), m.Bytes()[0])
	assert.Equal(t, byte(0xef), m.Bytes()[1<<12-1])
}

func TestMappedExhausted(t *testing.T) {
	m, err := NewMapped(1 << 12)
	assert.Nil(t, err)
	defer func() {
		assert.Nil(t, m.Close())
	}()

	_, ok := m.Grow(1 << 12)
	assert.True(t, ok)

	_, ok = m.Grow(1)
	assert.False(t, ok)
	assert.Equal(t, uint32(1<<12), m.Size())
}
