package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineAndSplit(t *testing.T) {
	v := Combine(0x12, 0x34)
	assert.Equal(t, uint16(0x1234), v)
	assert.Equal(t, uint8(0x12), High(v))
	assert.Equal(t, uint8(0x34), Low(v))
}

func TestIsSet(t *testing.T) {
	assert.True(t, IsSet(0, 0x01))
	assert.False(t, IsSet(0, 0xFE))
	assert.True(t, IsSet(7, 0x80))
}

func TestSetAndReset(t *testing.T) {
	assert.Equal(t, uint8(0x81), Set(7, 0x01))
	assert.Equal(t, uint8(0x00), Reset(7, 0x80))
}
