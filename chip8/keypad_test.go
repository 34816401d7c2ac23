package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyStateDown(t *testing.T) {
	assert := assert.New(t)

	var k KeyState
	assert.False(k.IsKeyDown(0x5))

	k.SetKey(0x5, true)
	assert.True(k.IsKeyDown(0x5))

	k.SetKey(0x5, false)
	assert.False(k.IsKeyDown(0x5))

	k.SetKey(0x20, true)
	assert.False(k.IsKeyDown(0x20), "unmapped keys are never down")
}

func TestKeyStatePressedKey(t *testing.T) {
	assert := assert.New(t)

	var k KeyState
	_, ok := k.PressedKey()
	assert.False(ok)

	k.SetKey(0xA, true)
	k.SetKey(0xA, true) // repeat while held is not a new press
	k.SetKey(0x3, true)

	key, ok := k.PressedKey()
	assert.True(ok)
	assert.Equal(uint8(0x3), key)

	key, ok = k.PressedKey()
	assert.True(ok)
	assert.Equal(uint8(0xA), key)

	_, ok = k.PressedKey()
	assert.False(ok)

	k.SetKey(0xA, false)
	k.SetKey(0xA, true)
	key, ok = k.PressedKey()
	assert.True(ok)
	assert.Equal(uint8(0xA), key)
}

func TestKeyStateReset(t *testing.T) {
	var k KeyState
	k.SetKey(0x1, true)
	k.Reset()

	assert.False(t, k.IsKeyDown(0x1))
	_, ok := k.PressedKey()
	assert.False(t, ok)
}
