/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chip8

import (
	"math/bits"
	"sync/atomic"
)

const KeyCount int = 16

// Keypad is the input collaborator. Key values are 0x0-0xF; anything else
// is never down.
type Keypad interface {
	IsKeyDown(key uint8) bool

	// PressedKey returns a key pressed since the last call, if any.
	PressedKey() (uint8, bool)
}

// KeyState is a Keypad fed by frontend key events. It is safe for use from
// any goroutine.
type KeyState struct {
	down    [KeyCount]atomic.Bool
	pressed atomic.Uint32 // one bit per key, set on each up to down edge
}

var _ Keypad = (*KeyState)(nil)

// SetKey records a key transition. Unknown keys are ignored.
func (k *KeyState) SetKey(key uint8, down bool) {
	if int(key) >= KeyCount {
		return
	}
	if k.down[key].Swap(down) || !down {
		return
	}
	k.pressed.Or(1 << key)
}

func (k *KeyState) IsKeyDown(key uint8) bool {
	if int(key) >= KeyCount {
		return false
	}
	return k.down[key].Load()
}

// PressedKey consumes the lowest pending press.
func (k *KeyState) PressedKey() (uint8, bool) {
	for {
		p := k.pressed.Load()
		if p == 0 {
			return 0, false
		}
		key := bits.TrailingZeros32(p)
		if k.pressed.CompareAndSwap(p, p&^(1<<key)) {
			return uint8(key), true
		}
	}
}

// Reset releases every key and drops pending presses.
func (k *KeyState) Reset() {
	for i := range k.down {
		k.down[i].Store(false)
	}
	k.pressed.Store(0)
}
