package internal

// KeyCount is the number of keys on the hexadecimal keypad
const KeyCount = 16

// Keypad latches the state of the 16 keys. A 16-bit integer holds the key
// values as individual bits, so when 0 is pushed the 0'th bit is set and so on.
type Keypad struct {
	key uint16
}

// SetKey records a key press or release. Indices above 0xF are ignored.
func (k *Keypad) SetKey(code uint8, pressed bool) {
	if code >= KeyCount {
		return
	}
	if pressed {
		k.key |= 1 << code
	} else {
		k.key &^= 1 << code
	}
}

// IsDown reports whether the key is held. Only the low nibble of code is used.
func (k *Keypad) IsDown(code uint8) bool {
	mask := uint16(1) << (code & 0x0F)
	return k.key&mask == mask
}

// AnyDown returns the lowest held key
func (k *Keypad) AnyDown() (uint8, bool) {
	for code := uint8(0); code < KeyCount; code++ {
		if k.IsDown(code) {
			return code, true
		}
	}
	return 0, false
}

// Reset releases all keys
func (k *Keypad) Reset() {
	k.key = 0
}
