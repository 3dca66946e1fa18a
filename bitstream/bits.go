// Package bitstream is the 1632-bit configuration codec: it packs a
// clbcfg.Record into the irregularly-addressed bit layout the fabric
// expects, and decodes that layout back into a Record. The address tables
// in addresses.go are themselves the ground truth for "where" each field
// lives; the codec in codec.go only ever reads and writes through them.
package bitstream

import "github.com/clbtoolchain/clbfab/clberr"

// Length is the size of a packed configuration buffer: 102 16-bit words.
const Length = 102 * 16

// Bits is a fixed-size 1632-bit buffer, addressed bit by bit. The zero
// value is a buffer of all zeros, which is also what a fresh device's
// configuration store reads as.
type Bits struct {
	bits [Length]bool
}

// GetBit reads bit idx. Returns IndexOutOfRange if idx is outside 0..1631.
func (b *Bits) GetBit(idx int) (bool, error) {
	if idx < 0 || idx >= Length {
		return false, clberr.NewIndexOutOfRange(idx, Length)
	}
	return b.bits[idx], nil
}

// SetBit writes bit idx. Returns IndexOutOfRange if idx is outside 0..1631.
func (b *Bits) SetBit(idx int, v bool) error {
	if idx < 0 || idx >= Length {
		return clberr.NewIndexOutOfRange(idx, Length)
	}
	b.bits[idx] = v
	return nil
}

// bitsToInt reads the bits named by bitMap (LSB at bitMap[0]) and combines
// them into an integer.
func bitsToInt(b *Bits, bitMap []int) (int, error) {
	val := 0
	for i, addr := range bitMap {
		bit, err := b.GetBit(addr)
		if err != nil {
			return 0, err
		}
		if bit {
			val |= 1 << uint(i)
		}
	}
	return val, nil
}

// intToBits writes value into the bits named by bitMap (LSB at bitMap[0]).
// field is used only to name the ValueDoesNotFit error if value does not
// fit in len(bitMap) bits.
func intToBits(b *Bits, field string, value int, bitMap []int) error {
	if value < 0 || value >= (1<<uint(len(bitMap))) {
		return clberr.NewValueDoesNotFit(field, value, len(bitMap))
	}
	for i, addr := range bitMap {
		if err := b.SetBit(addr, (value>>uint(i))&1 != 0); err != nil {
			return err
		}
	}
	return nil
}
