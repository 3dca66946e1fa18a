package boolexpr

import "strconv"

// LUTMask is the 16-bit truth table the LUT hardware interprets. Bit w of
// the mask (w = 0..15) is the expression's value at the 4-tuple
// (bit0(w), bit1(w), bit2(w), bit3(w)) — i.e. a = bit0, b = bit1, c = bit2,
// d = bit3.
type LUTMask uint16

// Synthesize evaluates expr across all 16 input combinations and packs the
// results into a LUTMask. There are no failure modes here: any invariant
// violation in the caller's tree (e.g. a signal with an unknown port
// letter) is a concern of the port-resolution layer, not this one.
func Synthesize(expr *Expr) LUTMask {
	var mask LUTMask
	for w := 0; w < 16; w++ {
		in := Four{
			w&1 != 0,
			w&2 != 0,
			w&4 != 0,
			w&8 != 0,
		}
		if expr.Eval(in) {
			mask |= LUTMask(1 << uint(w))
		}
	}
	return mask
}

// String renders the mask as the 16-character '0'/'1' form used in FASM
// and in BLE_CFG.LUT_CONFIG: character index i (counted from the most
// significant position, i.e. bit 15) encodes the expression's value at
// input w = 15-i.
func (m LUTMask) String() string {
	s := strconv.FormatUint(uint64(m), 2)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}

// ParseLUTMask parses the 16-character '0'/'1' form back into a LUTMask.
func ParseLUTMask(s string) (LUTMask, error) {
	if len(s) != 16 {
		return 0, errLUTMaskLength(len(s))
	}
	v, err := strconv.ParseUint(s, 2, 16)
	if err != nil {
		return 0, err
	}
	return LUTMask(v), nil
}

type errLUTMaskLength int

func (e errLUTMaskLength) Error() string {
	return "LUT mask must be exactly 16 characters of '0'/'1', got length " + strconv.Itoa(int(e))
}

// At returns the expression's value at input w (0..15) as encoded in the
// mask, i.e. bit w of the mask.
func (m LUTMask) At(w int) bool {
	return m&(1<<uint(w)) != 0
}

// ActiveInputs returns, for each positional input 0..3, whether toggling
// that input bit ever changes the LUT's output — the minimal set of
// inputs the LUT actually uses. This mirrors the original implementation's
// get_active_lut_inputs: for every pair of addresses that differ only in
// bit k, if the two outputs differ, input k is active.
func (m LUTMask) ActiveInputs() [4]bool {
	var active [4]bool
	for addr := 0; addr < 16; addr++ {
		base := m.At(addr)
		for bit := 0; bit < 4; bit++ {
			if active[bit] || addr&(1<<uint(bit)) != 0 {
				continue
			}
			if m.At(addr|1<<uint(bit)) != base {
				active[bit] = true
			}
		}
	}
	return active
}
