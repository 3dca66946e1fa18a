package bitstream

// Every address table and computing function in this file is data, not
// logic: the packed layout is an irregular, hard-coded hardware fact, not
// something derivable from first principles. Restored bit for bit from
// original_source/data_model.py's get_lut_setting_bits,
// get_lut_input_bit_addresses, get_flopsel, and the PPS_OUT_BITS /
// COUNT_MUX_CFG_bits / CLKDIV_bits / COUNT_STOP_bits / COUNT_RESET_bits /
// IRQ_bits / MUX_CFG_bits tables.

// lutSettingBits returns the 16 physical bit addresses of logic element
// lutIndex's LUT mask, indexed LSB first (lutSettingBits(i)[w] is the
// address of mask bit w).
func lutSettingBits(lutIndex int) [16]int {
	r := lutIndex % 3
	cycle := 12 - lutIndex/3

	var offsets [4]int
	switch r {
	case 0: // type A
		offsets = [4]int{90, 9, 21, 33}
	case 1: // type B
		offsets = [4]int{48, 11, 22, 32}
	default: // type C
		offsets = [4]int{5, 11, 20, 32}
	}

	base := cycle*128 + offsets[0]

	var lut [16]int
	for b := 0; b < 4; b++ {
		lut[b] = base + b
	}
	for b := 4; b < 8; b++ {
		lut[b] = (base - offsets[1]) + (b - 4)
	}
	for b := 8; b < 12; b++ {
		lut[b] = (base - offsets[2]) + (b - 8)
	}
	for b := 12; b < 16; b++ {
		lut[b] = (base - offsets[3]) + (b - 12)
	}
	return lut
}

// lutInputBitAddresses returns, for each of the four LUT input ports, the
// 5 physical bit addresses of that port's selector code (LSB first).
func lutInputBitAddresses(lutIndex int) (a, b, c, d [5]int) {
	r := lutIndex % 3
	cycle := 12 - lutIndex/3

	type spec struct {
		delta int
		incs  [5]int
	}

	var base int
	var specs map[string]spec

	switch r {
	case 0: // type A: the offset jump lands in LUT_I_B
		base = cycle*128 + 90
		specs = map[string]spec{
			"A": {5, [5]int{0, 1, 2, 3, 4}},
			"B": {16, [5]int{0, 1, 2, 3, 6}},
			"C": {26, [5]int{0, 1, 2, 3, 4}},
			"D": {38, [5]int{0, 1, 2, 3, 4}},
		}
	case 1: // type B: all four groups sequential
		base = cycle*128 + 48
		specs = map[string]spec{
			"A": {7, [5]int{0, 1, 2, 3, 4}},
			"B": {16, [5]int{0, 1, 2, 3, 4}},
			"C": {27, [5]int{0, 1, 2, 3, 4}},
			"D": {39, [5]int{0, 1, 2, 3, 4}},
		}
	default: // type C: the offset jump lands in LUT_I_C
		base = cycle*128 + 5
		specs = map[string]spec{
			"A": {5, [5]int{0, 1, 2, 3, 4}},
			"B": {16, [5]int{0, 1, 2, 3, 4}},
			"C": {27, [5]int{0, 1, 2, 3, 6}},
			"D": {37, [5]int{0, 1, 2, 3, 4}},
		}
	}

	build := func(key string) [5]int {
		sp := specs[key]
		start := base - sp.delta
		var out [5]int
		for i, inc := range sp.incs {
			out[i] = start + inc
		}
		return out
	}

	return build("A"), build("B"), build("C"), build("D")
}

// flopSelBit returns the single physical bit address of logic element
// lutIndex's flip-flop-enable flag.
func flopSelBit(lutIndex int) int {
	types := [3]byte{'A', 'B', 'C'}
	t := types[lutIndex%3]
	cycle := 12 - lutIndex/3

	switch t {
	case 'A':
		return cycle*128 + 61
	case 'B':
		return cycle*128 + 20
	default: // 'C'
		return cycle*128 - 23
	}
}

// ppsOutBits gives the 2-bit address pair for each of the 8 output-pin
// groups, in group order 0..7.
var ppsOutBits = [8][2]int{
	{85, 86},
	{87, 88},
	{74, 75},
	{76, 77},
	{64, 65},
	{66, 67},
	{52, 53},
	{54, 55},
}

// irqBits gives the 3-bit address triple for each of the 4 interrupt
// groups, in group order 0..3.
var irqBits = [4][3]int{
	{89, 90, 91},
	{80, 81, 82},
	{68, 69, 70},
	{56, 57, 58},
}

// countMuxCfgBits gives the 3-bit address triple for each of the 8
// COUNT_IS_<letter><1|2> fields, in the fixed A1,A2,B1,B2,C1,C2,D1,D2
// order that matches clbcfg.Counter.CountIs.
var countMuxCfgBits = [8][3]int{
	{41, 42, 43}, // COUNT_IS_A1
	{44, 45, 48}, // COUNT_IS_A2
	{49, 50, 51}, // COUNT_IS_B1
	{32, 33, 34}, // COUNT_IS_B2
	{35, 36, 37}, // COUNT_IS_C1
	{38, 39, 40}, // COUNT_IS_C2
	{21, 22, 23}, // COUNT_IS_D1
	{24, 25, 26}, // COUNT_IS_D2
}

// clkDivBits gives the 3-bit address triple for the global clock divider.
var clkDivBits = [3]int{0, 1, 2}

// countStopBits and countResetBits give the 5-bit address quintuples for
// the counter's stop and reset BLE selectors.
var countStopBits = [5]int{9, 10, 11, 12, 13}
var countResetBits = [5]int{16, 17, 18, 19, 20}

// muxCfgBits gives, for each of the 16 routing muxes, the 6-bit CLBIN
// address sextuple and the 3-bit INSYNC address triple.
var muxCfgBits = [16]struct {
	clbin  [6]int
	insync [3]int
}{
	{[6]int{256, 257, 258, 259, 260, 261}, [3]int{262, 263, 264}},
	{[6]int{245, 246, 247, 248, 249, 250}, [3]int{251, 252, 253}},
	{[6]int{234, 235, 236, 237, 240, 241}, [3]int{242, 243, 244}},
	{[6]int{224, 225, 226, 227, 228, 229}, [3]int{230, 231, 232}},
	{[6]int{213, 214, 215, 216, 217, 218}, [3]int{219, 220, 221}},
	{[6]int{202, 203, 204, 205, 208, 209}, [3]int{210, 211, 212}},
	{[6]int{192, 193, 194, 195, 196, 197}, [3]int{198, 199, 200}},
	{[6]int{180, 181, 182, 183, 184, 185}, [3]int{186, 187, 188}},
	{[6]int{169, 170, 171, 172, 173, 176}, [3]int{177, 178, 179}},
	{[6]int{160, 161, 162, 163, 164, 165}, [3]int{166, 167, 168}},
	{[6]int{149, 150, 151, 152, 153, 154}, [3]int{155, 156, 157}},
	{[6]int{137, 138, 139, 140, 141, 144}, [3]int{145, 146, 147}},
	{[6]int{128, 129, 130, 131, 132, 133}, [3]int{134, 135, 136}},
	{[6]int{117, 118, 119, 120, 121, 122}, [3]int{123, 124, 125}},
	{[6]int{106, 107, 108, 109, 112, 113}, [3]int{114, 115, 116}},
	{[6]int{96, 97, 98, 99, 100, 101}, [3]int{102, 103, 104}},
}
