// Package fabric holds the hardware enumerations of the CLB fabric that sit
// outside the per-port LUT-input catalog: routing mux sources, output-pin
// and interrupt selectors, counter configuration, and the clock divider.
// Like package signal, these are kept as small data tables rather than ad
// hoc switch statements, since the irregular groupings (PPS output groups
// of 4, IRQ groups of 8) are the hardware's layout, not a design choice.
package fabric

import (
	"fmt"
	"strconv"
	"strings"
)

// CLBIn enumerates the sources a routing mux can select: a 5-bit field
// with 30 named codes (0..28 and Zero = 31), plus a documented-reserved
// 6th bit (see ReservedBit).
type CLBIn uint8

const (
	CLBIN0PPS CLBIn = iota
	CLBIN1PPS
	CLBIN2PPS
	CLBIN3PPS
	FOSC
	HFINTOSC
	LFINTOSC
	MFINTOSC500KHz
	MFINTOSC32KHz
	EXTOSC
	ADCRC
	TMR0OverflowOut
	TMR1OverflowOut
	TMR2PostscaledOut
	CCP1Out
	CCP2Out
	PWM1Out
	PWM2Out
	IOCIF
	CLC1Out
	CLC2Out
	CLC3Out
	CLC4Out
	TX1
	SDO1
	SCK1
	CLBSWINWriteHold
	C1Out
	C2Out
)

// Zero is the all-ones source (binary 11111); codes 29 and 30 between
// C2Out and Zero are not assigned to any source.
const Zero CLBIn = 31

// ReservedBit is bit 5 of the 6-bit CLBIN field. Its meaning is not
// documented; per spec.md's open question this package preserves it
// verbatim on decode/encode but a decoded raw value with this bit set is
// treated as UnknownEncoding unless a test fixture proves otherwise.
const ReservedBit uint8 = 0b100000

var clbInNames = map[CLBIn]string{
	CLBIN0PPS: "CLBIN0PPS", CLBIN1PPS: "CLBIN1PPS", CLBIN2PPS: "CLBIN2PPS", CLBIN3PPS: "CLBIN3PPS",
	FOSC: "FOSC", HFINTOSC: "HFINTOSC", LFINTOSC: "LFINTOSC",
	MFINTOSC500KHz: "MFINTOSC_500KHZ", MFINTOSC32KHz: "MFINTOSC_32KHZ",
	EXTOSC: "EXTOSC", ADCRC: "ADCRC",
	TMR0OverflowOut: "TMR0_OVERFLOW_OUT", TMR1OverflowOut: "TMR1_OVERFLOW_OUT", TMR2PostscaledOut: "TMR2_POSTSCALED_OUT",
	CCP1Out: "CCP1_OUT", CCP2Out: "CCP2_OUT",
	PWM1Out: "PWM1_OUT", PWM2Out: "PWM2_OUT",
	IOCIF: "IOCIF",
	CLC1Out: "CLC1_OUT", CLC2Out: "CLC2_OUT", CLC3Out: "CLC3_OUT", CLC4Out: "CLC4_OUT",
	TX1: "TX1", SDO1: "SDO1", SCK1: "SCK1",
	CLBSWINWriteHold: "CLBSWIN_WRITE_HOLD",
	C1Out:            "C1_OUT", C2Out: "C2_OUT",
	Zero: "ZERO",
}

func (c CLBIn) String() string {
	if n, ok := clbInNames[c]; ok {
		return n
	}
	return fmt.Sprintf("CLBIN(%#02x)", uint8(c))
}

// ParseCLBIn decodes the raw 6-bit value read from a mux's CLBIN field.
// Returns an error (the caller wraps it as UnknownEncoding) if the raw
// value carries the reserved bit or isn't one of the 30 named sources.
func ParseCLBIn(raw uint8) (CLBIn, error) {
	if raw&ReservedBit != 0 {
		return 0, fmt.Errorf("CLBIN value %#02x sets the reserved bit", raw)
	}
	if _, ok := clbInNames[CLBIn(raw)]; !ok {
		return 0, fmt.Errorf("CLBIN value %#02x is not a known source", raw)
	}
	return CLBIn(raw), nil
}

// InSync is the 3-bit INSYNC field of a routing mux. It is a bitmask, not
// an exclusive enumeration: DIRECT_IN is the zero value and the other three
// flags may combine (e.g. SYNC|EDGE_DETECT).
type InSync uint8

const (
	DirectIn   InSync = 0
	EdgeInvert InSync = 0b001
	EdgeDetect InSync = 0b010
	Sync       InSync = 0b100
)

func (s InSync) String() string {
	if s == DirectIn {
		return "DIRECT_IN"
	}
	var parts []string
	if s&Sync != 0 {
		parts = append(parts, "SYNC")
	}
	if s&EdgeDetect != 0 {
		parts = append(parts, "EDGE_DETECT")
	}
	if s&EdgeInvert != 0 {
		parts = append(parts, "EDGE_INVERT")
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "|" + p
	}
	return out
}

// ParseInSync validates a raw 3-bit value. All 8 combinations of the three
// flag bits are legal, so this never fails for a value that already fits 3
// bits; the bounds check exists so callers can still route out-of-range
// raw integers (e.g. from a malformed field width) through the same
// UnknownEncoding path as every other field.
func ParseInSync(raw uint8) (InSync, error) {
	if raw > 0b111 {
		return 0, fmt.Errorf("INSYNC value %#02x exceeds 3 bits", raw)
	}
	return InSync(raw), nil
}

// CounterIn selects a logic element (by BLE index 0..31) as a counter stop
// or reset source.
type CounterIn uint8

func ParseCounterIn(raw uint8) (CounterIn, error) {
	if raw > 31 {
		return 0, fmt.Errorf("COUNTERIN value %d exceeds 5 bits", raw)
	}
	return CounterIn(raw), nil
}

func (c CounterIn) String() string { return fmt.Sprintf("CLB_BLE_%d", uint8(c)) }

// OESel selects an output-enable source: either one of the 8 logic
// elements that lead a PPS output group (BLE 3,7,11,...,31) or one of 8
// TRIS-register fallbacks.
type OESel uint8

// TRIS0..TRIS7 are numbered descending (TRIS0 = 7 down to TRIS7 = 0),
// matching original_source/data_model.py's OESELn.
const (
	OESelTris7 OESel = iota
	OESelTris6
	OESelTris5
	OESelTris4
	OESelTris3
	OESelTris2
	OESelTris1
	OESelTris0
	OESelBLE3
	OESelBLE7
	OESelBLE11
	OESelBLE15
	OESelBLE19
	OESelBLE23
	OESelBLE27
	OESelBLE31
)

var oeSelNames = map[OESel]string{
	OESelTris0: "TRIS0", OESelTris1: "TRIS1", OESelTris2: "TRIS2", OESelTris3: "TRIS3",
	OESelTris4: "TRIS4", OESelTris5: "TRIS5", OESelTris6: "TRIS6", OESelTris7: "TRIS7",
	OESelBLE3: "BLE_3", OESelBLE7: "BLE_7", OESelBLE11: "BLE_11", OESelBLE15: "BLE_15",
	OESelBLE19: "BLE_19", OESelBLE23: "BLE_23", OESelBLE27: "BLE_27", OESelBLE31: "BLE_31",
}

func (s OESel) String() string {
	if n, ok := oeSelNames[s]; ok {
		return n
	}
	return fmt.Sprintf("OESEL(%#x)", uint8(s))
}

func ParseOESel(raw uint8) (OESel, error) {
	if raw > 15 {
		return 0, fmt.Errorf("OESEL value %#x exceeds 4 bits", raw)
	}
	return OESel(raw), nil
}

// ParseOESelName looks up an OESel by its textual name (e.g. "TRIS0",
// "BLE_3"), the form used in the FASM PPS_OE lines.
func ParseOESelName(name string) (OESel, error) {
	for sel, n := range oeSelNames {
		if n == name {
			return sel, nil
		}
	}
	return 0, fmt.Errorf("unknown OESEL name %q", name)
}

// CntMux is the 3-bit comparator-threshold field for each of the 8
// COUNT_IS_<letter><1|2> fields in the counter block.
type CntMux uint8

func ParseCntMux(raw uint8) (CntMux, error) {
	if raw > 7 {
		return 0, fmt.Errorf("CNTMUX value %d exceeds 3 bits", raw)
	}
	return CntMux(raw), nil
}

func (c CntMux) String() string { return fmt.Sprintf("CNT0_COUNT_IS_%d", uint8(c)) }

// ParseCntMuxName looks up a CntMux by its textual enum name, e.g.
// "CNT0_COUNT_IS_3", the form used in FASM CNT_X0Y3.COUNT_IS_<tap> lines.
func ParseCntMuxName(name string) (CntMux, error) {
	const prefix = "CNT0_COUNT_IS_"
	if !strings.HasPrefix(name, prefix) {
		return 0, fmt.Errorf("unknown CNTMUX name %q", name)
	}
	n, err := strconv.Atoi(name[len(prefix):])
	if err != nil || n < 0 || n > 7 {
		return 0, fmt.Errorf("unknown CNTMUX name %q", name)
	}
	return CntMux(n), nil
}

// ClkDiv is the 3-bit clock-divider field (divide by 1..128 in powers of
// two).
type ClkDiv uint8

const (
	DivBy1 ClkDiv = iota
	DivBy2
	DivBy4
	DivBy8
	DivBy16
	DivBy32
	DivBy64
	DivBy128
)

func (d ClkDiv) String() string {
	return fmt.Sprintf("DIV_BY_%d", 1<<uint(d))
}

func ParseClkDiv(raw uint8) (ClkDiv, error) {
	if raw > 7 {
		return 0, fmt.Errorf("CLKDIV value %d exceeds 3 bits", raw)
	}
	return ClkDiv(raw), nil
}
