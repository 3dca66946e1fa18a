package clbcfg

import (
	"github.com/clbtoolchain/clbfab/boolexpr"
	"github.com/clbtoolchain/clbfab/fabric"
)

// OESelCount is the number of output-enable selectors, one per PPS output
// pin group.
const OESelCount = fabric.PPSGroupCount

// Peripherals holds the non-bitstream peripheral input attributions kept
// verbatim from a FASM file: these are not represented in the bitstream
// buffer at all, so the codec never touches them.
type Peripherals struct {
	Timer0In    string
	Timer1In    string
	Timer1Gate  string
	Timer2In    string
	Timer2Reset string
	CCP1In      string
	CCP2In      string
	ADCIn       string
}

// Record is a single configured fabric: 32 logic-element slots, 16 routing
// muxes, 8 output-pin selectors, 4 interrupt-source selectors, a counter
// block, a clock divider, 8 output-enable selectors, and the non-bitstream
// peripheral attributions.
//
// OE and Peripherals are FASM-only: the original bitstream layout never
// allocates bits for them, so the codec in package bitstream never touches
// these two fields in either direction.
//
// Record has value semantics; mutation happens only during construction
// and decoding. By convention, once a Record has been handed to a codec's
// Encode or a serializer's Save, treat it as frozen.
type Record struct {
	BLEs    [fabric.BLECount]BLECfg
	Muxes   [MuxCount]MuxCfg
	PPSOut  [fabric.PPSGroupCount]*PPSOut
	IRQOut  [fabric.IRQGroupCount]*IRQOut
	Counter Counter
	ClkDiv  fabric.ClkDiv
	OE      [OESelCount]fabric.OESel

	Peripherals Peripherals
}

// New returns a default Record: every BLE with an all-zero LUT mask, its
// flip-flop disabled and no port selections, every mux's CLBIN/INSYNC at
// code 0, every PPS/IRQ selector pointed at member 0 of its group, clock
// divider at DIV_BY_1. A fresh, all-zero 1632-bit buffer decodes to this
// record except that decoding also selects code 0 on every BLE port (see
// ZeroBLE).
func New() *Record {
	r := &Record{}
	for i := range r.BLEs {
		zero := boolexpr.LUTMask(0)
		r.BLEs[i] = BLECfg{LUTMask: &zero, Flop: FlopDisable}
	}
	for g := 0; g < fabric.PPSGroupCount; g++ {
		r.PPSOut[g] = NewPPSOut(fabric.PPSGroup(g))
	}
	for g := 0; g < fabric.IRQGroupCount; g++ {
		r.IRQOut[g] = NewIRQOut(fabric.IRQGroup(g))
	}
	return r
}

// Validate runs BLECfg.Validate across every logic element and returns all
// accumulated Misconfig warnings; callers typically route these through
// package diag rather than treat them as fatal.
func (r *Record) Validate() []error {
	var out []error
	for i := range r.BLEs {
		for _, w := range r.BLEs[i].Validate() {
			out = append(out, w)
		}
	}
	return out
}
