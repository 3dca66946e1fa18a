// Package clbcfg is the configuration record model: the typed aggregate
// representing one fully configured CLB fabric, independent of whether it
// came from a Boolean expression (via package autoble), a decoded
// bitstream, or a parsed FASM file.
package clbcfg

import (
	"fmt"
	"sort"

	"github.com/clbtoolchain/clbfab/boolexpr"
	"github.com/clbtoolchain/clbfab/clberr"
	"github.com/clbtoolchain/clbfab/signal"
)

// FlopSel is the flip-flop-enable directive for a logic element's output.
type FlopSel bool

const (
	FlopDisable FlopSel = false
	FlopEnable  FlopSel = true
)

func (f FlopSel) String() string {
	if f {
		return "ENABLE"
	}
	return "DISABLE"
}

// BLECfg is one logic-element slot: a 16-bit LUT mask, a flip-flop-enable
// flag, and four optional port selections (A..D), each drawn from its
// port-specific signal enumeration.
//
// LUTMask is a pointer so "absent" (never set) is distinguishable from the
// all-zeros mask, which Validate needs to tell a genuine Misconfig from a
// freshly zeroed slot. Ports[i] nil means that port has no selection.
type BLECfg struct {
	LUTMask *boolexpr.LUTMask
	Flop    FlopSel
	Ports   [4]*signal.Signal // indexed by Port.Index(): A, B, C, D
}

// Port returns the signal selected at a given port, or ok=false if unset.
func (b *BLECfg) Port(p signal.Port) (signal.Signal, bool) {
	s := b.Ports[p.Index()]
	if s == nil {
		return signal.Signal{}, false
	}
	return *s, true
}

// SetPort assigns a signal to one of the four ports.
func (b *BLECfg) SetPort(p signal.Port, s signal.Signal) {
	v := s
	b.Ports[p.Index()] = &v
}

// Validate checks LUTMask against the port selections and returns a
// Misconfig warning (never a fatal error — the hardware accepts
// inconsistent configurations) if they disagree about which inputs are
// active, per spec.md §4.4: "active input" is the minimal set of inputs
// whose toggling can change the LUT's output.
func (b *BLECfg) Validate() []*clberr.Misconfig {
	var warnings []*clberr.Misconfig

	active := map[signal.Port]bool{}
	if b.LUTMask != nil {
		bits := b.LUTMask.ActiveInputs()
		for _, p := range signal.Ports {
			active[p] = bits[p.Index()]
		}
	}

	set := map[signal.Port]bool{}
	for _, p := range signal.Ports {
		if b.Ports[p.Index()] != nil {
			set[p] = true
		}
	}

	if b.LUTMask != nil {
		for _, p := range signal.Ports {
			if active[p] && !set[p] {
				warnings = append(warnings, clberr.NewMisconfig("LUT_I_%c is used in LUT_CONFIG but was not set", p))
			}
			if set[p] && !active[p] {
				sig, _ := b.Port(p)
				warnings = append(warnings, clberr.NewMisconfig("LUT_I_%c is not used in LUT_CONFIG but was set to %s", p, sig.Name()))
			}
		}
	} else {
		var names []string
		for _, p := range signal.Ports {
			if sig, ok := b.Port(p); ok {
				names = append(names, fmt.Sprintf("LUT_I_%c=%s", p, sig.Name()))
			}
		}
		if len(names) > 0 {
			sort.Strings(names)
			warnings = append(warnings, clberr.NewMisconfig("BLE has no LUT_CONFIG but has port selections set (%v)", names))
		}
	}

	return warnings
}

// ZeroBLE returns a BLE slot in its decoded-zero-code default: an all-zero
// LUT mask, flip-flop disabled, and every port defaulting to code 0 of its
// port-specific enumeration (per spec.md §3: "Decoding from the packed
// buffer always produces a fully populated record (missing fields default
// to the zero code of their enumeration)").
func ZeroBLE() BLECfg {
	zero := boolexpr.LUTMask(0)
	cfg := BLECfg{LUTMask: &zero, Flop: FlopDisable}
	for _, p := range signal.Ports {
		ps, ok := signal.ByCode(p, 0)
		if !ok {
			panic("clbcfg: port catalog missing code 0")
		}
		cfg.SetPort(p, signal.Signal{Port: ps.Port, Code: ps.Code})
	}
	return cfg
}

// EquationString renders the LUT mask as a readable Boolean equation over
// the BLE's active port signals as a sum of minterms, e.g.
// "(CLB_BLE_5&~CLB_BLE_8) | (~CLB_BLE_5&CLB_BLE_8)" for A XOR B with
// CLB_BLE_5 on port A and CLB_BLE_8 on port B. A mask with no active input
// renders as "0" or "1".
// Restored from original_source/clb_graph.py's get_lut_equation_str, minus
// its DOT-graph rendering (a declared non-goal).
func (b *BLECfg) EquationString() string {
	if b.LUTMask == nil {
		return "(unconfigured)"
	}
	active := b.LUTMask.ActiveInputs()
	var terms []string
	letters := []signal.Port{signal.PortA, signal.PortB, signal.PortC, signal.PortD}
	names := make(map[signal.Port]string, 4)
	for _, p := range letters {
		if sig, ok := b.Port(p); ok {
			names[p] = sig.Name()
		} else {
			names[p] = string(p)
		}
	}
	for i, p := range letters {
		if active[i] {
			terms = append(terms, names[p])
		}
	}
	if len(terms) == 0 {
		if b.LUTMask.At(0) {
			return "1"
		}
		return "0"
	}
	return minterms(*b.LUTMask, active, names)
}

// minterms renders a sum-of-minterms Boolean equation string for the
// active inputs of mask.
func minterms(mask boolexpr.LUTMask, active [4]bool, names map[signal.Port]string) string {
	letters := []signal.Port{signal.PortA, signal.PortB, signal.PortC, signal.PortD}
	var products []string
	for w := 0; w < 16; w++ {
		if !mask.At(w) {
			continue
		}
		skip := false
		// Skip minterms that are redundant given inactive inputs: only
		// emit one representative per assignment of the active inputs.
		for i := range letters {
			if !active[i] && (w>>uint(i))&1 != 0 {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		var lits []string
		for i, p := range letters {
			if !active[i] {
				continue
			}
			if (w>>uint(i))&1 != 0 {
				lits = append(lits, names[p])
			} else {
				lits = append(lits, "~"+names[p])
			}
		}
		if len(lits) == 0 {
			products = append(products, "1")
			continue
		}
		term := lits[0]
		for _, l := range lits[1:] {
			term += "&" + l
		}
		if len(lits) > 1 {
			term = "(" + term + ")"
		}
		products = append(products, term)
	}
	if len(products) == 0 {
		return "0"
	}
	out := products[0]
	for _, p := range products[1:] {
		out += " | " + p
	}
	return out
}
