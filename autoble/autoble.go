package autoble

import (
	"github.com/clbtoolchain/clbfab/boolexpr"
	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/clberr"
	"github.com/clbtoolchain/clbfab/signal"
)

// AutoBLE resolves a Boolean expression over named signals into a fully
// populated logic-element configuration: it validates the expression fits
// the four-input hardware, assigns each distinct signal to the LUT input
// port fixed by its own port letter, and synthesizes the LUT mask.
//
// expr is either a signal.Signal (a bare reference, e.g. picking a single
// wire with no logic) or a *SignalExpr built up with And/Or/Xor/Xnor/Not.
// flopsel, if given, overrides the default FlopDisable.
//
// Port assignment is deterministic and fixed by port letter, never by the
// order signals appear in source: CLB_BLE_5 (selectable only on port A)
// always lands at LUT_I_A regardless of where it appears in the
// expression. Two signals that both belong to the same port's catalog —
// e.g. CLB_BLE_0 and CLB_BLE_1, both port-A-only — collide, since a port
// can carry only one selection.
func AutoBLE(expr any, flopsel ...clbcfg.FlopSel) (clbcfg.BLECfg, error) {
	se, err := asSignalExpr(expr)
	if err != nil {
		return clbcfg.BLECfg{}, err
	}

	flop := clbcfg.FlopDisable
	if len(flopsel) > 1 {
		return clbcfg.BLECfg{}, clberr.NewTypeMisuse("AutoBLE accepts at most one flopsel argument")
	}
	if len(flopsel) == 1 {
		flop = flopsel[0]
	}

	sigs := se.Signals()
	if len(sigs) > 4 {
		names := make([]string, len(sigs))
		for i, s := range sigs {
			names[i] = s.Name()
		}
		return clbcfg.BLECfg{}, clberr.NewArityExceeded(names)
	}

	var byPort [4]*signal.Signal
	for _, s := range sigs {
		idx := s.Port.Index()
		if byPort[idx] != nil {
			first := byPort[idx].Name()
			return clbcfg.BLECfg{}, clberr.NewPortCollision(byte(s.Port), first, s.Name())
		}
		v := s
		byPort[idx] = &v
	}

	mask := boolexpr.Synthesize(se.Tree())
	cfg := clbcfg.BLECfg{LUTMask: &mask, Flop: flop}
	for i, p := range signal.Ports {
		if byPort[i] != nil {
			cfg.SetPort(p, *byPort[i])
		}
	}
	return cfg, nil
}
