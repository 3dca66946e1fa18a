// Package autoble implements the signal-to-port resolver: given a Boolean
// expression built from named signals (or a bare signal), it validates the
// expression fits the hardware, assigns each distinct signal to a LUT
// input port, and synthesizes the LUT mask — producing a fully populated
// logic-element configuration in one step.
package autoble

import (
	"sort"

	"github.com/clbtoolchain/clbfab/boolexpr"
	"github.com/clbtoolchain/clbfab/clberr"
	"github.com/clbtoolchain/clbfab/signal"
)

// SignalExpr is a Boolean expression over named signals rather than bare
// positional inputs. It layers signal tracking on top of boolexpr.Expr the
// same way the underlying hardware does: each distinct signal referenced
// is, eventually, pinned to one of the four LUT ports by letter.
type SignalExpr struct {
	tree    *boolexpr.Expr
	signals map[signal.Signal]bool
}

// FromSignal lifts a single signal into a one-leaf SignalExpr. The leaf's
// positional LUT input index is fixed by the signal's port letter
// (A=0, B=1, C=2, D=3): this is what makes port assignment deterministic
// regardless of the order signals appear in source.
func FromSignal(s signal.Signal) *SignalExpr {
	return &SignalExpr{
		tree:    boolexpr.Leaf(s.Port.Index()),
		signals: map[signal.Signal]bool{s: true},
	}
}

func unionSignals(a, b map[signal.Signal]bool) map[signal.Signal]bool {
	out := make(map[signal.Signal]bool, len(a)+len(b))
	for s := range a {
		out[s] = true
	}
	for s := range b {
		out[s] = true
	}
	return out
}

func (e *SignalExpr) And(o *SignalExpr) *SignalExpr {
	return &SignalExpr{tree: boolexpr.And(e.tree, o.tree), signals: unionSignals(e.signals, o.signals)}
}

func (e *SignalExpr) Or(o *SignalExpr) *SignalExpr {
	return &SignalExpr{tree: boolexpr.Or(e.tree, o.tree), signals: unionSignals(e.signals, o.signals)}
}

func (e *SignalExpr) Xor(o *SignalExpr) *SignalExpr {
	return &SignalExpr{tree: boolexpr.Xor(e.tree, o.tree), signals: unionSignals(e.signals, o.signals)}
}

// Xnor implements "==" (equality) between two signal expressions.
func (e *SignalExpr) Xnor(o *SignalExpr) *SignalExpr {
	return &SignalExpr{tree: boolexpr.Xnor(e.tree, o.tree), signals: unionSignals(e.signals, o.signals)}
}

func (e *SignalExpr) Not() *SignalExpr {
	return &SignalExpr{tree: boolexpr.Not(e.tree), signals: e.signals}
}

// Signals returns the distinct signals this expression references, in a
// stable order (by display name) so callers get deterministic output.
func (e *SignalExpr) Signals() []signal.Signal {
	out := make([]signal.Signal, 0, len(e.signals))
	for s := range e.signals {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Tree exposes the underlying positional expression, e.g. for synthesis.
func (e *SignalExpr) Tree() *boolexpr.Expr { return e.tree }

// Bool mirrors boolexpr.Expr.Bool: a SignalExpr is symbolic, coercing it to
// a plain bool is always a mistake.
func (e *SignalExpr) Bool() (bool, error) {
	return e.tree.Bool()
}

// asSignalExpr normalizes the two kinds of value AutoBLE accepts (a bare
// signal.Signal, or an already-combined *SignalExpr) into a SignalExpr,
// failing with TypeMisuse for anything else.
func asSignalExpr(v any) (*SignalExpr, error) {
	switch t := v.(type) {
	case signal.Signal:
		return FromSignal(t), nil
	case *SignalExpr:
		return t, nil
	default:
		return nil, clberr.NewTypeMisuse("AutoBLE expects a signal.Signal or a *SignalExpr")
	}
}
