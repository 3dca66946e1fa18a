// Package boolexpr implements the symbolic Boolean expression tree that
// the LUT-truth-table synthesizer evaluates: a tree of operator nodes over
// the four positional LUT inputs (0..3, corresponding to ports A..D),
// rather than a pre-collapsed truth table. Keeping the tree symbolic lets
// callers both enumerate all 16 input combinations and (in package
// autoble) inspect which named signals the expression mentions.
package boolexpr

import "github.com/clbtoolchain/clbfab/clberr"

// Four is a 4-tuple of Boolean values for the positional LUT inputs
// (a, b, c, d).
type Four [4]bool

// op is the tag of an internal expression node.
type op int

const (
	opLeaf op = iota
	opNot
	opAnd
	opOr
	opXor
	opXnor
)

// Expr is a Boolean expression over positional inputs 0..3. It is either a
// leaf referencing one of the four inputs, or an internal node combining
// one or two sub-expressions. Expr is immutable and safe to share.
type Expr struct {
	kind     op
	index    int // for opLeaf: which of the 4 positional inputs
	children []*Expr
}

// Leaf constructs an expression that reads positional input idx (0..3).
func Leaf(idx int) *Expr {
	if idx < 0 || idx > 3 {
		panic("boolexpr: leaf index out of range 0..3")
	}
	return &Expr{kind: opLeaf, index: idx}
}

// A, B, C, D are the four positional leaves, matching port letters A..D.
func A() *Expr { return Leaf(0) }
func B() *Expr { return Leaf(1) }
func C() *Expr { return Leaf(2) }
func D() *Expr { return Leaf(3) }

// Not, And, Or, Xor, Xnor build new expressions from existing ones.
// Construction never fails: these are pure tree builders.
func Not(e *Expr) *Expr          { return &Expr{kind: opNot, children: []*Expr{e}} }
func And(l, r *Expr) *Expr       { return &Expr{kind: opAnd, children: []*Expr{l, r}} }
func Or(l, r *Expr) *Expr        { return &Expr{kind: opOr, children: []*Expr{l, r}} }
func Xor(l, r *Expr) *Expr       { return &Expr{kind: opXor, children: []*Expr{l, r}} }
func Xnor(l, r *Expr) *Expr      { return &Expr{kind: opXnor, children: []*Expr{l, r}} }
func (e *Expr) Not() *Expr       { return Not(e) }
func (e *Expr) And(o *Expr) *Expr  { return And(e, o) }
func (e *Expr) Or(o *Expr) *Expr   { return Or(e, o) }
func (e *Expr) Xor(o *Expr) *Expr  { return Xor(e, o) }
func (e *Expr) Xnor(o *Expr) *Expr { return Xnor(e, o) }

// Eval evaluates the expression for one 4-tuple of Boolean inputs. Eval is
// pure: it never mutates the tree and always terminates.
func (e *Expr) Eval(in Four) bool {
	switch e.kind {
	case opLeaf:
		return in[e.index]
	case opNot:
		return !e.children[0].Eval(in)
	case opAnd:
		return e.children[0].Eval(in) && e.children[1].Eval(in)
	case opOr:
		return e.children[0].Eval(in) || e.children[1].Eval(in)
	case opXor:
		return e.children[0].Eval(in) != e.children[1].Eval(in)
	case opXnor:
		return e.children[0].Eval(in) == e.children[1].Eval(in)
	default:
		panic("boolexpr: unknown node kind")
	}
}

// Bool exists only to give TypeMisuse a concrete call site: expressions are
// symbolic, not Boolean-valued at the point they're built, and attempting
// to coerce one to a plain bool (as if testing "is this expression true")
// is always a mistake — the caller meant Eval with a specific input tuple.
func (e *Expr) Bool() (bool, error) {
	return false, clberr.NewTypeMisuse("a Boolean expression was coerced to a truth value; call Eval with a specific input tuple instead")
}
