package boolexpr_test

import (
	"testing"

	"github.com/clbtoolchain/clbfab/boolexpr"
)

func TestSynthesizeXorChain(t *testing.T) {
	expr := boolexpr.A().Xor(boolexpr.B()).Xor(boolexpr.C()).Xor(boolexpr.D())
	mask := boolexpr.Synthesize(expr)
	if got := mask.String(); got != "0110100110010110" {
		t.Fatalf("mask = %s, want 0110100110010110", got)
	}
}

func TestTruthTableCompleteness(t *testing.T) {
	// (a ^ c) | b
	expr := boolexpr.A().Xor(boolexpr.C()).Or(boolexpr.B())
	mask := boolexpr.Synthesize(expr)
	for w := 0; w < 16; w++ {
		a := w&1 != 0
		b := w&2 != 0
		c := w&4 != 0
		d := w&8 != 0
		want := (a != c) || b
		_ = d
		if got := mask.At(w); got != want {
			t.Errorf("w=%d: mask.At=%v want %v", w, got, want)
		}
	}
}

func TestLUTMaskStringRoundTrip(t *testing.T) {
	expr := boolexpr.Not(boolexpr.D())
	mask := boolexpr.Synthesize(expr)
	s := mask.String()
	if len(s) != 16 {
		t.Fatalf("mask string length = %d, want 16", len(s))
	}
	back, err := boolexpr.ParseLUTMask(s)
	if err != nil {
		t.Fatalf("ParseLUTMask: %v", err)
	}
	if back != mask {
		t.Errorf("round trip mismatch: %v != %v", back, mask)
	}
}

func TestActiveInputsAllZeroMask(t *testing.T) {
	mask, err := boolexpr.ParseLUTMask("0000000000000000")
	if err != nil {
		t.Fatal(err)
	}
	active := mask.ActiveInputs()
	for i, a := range active {
		if a {
			t.Errorf("input %d should be inactive for constant-zero mask", i)
		}
	}
}

func TestActiveInputsDetectsUsedInput(t *testing.T) {
	// output = b only
	expr := boolexpr.B()
	mask := boolexpr.Synthesize(expr)
	active := mask.ActiveInputs()
	want := [4]bool{false, true, false, false}
	if active != want {
		t.Errorf("active = %v, want %v", active, want)
	}
}

func TestBoolCoercionIsTypeMisuse(t *testing.T) {
	e := boolexpr.A()
	_, err := e.Bool()
	if err == nil {
		t.Fatal("expected TypeMisuse error")
	}
}

func TestXnorIsEqualityXorIsInequality(t *testing.T) {
	xnor := boolexpr.Xnor(boolexpr.A(), boolexpr.B())
	xor := boolexpr.Xor(boolexpr.A(), boolexpr.B())
	for w := 0; w < 16; w++ {
		a := w&1 != 0
		b := w&2 != 0
		in := boolexpr.Four{a, b, false, false}
		if xnor.Eval(in) != (a == b) {
			t.Errorf("xnor mismatch at w=%d", w)
		}
		if xor.Eval(in) != (a != b) {
			t.Errorf("xor mismatch at w=%d", w)
		}
	}
}
