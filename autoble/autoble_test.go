package autoble_test

import (
	"errors"
	"testing"

	"github.com/clbtoolchain/clbfab/autoble"
	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/clberr"
	"github.com/clbtoolchain/clbfab/signal"
)

func sig(t *testing.T, port signal.Port, name string) signal.Signal {
	t.Helper()
	s, err := signal.New(port, name)
	if err != nil {
		t.Fatalf("signal.New(%c, %q): %v", port, name, err)
	}
	return s
}

func TestAutoBLEAssignsPortsByLetter(t *testing.T) {
	ble5 := sig(t, signal.PortA, "CLB_BLE_5")
	in8 := sig(t, signal.PortC, "IN8")
	ble8 := sig(t, signal.PortB, "CLB_BLE_8")

	expr := autoble.FromSignal(ble5).Xor(autoble.FromSignal(in8)).Or(autoble.FromSignal(ble8))

	cfg, err := autoble.AutoBLE(expr)
	if err != nil {
		t.Fatalf("AutoBLE: %v", err)
	}

	a, ok := cfg.Port(signal.PortA)
	if !ok || a.Name() != "CLB_BLE_5" {
		t.Errorf("LUT_I_A = %v, ok=%v; want CLB_BLE_5", a, ok)
	}
	b, ok := cfg.Port(signal.PortB)
	if !ok || b.Name() != "CLB_BLE_8" {
		t.Errorf("LUT_I_B = %v, ok=%v; want CLB_BLE_8", b, ok)
	}
	c, ok := cfg.Port(signal.PortC)
	if !ok || c.Name() != "IN8" {
		t.Errorf("LUT_I_C = %v, ok=%v; want IN8", c, ok)
	}
	if _, ok := cfg.Port(signal.PortD); ok {
		t.Errorf("LUT_I_D should be unset")
	}
	if cfg.Flop != clbcfg.FlopDisable {
		t.Errorf("default flop should be disabled")
	}
}

func TestAutoBLEPortCollision(t *testing.T) {
	ble0 := sig(t, signal.PortA, "CLB_BLE_0")
	ble1 := sig(t, signal.PortA, "CLB_BLE_1")
	expr := autoble.FromSignal(ble0).And(autoble.FromSignal(ble1))

	_, err := autoble.AutoBLE(expr)
	if err == nil {
		t.Fatal("expected PortCollision error")
	}
	var pc *clberr.PortCollision
	if !errors.As(err, &pc) {
		t.Fatalf("error type = %T, want *clberr.PortCollision", err)
	}
	if pc.Port != 'A' {
		t.Errorf("collision port = %c, want A", pc.Port)
	}
}

func TestAutoBLEArityExceeded(t *testing.T) {
	ble0 := sig(t, signal.PortA, "CLB_BLE_0")
	ble8 := sig(t, signal.PortB, "CLB_BLE_8")
	in8 := sig(t, signal.PortC, "IN8")
	swin24 := sig(t, signal.PortD, "CLBSWIN24")
	countA1 := sig(t, signal.PortA, "COUNT_IS_A1")

	expr := autoble.FromSignal(ble0).
		Xor(autoble.FromSignal(ble8)).
		Xor(autoble.FromSignal(in8)).
		Xor(autoble.FromSignal(swin24)).
		Xor(autoble.FromSignal(countA1))

	_, err := autoble.AutoBLE(expr)
	if err == nil {
		t.Fatal("expected ArityExceeded error")
	}
	var ae *clberr.ArityExceeded
	if !errors.As(err, &ae) {
		t.Fatalf("error type = %T, want *clberr.ArityExceeded", err)
	}
	if ae.Count != 5 {
		t.Errorf("Count = %d, want 5", ae.Count)
	}
}

func TestAutoBLEBareSignal(t *testing.T) {
	in0 := sig(t, signal.PortA, "IN0")
	cfg, err := autoble.AutoBLE(in0)
	if err != nil {
		t.Fatalf("AutoBLE: %v", err)
	}
	a, ok := cfg.Port(signal.PortA)
	if !ok || a.Name() != "IN0" {
		t.Errorf("LUT_I_A = %v, ok=%v; want IN0", a, ok)
	}
	if !cfg.LUTMask.At(1) || cfg.LUTMask.At(0) {
		t.Errorf("bare-signal LUT should be identity on its single active input")
	}
}

func TestAutoBLEFlopSelOverride(t *testing.T) {
	in0 := sig(t, signal.PortA, "IN0")
	cfg, err := autoble.AutoBLE(in0, clbcfg.FlopEnable)
	if err != nil {
		t.Fatalf("AutoBLE: %v", err)
	}
	if cfg.Flop != clbcfg.FlopEnable {
		t.Errorf("flop = %v, want enabled", cfg.Flop)
	}
}

func TestAutoBLERejectsNonSignalArgument(t *testing.T) {
	_, err := autoble.AutoBLE(42)
	if err == nil {
		t.Fatal("expected TypeMisuse error")
	}
	var tm *clberr.TypeMisuse
	if !errors.As(err, &tm) {
		t.Fatalf("error type = %T, want *clberr.TypeMisuse", err)
	}
}
