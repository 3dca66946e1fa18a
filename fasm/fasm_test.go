package fasm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/clbtoolchain/clbfab/boolexpr"
	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/fabric"
	"github.com/clbtoolchain/clbfab/fasm"
	"github.com/clbtoolchain/clbfab/signal"
)

func bleIndex(t *testing.T, x, y int) int {
	t.Helper()
	idx, err := fabric.IndexForCoord(fabric.BLECoord{X: x, Y: y})
	if err != nil {
		t.Fatalf("IndexForCoord(%d,%d): %v", x, y, err)
	}
	return idx
}

func TestParseBLELines(t *testing.T) {
	doc := strings.Join([]string{
		"BLE_X1Y2.BLE0.FLOPSEL.ENABLE",
		"BLE_X1Y2.BLE0.LUT.INIT[15:0] = 16'b1111111111111110",
		"BLE_X1Y2.BLE0_LI0.IN0",
	}, "\n")

	rec, warnings, err := fasm.Parse(strings.NewReader(doc), fasm.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	ble := rec.BLEs[bleIndex(t, 1, 2)]
	if ble.Flop != clbcfg.FlopEnable {
		t.Errorf("Flop = %v, want enabled", ble.Flop)
	}
	want, err := boolexpr.ParseLUTMask("1111111111111110")
	if err != nil {
		t.Fatal(err)
	}
	if *ble.LUTMask != want {
		t.Errorf("mask = %v, want %v", *ble.LUTMask, want)
	}
	sig, ok := ble.Port(signal.PortA)
	if !ok || sig.Name() != "IN0" {
		t.Errorf("port A = %v (ok=%v), want IN0", sig, ok)
	}
}

func TestParseUnknownLineIsAlwaysWarning(t *testing.T) {
	doc := "SOME_UNRECOGNIZED_LINE.FOO.BAR"
	_, warnings, err := fasm.Parse(strings.NewReader(doc), fasm.Options{Strict: true})
	if err != nil {
		t.Fatalf("unknown prefixes must never abort even in strict mode: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

func TestParseMalformedRecognizedLineLenientContinues(t *testing.T) {
	doc := strings.Join([]string{
		"BLE_X1Y2.BLE0.FLOPSEL.GARBAGE",
		"BLE_X2Y2.BLE0.FLOPSEL.ENABLE",
	}, "\n")
	rec, warnings, err := fasm.Parse(strings.NewReader(doc), fasm.Options{})
	if err != nil {
		t.Fatalf("lenient mode should not abort: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if rec.BLEs[bleIndex(t, 2, 2)].Flop != clbcfg.FlopEnable {
		t.Error("second line should still have been applied")
	}
}

func TestParseMalformedRecognizedLineStrictAborts(t *testing.T) {
	doc := "BLE_X1Y2.BLE0.FLOPSEL.GARBAGE"
	_, _, err := fasm.Parse(strings.NewReader(doc), fasm.Options{Strict: true})
	if err == nil {
		t.Fatal("expected strict mode to abort on malformed recognized line")
	}
}

func TestParseMuxAndClkDivLines(t *testing.T) {
	doc := strings.Join([]string{
		"MUX0.CLBIN = 6'b000101",
		"MUX0.INSYNC = 3'b010",
		"CLKDIV = 3'b011",
	}, "\n")
	rec, warnings, err := fasm.Parse(strings.NewReader(doc), fasm.Options{})
	if err != nil || len(warnings) != 0 {
		t.Fatalf("Parse: err=%v warnings=%v", err, warnings)
	}
	if uint8(rec.Muxes[0].CLBIn) != 5 {
		t.Errorf("CLBIn = %d, want 5", rec.Muxes[0].CLBIn)
	}
	if uint8(rec.Muxes[0].InSync) != 2 {
		t.Errorf("InSync = %d, want 2", rec.Muxes[0].InSync)
	}
	if uint8(rec.ClkDiv) != 3 {
		t.Errorf("ClkDiv = %d, want 3", rec.ClkDiv)
	}
}

func TestWriteThenParseRoundTrip(t *testing.T) {
	rec := clbcfg.New()
	mask, err := boolexpr.ParseLUTMask("0000000000000001")
	if err != nil {
		t.Fatal(err)
	}
	rec.BLEs[0].LUTMask = &mask
	rec.BLEs[0].Flop = clbcfg.FlopEnable

	var buf bytes.Buffer
	if err := fasm.Write(&buf, rec); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, warnings, err := fasm.Parse(&buf, fasm.Options{Strict: true})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings round-tripping our own output: %v", warnings)
	}
	if *got.BLEs[0].LUTMask != mask {
		t.Errorf("round trip mask = %v, want %v", *got.BLEs[0].LUTMask, mask)
	}
	if got.BLEs[0].Flop != clbcfg.FlopEnable {
		t.Error("round trip lost FLOPSEL.ENABLE")
	}
}
