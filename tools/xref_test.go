package tools

import (
	"strings"
	"testing"

	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/signal"
)

func TestXRefTracksLUTInputReference(t *testing.T) {
	rec := clbcfg.New()
	sig := signal.Signal{Port: signal.PortB, Code: 0}
	rec.BLEs[3].SetPort(signal.PortA, sig)

	gen := NewXRefGenerator()
	symbols := gen.Generate(rec)

	sym, ok := symbols[sig.Name()]
	if !ok {
		t.Fatalf("expected symbol %s present", sig.Name())
	}
	// BLE 8 is also member 0 of PPS group 2 and of IRQ group 1, which a
	// fresh record selects; the LUT-input reference is listed first.
	if len(sym.References) != 3 {
		t.Fatalf("expected three references, got %d", len(sym.References))
	}
	if sym.References[0].Type != RefLUTInput {
		t.Errorf("expected RefLUTInput, got %v", sym.References[0].Type)
	}
}

func TestXRefTracksPPSOutReference(t *testing.T) {
	rec := clbcfg.New()
	if err := rec.PPSOut[0].SetBLE(2); err != nil {
		t.Fatalf("SetBLE: %v", err)
	}

	gen := NewXRefGenerator()
	symbols := gen.Generate(rec)

	sym, ok := symbols["CLB_BLE_2"]
	if !ok {
		t.Fatal("expected CLB_BLE_2 symbol present")
	}
	found := false
	for _, ref := range sym.References {
		if ref.Type == RefPPSOut {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a RefPPSOut reference on CLB_BLE_2, got %+v", sym.References)
	}
}

func TestGetUnreferencedFindsUnusedBLEOutput(t *testing.T) {
	rec := clbcfg.New()

	gen := NewXRefGenerator()
	gen.Generate(rec)
	unreferenced := gen.GetUnreferenced()

	if len(unreferenced) == 0 {
		t.Fatal("expected at least one unreferenced BLE output in a fresh record")
	}
}

func TestGenerateXRefReportContainsSummary(t *testing.T) {
	rec := clbcfg.New()
	report := GenerateXRef(rec)

	if !strings.Contains(report, "Summary") {
		t.Errorf("expected report to contain a summary section, got:\n%s", report)
	}
	if !strings.Contains(report, "CLB_BLE_0") {
		t.Errorf("expected report to list CLB_BLE_0, got:\n%s", report)
	}
}
