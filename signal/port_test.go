package signal_test

import (
	"testing"

	"github.com/clbtoolchain/clbfab/signal"
)

func TestCatalogSize(t *testing.T) {
	for _, p := range signal.Ports {
		cat := signal.Catalog(p)
		if len(cat) != 22 {
			t.Errorf("port %c: got %d signals, want 22", p, len(cat))
		}
	}
}

func TestPortIndex(t *testing.T) {
	want := map[signal.Port]int{signal.PortA: 0, signal.PortB: 1, signal.PortC: 2, signal.PortD: 3}
	for p, idx := range want {
		if got := p.Index(); got != idx {
			t.Errorf("Port(%c).Index() = %d, want %d", p, got, idx)
		}
	}
}

func TestLookupCrossesPorts(t *testing.T) {
	cases := []struct {
		name string
		port signal.Port
	}{
		{"CLB_BLE_0", signal.PortA},
		{"CLB_BLE_5", signal.PortA},
		{"CLB_BLE_8", signal.PortB},
		{"IN0", signal.PortA},
		{"IN8", signal.PortC},
		{"IN12", signal.PortD},
		{"CLBSWIN31", signal.PortD},
		{"COUNT_IS_C1", signal.PortC},
	}
	for _, c := range cases {
		sig, err := signal.Lookup(c.name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", c.name, err)
		}
		if sig.Port != c.port {
			t.Errorf("Lookup(%q).Port = %c, want %c", c.name, sig.Port, c.port)
		}
		if sig.Name() != c.name {
			t.Errorf("Lookup(%q).Name() = %q", c.name, sig.Name())
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := signal.Lookup("NOT_A_SIGNAL"); err == nil {
		t.Fatal("expected error for unknown signal")
	}
}

func TestByNameRejectsWrongPort(t *testing.T) {
	if _, ok := signal.ByName(signal.PortB, "CLB_BLE_0"); ok {
		t.Fatal("CLB_BLE_0 should not be selectable on port B")
	}
}

func TestByCodeRoundTrip(t *testing.T) {
	for _, p := range signal.Ports {
		for code := uint8(0); code < 22; code++ {
			ps, ok := signal.ByCode(p, code)
			if !ok {
				t.Fatalf("port %c code %d: not found", p, code)
			}
			sig, err := signal.Lookup(ps.Name)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", ps.Name, err)
			}
			if sig.Code != code || sig.Port != p {
				t.Errorf("round trip mismatch for %q", ps.Name)
			}
		}
	}
}
