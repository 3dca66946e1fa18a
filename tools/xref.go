package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/signal"
)

// ReferenceType indicates how a signal is consumed.
type ReferenceType int

const (
	RefLUTInput ReferenceType = iota // selected at a logic element's LUT input port
	RefPPSOut                       // selected as a PPS output pin's source
	RefIRQOut                       // selected as an interrupt source
	RefCounter                      // selected as the counter's stop/reset input
	RefPeripheral                   // attributed to a peripheral input field
)

func (r ReferenceType) String() string {
	switch r {
	case RefLUTInput:
		return "lut-input"
	case RefPPSOut:
		return "pps-out"
	case RefIRQOut:
		return "irq-out"
	case RefCounter:
		return "counter"
	case RefPeripheral:
		return "peripheral"
	default:
		return "unknown"
	}
}

// Reference is a single consumption site of a named signal.
type Reference struct {
	Type ReferenceType
	// Site names the consumer, e.g. "BLE 5 port A", "PPS group 0", "IRQ group 1".
	Site string
}

// Symbol is a named signal and every place that consumes it. Definition
// names the logic element that produces it when the signal is a
// CLB_BLE_n output; other signal kinds (fabric inputs, software-write
// inputs, counter taps) have no logic-element producer and Definition is
// empty.
type Symbol struct {
	Name       string
	Definition string
	References []*Reference
}

// XRefGenerator builds a cross-reference of signal usage across a
// decoded configuration: which logic element, PPS output, interrupt
// source, counter input, or peripheral field selects each named signal.
type XRefGenerator struct {
	symbols map[string]*Symbol
}

// NewXRefGenerator creates a new cross-reference generator.
func NewXRefGenerator() *XRefGenerator {
	return &XRefGenerator{symbols: make(map[string]*Symbol)}
}

// Generate walks every BLE port, PPS/IRQ output, counter input, and
// peripheral field in rec and returns the resulting symbol table.
func (x *XRefGenerator) Generate(rec *clbcfg.Record) map[string]*Symbol {
	x.symbols = make(map[string]*Symbol)

	for i := range rec.BLEs {
		x.symbols[fmt.Sprintf("CLB_BLE_%d", i)] = &Symbol{
			Name:       fmt.Sprintf("CLB_BLE_%d", i),
			Definition: fmt.Sprintf("BLE %d", i),
		}
	}

	for i, cfg := range rec.BLEs {
		for _, p := range signal.Ports {
			sig, ok := cfg.Port(p)
			if !ok {
				continue
			}
			x.addReference(sig.Name(), RefLUTInput, fmt.Sprintf("BLE %d port %s", i, p))
		}
	}

	for g, p := range rec.PPSOut {
		if p == nil {
			continue
		}
		idx, err := p.BLE()
		if err != nil {
			continue
		}
		x.addReference(fmt.Sprintf("CLB_BLE_%d", idx), RefPPSOut, fmt.Sprintf("PPS group %d", g))
	}

	for g, irq := range rec.IRQOut {
		if irq == nil {
			continue
		}
		idx, err := irq.BLE()
		if err != nil {
			continue
		}
		x.addReference(fmt.Sprintf("CLB_BLE_%d", idx), RefIRQOut, fmt.Sprintf("IRQ group %d", g))
	}

	x.addReference(rec.Counter.Stop.String(), RefCounter, "counter stop input")
	x.addReference(rec.Counter.Reset.String(), RefCounter, "counter reset input")

	peripherals := []struct{ field, val string }{
		{"TMR0_IN", rec.Peripherals.Timer0In},
		{"TMR1_IN", rec.Peripherals.Timer1In},
		{"TMR1_GATE", rec.Peripherals.Timer1Gate},
		{"TMR2_IN", rec.Peripherals.Timer2In},
		{"TMR2_RST", rec.Peripherals.Timer2Reset},
		{"CCP1_IN", rec.Peripherals.CCP1In},
		{"CCP2_IN", rec.Peripherals.CCP2In},
		{"ADC_IN", rec.Peripherals.ADCIn},
	}
	for _, p := range peripherals {
		if p.val == "" {
			continue
		}
		x.addReference(p.val, RefPeripheral, p.field)
	}

	return x.symbols
}

func (x *XRefGenerator) addReference(name string, refType ReferenceType, site string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	sym, exists := x.symbols[name]
	if !exists {
		sym = &Symbol{Name: name}
		x.symbols[name] = sym
	}
	sym.References = append(sym.References, &Reference{Type: refType, Site: site})
}

// XRefReport renders a symbol table as a sorted, human-readable listing.
type XRefReport struct {
	symbols []*Symbol
}

// NewXRefReport sorts symbols by name for deterministic output.
func NewXRefReport(symbols map[string]*Symbol) *XRefReport {
	sorted := make([]*Symbol, 0, len(symbols))
	for _, sym := range symbols {
		sorted = append(sorted, sym)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &XRefReport{symbols: sorted}
}

// String renders the report.
func (r *XRefReport) String() string {
	var sb strings.Builder
	sb.WriteString("Signal Cross-Reference\n")
	sb.WriteString("=======================\n\n")

	for _, sym := range r.symbols {
		sb.WriteString(sym.Name)
		if sym.Definition != "" {
			sb.WriteString(fmt.Sprintf(" [driven by %s]", sym.Definition))
		}
		sb.WriteString("\n")

		if len(sym.References) == 0 {
			sb.WriteString("  (unreferenced)\n")
		} else {
			for _, ref := range sym.References {
				sb.WriteString(fmt.Sprintf("  %-12s %s\n", ref.Type, ref.Site))
			}
		}
		sb.WriteString("\n")
	}

	unreferenced := 0
	for _, sym := range r.symbols {
		if len(sym.References) == 0 {
			unreferenced++
		}
	}
	sb.WriteString("Summary\n")
	sb.WriteString("=======\n")
	sb.WriteString(fmt.Sprintf("Total symbols:   %d\n", len(r.symbols)))
	sb.WriteString(fmt.Sprintf("Unreferenced:    %d\n", unreferenced))

	return sb.String()
}

// GenerateXRef is a convenience function producing a formatted report
// directly from a decoded record.
func GenerateXRef(rec *clbcfg.Record) string {
	gen := NewXRefGenerator()
	symbols := gen.Generate(rec)
	return NewXRefReport(symbols).String()
}

// GetSymbols returns all symbols found by the last Generate call.
func (x *XRefGenerator) GetSymbols() map[string]*Symbol {
	return x.symbols
}

// GetUnreferenced returns symbols with no consumption site, sorted by name.
func (x *XRefGenerator) GetUnreferenced() []*Symbol {
	var out []*Symbol
	for _, sym := range x.symbols {
		if len(sym.References) == 0 {
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
