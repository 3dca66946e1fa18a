package fasm

import (
	"fmt"
	"io"

	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/fabric"
	"github.com/clbtoolchain/clbfab/signal"
)

// Write renders a Record as a FASM document, one line per configured
// field, in the same line families Parse recognizes. Output is
// deterministic: fields are emitted in ascending coordinate/group/mux
// order, which makes Write suitable for diffing two configurations.
func Write(w io.Writer, r *clbcfg.Record) error {
	bw := &lineWriter{w: w}

	for i := 0; i < fabric.BLECount; i++ {
		if err := writeBLELine(bw, i, &r.BLEs[i]); err != nil {
			return err
		}
	}
	for g := 0; g < fabric.PPSGroupCount; g++ {
		if p := r.PPSOut[g]; p != nil {
			tok, err := bleIndexToLOFASMToken(p)
			if err != nil {
				return err
			}
			bw.printf("PPS_X5Y%d.OPAD0_O.%s", g+2, tok)
		}
	}
	for g := 0; g < fabric.IRQGroupCount; g++ {
		if irq := r.IRQOut[g]; irq != nil {
			code := irq.Code()
			bw.printf("CLB_IRQ%d.OPAD0_O.LO_%d_%d", g, 0, code)
		}
	}
	for i := 0; i < clbcfg.MuxCount; i++ {
		m := r.Muxes[i]
		bw.printf("MUX%d.CLBIN = 6'b%06b", i, uint8(m.CLBIn))
		bw.printf("MUX%d.INSYNC = 3'b%03b", i, uint8(m.InSync))
	}
	bw.printf("CLKDIV = 3'b%03b", uint8(r.ClkDiv))

	stopTok, err := loTokenForCounterIn(r.Counter.Stop)
	if err != nil {
		return err
	}
	bw.printf("CNT_X0Y3.CNT0_STOP.%s", stopTok)
	resetTok, err := loTokenForCounterIn(r.Counter.Reset)
	if err != nil {
		return err
	}
	bw.printf("CNT_X0Y3.CNT0_RESET.%s", resetTok)

	for i, v := range r.Counter.CountIs {
		bw.printf("CNT_X0Y3.%s.%s", clbcfg.CountIsName(i), v.String())
	}

	for i, sel := range r.OE {
		bw.printf("PPS_OE%d.OPAD0_O.SEL%s", i, sel.String())
	}

	writePeripheralLine(bw, "MODULE_CLB_TMR0_IN", r.Peripherals.Timer0In)
	writePeripheralLine(bw, "MODULE_CLB_TMR1_IN", r.Peripherals.Timer1In)
	writePeripheralLine(bw, "MODULE_CLB_TMR1_GATE", r.Peripherals.Timer1Gate)
	writePeripheralLine(bw, "MODULE_CLB_TMR2_IN", r.Peripherals.Timer2In)
	writePeripheralLine(bw, "MODULE_CLB_TMR2_RST", r.Peripherals.Timer2Reset)
	writePeripheralLine(bw, "MODULE_CLB_CCP1_IN", r.Peripherals.CCP1In)
	writePeripheralLine(bw, "MODULE_CLB_CCP2_IN", r.Peripherals.CCP2In)
	writePeripheralLine(bw, "MODULE_CLB_ADC_IN", r.Peripherals.ADCIn)

	return bw.err
}

func writePeripheralLine(bw *lineWriter, field, val string) {
	if val == "" {
		return
	}
	bw.printf("%s.OPAD0_O.%s", field, val)
}

// loTokenForCounterIn renders a COUNTERIN value's BLE as an "LO_y_x" token.
// COUNTERIN addresses a BLE by the same raw index fabric.LOForIndex expects.
func loTokenForCounterIn(c fabric.CounterIn) (string, error) {
	return bleIndexToLOToken(int(c))
}

func bleIndexToLOFASMToken(p *clbcfg.PPSOut) (string, error) {
	ble, err := p.BLE()
	if err != nil {
		return "", err
	}
	return bleIndexToLOToken(ble)
}

func writeBLELine(bw *lineWriter, idx int, cfg *clbcfg.BLECfg) error {
	tok, err := bleIndexToFASMToken(idx)
	if err != nil {
		return err
	}

	flopWord := "DISABLE"
	if cfg.Flop == clbcfg.FlopEnable {
		flopWord = "ENABLE"
	}
	bw.printf("%s.BLE0.FLOPSEL.%s", tok, flopWord)

	mask := ""
	if cfg.LUTMask != nil {
		mask = cfg.LUTMask.String()
	}
	bw.printf("%s.BLE0.LUT.INIT[15:0] = 16'b%s", tok, mask)

	ports := [4]struct {
		idx int
		p   signal.Port
	}{
		{0, signal.PortA}, {1, signal.PortB}, {2, signal.PortC}, {3, signal.PortD},
	}
	for _, pp := range ports {
		sig, ok := cfg.Port(pp.p)
		if !ok {
			continue
		}
		bw.printf("%s.BLE0_LI%d.%s", tok, pp.idx, sig.Name())
	}
	return nil
}

// lineWriter accumulates the first write error so callers need not check
// every individual printf.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format+"\n", args...)
}
