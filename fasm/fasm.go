// Package fasm reads and writes the dotted, line-oriented textual
// configuration format exchanged with place-and-route tooling: one line
// per configured field, prefixed by the fabric location it names.
//
// Grounded on original_source/data_model.py's FASM class: this package
// keeps the same per-line dispatch-by-prefix shape, translated from
// exception-terminated parsing to Go's explicit error returns, with an
// explicit Strict option standing in for the choice the Python version
// makes implicitly (raise vs. print-and-continue) depending on which line
// family failed.
package fasm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clbtoolchain/clbfab/boolexpr"
	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/clberr"
	"github.com/clbtoolchain/clbfab/fabric"
	"github.com/clbtoolchain/clbfab/signal"
)

// Options controls how malformed lines are handled.
type Options struct {
	// Strict aborts parsing at the first malformed recognized line,
	// returning that failure as a fatal ParseError. By default (false)
	// a malformed line is recorded as a warning and parsing continues —
	// a single bad line in a large place-and-route dump should not block
	// inspecting the rest of the file. An unrecognized line prefix is
	// always a warning, in both modes.
	Strict bool
}

// Parse reads a FASM-format document into a Record. The returned error is
// non-nil only when Options.Strict aborted parsing early or reading r
// failed (an IOFailure); otherwise every
// problem encountered is returned as a warning in the second return value,
// and the Record reflects everything parsed before and after each
// warning.
func Parse(r io.Reader, opts Options) (*clbcfg.Record, []error, error) {
	rec := clbcfg.New()
	var warnings []error

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var err error
		switch {
		case strings.HasPrefix(line, "BLE_X"):
			err = parseBLELine(rec, line)
		case strings.HasPrefix(line, "PPS_X"):
			err = parsePPSLine(rec, line)
		case strings.HasPrefix(line, "MUX"):
			err = parseMuxLine(rec, line)
		case strings.HasPrefix(line, "CLKDIV"):
			err = parseClkDivLine(rec, line)
		case strings.HasPrefix(line, "CNT_X0Y3"):
			err = parseCounterLine(rec, line)
		case strings.HasPrefix(line, "CLB_IRQ"):
			err = parseIRQLine(rec, line)
		case strings.HasPrefix(line, "PPS_OE"):
			err = parseOELine(rec, line)
		case strings.HasPrefix(line, "MODULE_CLB_"):
			err = parseModuleLine(rec, line)
		default:
			warnings = append(warnings, clberr.NewParseError(line, "unhandled line"))
			continue
		}

		if err != nil {
			pe := clberr.NewParseError(line, err.Error())
			if opts.Strict {
				return rec, warnings, pe
			}
			warnings = append(warnings, pe)
		}
	}
	if err := scanner.Err(); err != nil {
		return rec, warnings, clberr.NewIOFailure("<fasm>", err)
	}

	return rec, warnings, nil
}

// bleCoordFromFASM parses "BLE_X<x>Y<y>" into a BLE index.
func bleCoordFromFASM(tok string) (int, error) {
	if !strings.HasPrefix(tok, "BLE_X") {
		return 0, fmt.Errorf("not a BLE coordinate: %q", tok)
	}
	rest := tok[len("BLE_X"):]
	yi := strings.IndexByte(rest, 'Y')
	if yi < 0 {
		return 0, fmt.Errorf("malformed BLE coordinate: %q", tok)
	}
	x, err := strconv.Atoi(rest[:yi])
	if err != nil {
		return 0, fmt.Errorf("malformed BLE coordinate: %q", tok)
	}
	y, err := strconv.Atoi(rest[yi+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed BLE coordinate: %q", tok)
	}
	return fabric.IndexForCoord(fabric.BLECoord{X: x, Y: y})
}

// loCoordToBLEIndex parses "LO_<y>_<x>" into a BLE index.
func loCoordToBLEIndex(tok string) (int, error) {
	parts := strings.Split(tok, "_")
	if len(parts) != 3 || parts[0] != "LO" {
		return 0, fmt.Errorf("malformed LO coordinate: %q", tok)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed LO coordinate: %q", tok)
	}
	x, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("malformed LO coordinate: %q", tok)
	}
	return fabric.IndexForLO(fabric.LOCoord{Y: y, X: x})
}

func bleIndexToLOToken(idx int) (string, error) {
	lo, err := fabric.LOForIndex(idx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LO_%d_%d", lo.Y, lo.X), nil
}

func bleIndexToFASMToken(idx int) (string, error) {
	c, err := fabric.CoordForIndex(idx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BLE_X%dY%d", c.X, c.Y), nil
}

// parseBLELine handles the three BLE0.* line families: FLOPSEL, LUT
// truth-table, and the four LUT_I_<letter> port selections.
func parseBLELine(rec *clbcfg.Record, line string) error {
	parts := strings.Split(line, ".")
	if len(parts) < 3 {
		return fmt.Errorf("expected at least 3 dotted segments")
	}
	idx, err := bleCoordFromFASM(parts[0])
	if err != nil {
		return err
	}

	if parts[1] == "BLE0" {
		switch parts[2] {
		case "FLOPSEL":
			if len(parts) < 4 {
				return fmt.Errorf("FLOPSEL line missing value")
			}
			v := strings.TrimSpace(parts[3])
			switch v {
			case "ENABLE":
				rec.BLEs[idx].Flop = clbcfg.FlopEnable
			case "DISABLE":
				rec.BLEs[idx].Flop = clbcfg.FlopDisable
			default:
				return fmt.Errorf("unknown FLOPSEL value %q", v)
			}
			return nil
		case "LUT":
			bits, err := parseLUTInitField(parts[len(parts)-1])
			if err != nil {
				return err
			}
			mask, err := boolexpr.ParseLUTMask(bits)
			if err != nil {
				return err
			}
			rec.BLEs[idx].LUTMask = &mask
			return nil
		}
	}

	if strings.HasPrefix(parts[1], "BLE0_LI") {
		if len(parts) < 3 {
			return fmt.Errorf("LUT_I line missing source segment")
		}
		src := strings.TrimSpace(parts[2])
		var name string
		if strings.HasPrefix(src, "LO_") {
			peer, err := loCoordToBLEIndex(src)
			if err != nil {
				return err
			}
			name = fmt.Sprintf("CLB_BLE_%d", peer)
		} else {
			name = src
		}

		letters := []signal.Port{signal.PortA, signal.PortB, signal.PortC, signal.PortD}
		liDigit := parts[1][len(parts[1])-1]
		li := int(liDigit - '0')
		if li < 0 || li > 3 {
			return fmt.Errorf("unknown LUT input %q", parts[1])
		}
		port := letters[li]
		sig, err := signal.New(port, name)
		if err != nil {
			return err
		}
		rec.BLEs[idx].SetPort(port, sig)
		return nil
	}

	return fmt.Errorf("unrecognized BLE line segment %q", parts[1])
}

// parseLUTInitField extracts the 16-bit binary literal from a field like
// "INIT[15:0] = 16'b1110101111110100".
func parseLUTInitField(field string) (string, error) {
	i := strings.Index(field, "'b")
	if i < 0 {
		return "", fmt.Errorf("missing binary literal in %q", field)
	}
	bits := field[i+2:]
	bits = strings.TrimSpace(bits)
	bits = strings.TrimRight(bits, ";")
	if len(bits) != 16 {
		return "", clberr.NewLengthMismatch(len(bits), 16)
	}
	return bits, nil
}

func parsePPSLine(rec *clbcfg.Record, line string) error {
	parts := strings.Split(strings.TrimSpace(line), ".")
	if len(parts) != 3 {
		return fmt.Errorf("expected 3 dotted segments")
	}
	if parts[1] != "OPAD0_O" {
		return fmt.Errorf("expected OPAD0_O, got %q", parts[1])
	}
	group, err := ppsGroupFromFASM(parts[0])
	if err != nil {
		return err
	}
	code, err := lastDigit(parts[2])
	if err != nil {
		return err
	}
	if rec.PPSOut[group] == nil {
		rec.PPSOut[group] = clbcfg.NewPPSOut(fabric.PPSGroup(group))
	}
	return rec.PPSOut[group].SetCode(uint8(code))
}

// ppsGroupFromFASM parses "PPS_X5Y<2+group>" into its group index.
func ppsGroupFromFASM(tok string) (int, error) {
	if !strings.HasPrefix(tok, "PPS_X5Y") {
		return 0, fmt.Errorf("malformed PPS selector name %q", tok)
	}
	y, err := strconv.Atoi(tok[len("PPS_X5Y"):])
	if err != nil {
		return 0, fmt.Errorf("malformed PPS selector name %q", tok)
	}
	group := y - 2
	if group < 0 || group >= fabric.PPSGroupCount {
		return 0, fmt.Errorf("PPS selector %q out of range", tok)
	}
	return group, nil
}

func parseIRQLine(rec *clbcfg.Record, line string) error {
	parts := strings.Split(strings.TrimSpace(line), ".")
	if len(parts) != 3 {
		return fmt.Errorf("expected 3 dotted segments")
	}
	if parts[1] != "OPAD0_O" {
		return fmt.Errorf("expected OPAD0_O, got %q", parts[1])
	}
	if !strings.HasPrefix(parts[0], "CLB_IRQ") {
		return fmt.Errorf("malformed IRQ selector name %q", parts[0])
	}
	group, err := strconv.Atoi(parts[0][len("CLB_IRQ"):])
	if err != nil || group < 0 || group >= fabric.IRQGroupCount {
		return fmt.Errorf("IRQ selector %q out of range", parts[0])
	}
	code, err := lastDigit(parts[2])
	if err != nil {
		return err
	}
	if rec.IRQOut[group] == nil {
		rec.IRQOut[group] = clbcfg.NewIRQOut(fabric.IRQGroup(group))
	}
	return rec.IRQOut[group].SetCode(uint8(code))
}

func parseOELine(rec *clbcfg.Record, line string) error {
	parts := strings.Split(strings.TrimSpace(line), ".")
	if len(parts) != 3 {
		return fmt.Errorf("expected 3 dotted segments")
	}
	if parts[1] != "OPAD0_O" {
		return fmt.Errorf("expected OPAD0_O, got %q", parts[1])
	}
	if !strings.HasPrefix(parts[0], "PPS_OE") {
		return fmt.Errorf("malformed OE selector name %q", parts[0])
	}
	idx, err := strconv.Atoi(parts[0][len("PPS_OE"):])
	if err != nil || idx < 0 || idx >= clbcfg.OESelCount {
		return fmt.Errorf("OE selector %q out of range", parts[0])
	}
	name := strings.TrimPrefix(parts[2], "SEL")
	sel, err := fabric.ParseOESelName(name)
	if err != nil {
		return err
	}
	rec.OE[idx] = sel
	return nil
}

func parseMuxLine(rec *clbcfg.Record, line string) error {
	eq := strings.SplitN(line, "=", 2)
	if len(eq) != 2 {
		return fmt.Errorf("missing '='")
	}
	regField := strings.TrimSpace(eq[0])
	valField := strings.TrimSpace(eq[1])

	dot := strings.SplitN(regField, ".", 2)
	if len(dot) != 2 {
		return fmt.Errorf("malformed mux field %q", regField)
	}
	if !strings.HasPrefix(dot[0], "MUX") {
		return fmt.Errorf("malformed mux selector %q", dot[0])
	}
	idx, err := strconv.Atoi(dot[0][len("MUX"):])
	if err != nil || idx < 0 || idx >= clbcfg.MuxCount {
		return fmt.Errorf("mux selector %q out of range", dot[0])
	}

	raw, err := parseSizedBinaryLiteral(valField)
	if err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(dot[1], "CLBIN"):
		clbin, err := fabric.ParseCLBIn(uint8(raw))
		if err != nil {
			return err
		}
		rec.Muxes[idx].CLBIn = clbin
	case strings.HasPrefix(dot[1], "INSYNC"):
		insync, err := fabric.ParseInSync(uint8(raw))
		if err != nil {
			return err
		}
		rec.Muxes[idx].InSync = insync
	default:
		return fmt.Errorf("unknown mux field %q", dot[1])
	}
	return nil
}

func parseClkDivLine(rec *clbcfg.Record, line string) error {
	eq := strings.SplitN(line, "=", 2)
	if len(eq) != 2 {
		return fmt.Errorf("missing '='")
	}
	raw, err := parseSizedBinaryLiteral(strings.TrimSpace(eq[1]))
	if err != nil {
		return err
	}
	clkdiv, err := fabric.ParseClkDiv(uint8(raw))
	if err != nil {
		return err
	}
	rec.ClkDiv = clkdiv
	return nil
}

func parseCounterLine(rec *clbcfg.Record, line string) error {
	parts := strings.Split(strings.TrimSpace(line), ".")
	if len(parts) != 3 {
		return fmt.Errorf("expected 3 dotted segments")
	}
	switch {
	case parts[1] == "CNT0_RESET":
		idx, err := loCoordToBLEIndex(parts[2])
		if err != nil {
			return err
		}
		reset, err := fabric.ParseCounterIn(uint8(idx))
		if err != nil {
			return err
		}
		rec.Counter.Reset = reset
	case parts[1] == "CNT0_STOP":
		idx, err := loCoordToBLEIndex(parts[2])
		if err != nil {
			return err
		}
		stop, err := fabric.ParseCounterIn(uint8(idx))
		if err != nil {
			return err
		}
		rec.Counter.Stop = stop
	case strings.HasPrefix(parts[1], "COUNT_IS_"):
		v, err := fabric.ParseCntMuxName(parts[2])
		if err != nil {
			return err
		}
		letter := parts[1][len("COUNT_IS_")]
		tap, err := strconv.Atoi(parts[1][len(parts[1])-1:])
		if err != nil {
			return err
		}
		rec.Counter.CountIs[clbcfg.CountIsIndex(letter, tap)] = v
	default:
		return fmt.Errorf("unknown counter field %q", parts[1])
	}
	return nil
}

func parseModuleLine(rec *clbcfg.Record, line string) error {
	parts := strings.Split(strings.TrimSpace(line), ".")
	if len(parts) != 3 {
		return fmt.Errorf("expected 3 dotted segments")
	}
	val := parts[2]
	switch parts[0] {
	case "MODULE_CLB_TMR0_IN":
		rec.Peripherals.Timer0In = val
	case "MODULE_CLB_TMR1_IN":
		rec.Peripherals.Timer1In = val
	case "MODULE_CLB_TMR1_GATE":
		rec.Peripherals.Timer1Gate = val
	case "MODULE_CLB_TMR2_IN":
		rec.Peripherals.Timer2In = val
	case "MODULE_CLB_TMR2_RST":
		rec.Peripherals.Timer2Reset = val
	case "MODULE_CLB_CCP1_IN":
		rec.Peripherals.CCP1In = val
	case "MODULE_CLB_CCP2_IN":
		rec.Peripherals.CCP2In = val
	case "MODULE_CLB_ADC_IN":
		rec.Peripherals.ADCIn = val
	default:
		return fmt.Errorf("unknown module field %q", parts[0])
	}
	return nil
}

func lastDigit(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty field")
	}
	c := s[len(s)-1]
	if c < '0' || c > '9' {
		return 0, fmt.Errorf("expected trailing digit in %q", s)
	}
	return int(c - '0'), nil
}

// parseSizedBinaryLiteral parses a Verilog-style sized literal like
// "6'b000000" into its integer value.
func parseSizedBinaryLiteral(s string) (int, error) {
	i := strings.Index(s, "'b")
	if i < 0 {
		return 0, fmt.Errorf("missing binary literal in %q", s)
	}
	bits := strings.TrimRight(s[i+2:], ";")
	v, err := strconv.ParseInt(bits, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed binary literal %q", bits)
	}
	return int(v), nil
}
