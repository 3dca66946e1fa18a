// Package inspect is a read-only terminal browser over a decoded
// configuration record. Unlike a live CPU debugger there is no running
// state to step through — the TUI exists to let a reviewer page through
// the 32 logic elements, the routing fabric, and the peripheral
// attributions of a single compiled record, with lint diagnostics
// surfaced alongside.
package inspect

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/signal"
	"github.com/clbtoolchain/clbfab/tools"
)

// TUI is the inspector's text user interface.
type TUI struct {
	Record *clbcfg.Record

	App   *tview.Application
	Pages *tview.Pages

	MainLayout *tview.Flex
	LeftPanel  *tview.Flex
	RightPanel *tview.Flex

	BLEList         *tview.List
	DetailView      *tview.TextView
	FabricView      *tview.TextView
	PeripheralsView *tview.TextView
	DiagnosticsView *tview.TextView
	CommandInput    *tview.InputField

	Selected int
}

// NewTUI builds an inspector over rec. The BLE list starts on element 0.
func NewTUI(rec *clbcfg.Record) *TUI {
	t := &TUI{
		Record: rec,
		App:    tview.NewApplication(),
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()

	return t
}

func (t *TUI) initializeViews() {
	t.BLEList = tview.NewList().ShowSecondaryText(false)
	t.BLEList.SetBorder(true).SetTitle(" Logic Elements ")
	for i := range t.Record.BLEs {
		idx := i
		t.BLEList.AddItem(fmt.Sprintf("BLE %2d", i), "", 0, func() {
			t.Selected = idx
			t.UpdateDetailView()
		})
	}
	t.BLEList.SetChangedFunc(func(index int, name, secondary string, shortcut rune) {
		t.Selected = index
		t.UpdateDetailView()
	})

	t.DetailView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.DetailView.SetBorder(true).SetTitle(" Logic Element Detail ")

	t.FabricView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.FabricView.SetBorder(true).SetTitle(" Fabric (PPS / IRQ / Counter / ClkDiv / OE) ")

	t.PeripheralsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.PeripheralsView.SetBorder(true).SetTitle(" Peripheral Attributions ")

	t.DiagnosticsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.DiagnosticsView.SetBorder(true).SetTitle(" Diagnostics ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	t.LeftPanel = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.BLEList, 0, 1, true)

	rightTop := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.DetailView, 0, 1, false).
		AddItem(t.FabricView, 0, 1, false)

	t.RightPanel = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(rightTop, 0, 3, false).
		AddItem(t.PeripheralsView, 0, 1, false).
		AddItem(t.DiagnosticsView, 8, 0, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.LeftPanel, 20, 0, true).
		AddItem(t.RightPanel, 0, 3, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, true).
		AddItem(t.CommandInput, 3, 0, false)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		case tcell.KeyTab:
			t.App.SetFocus(t.CommandInput)
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := strings.TrimSpace(t.CommandInput.GetText())
	t.CommandInput.SetText("")
	if cmd == "" {
		return
	}

	switch {
	case cmd == "quit" || cmd == "q":
		t.App.Stop()
	case cmd == "lint":
		t.runLint()
	case strings.HasPrefix(cmd, "goto "):
		var idx int
		if _, err := fmt.Sscanf(cmd, "goto %d", &idx); err == nil && idx >= 0 && idx < len(t.Record.BLEs) {
			t.Selected = idx
			t.BLEList.SetCurrentItem(idx)
			t.UpdateDetailView()
		}
	}
}

func (t *TUI) runLint() {
	linter := tools.NewLinter(nil)
	issues := linter.LintRecord(t.Record)

	var sb strings.Builder
	if len(issues) == 0 {
		sb.WriteString("[green]no issues found[white]\n")
	}
	for _, iss := range issues {
		color := "yellow"
		if iss.Level == tools.LintError {
			color = "red"
		}
		sb.WriteString(fmt.Sprintf("[%s]%s[white]\n", color, iss.String()))
	}
	t.DiagnosticsView.SetText(sb.String())
}

// RefreshAll redraws every panel from the current record and selection.
func (t *TUI) RefreshAll() {
	t.UpdateDetailView()
	t.UpdateFabricView()
	t.UpdatePeripheralsView()
	t.App.Draw()
}

// UpdateDetailView renders the currently selected logic element.
func (t *TUI) UpdateDetailView() {
	t.DetailView.Clear()
	if t.Selected < 0 || t.Selected >= len(t.Record.BLEs) {
		return
	}
	cfg := &t.Record.BLEs[t.Selected]

	var lines []string
	lines = append(lines, fmt.Sprintf("[yellow]BLE %d[white]", t.Selected))
	lines = append(lines, fmt.Sprintf("flip-flop: %s", cfg.Flop))
	if cfg.LUTMask != nil {
		lines = append(lines, fmt.Sprintf("LUT init:  %s", cfg.LUTMask.String()))
	} else {
		lines = append(lines, "LUT init:  (unset)")
	}
	lines = append(lines, fmt.Sprintf("equation:  %s", cfg.EquationString()))
	lines = append(lines, "")
	for _, p := range signal.Ports {
		lines = append(lines, fmt.Sprintf("  LI_%s: %s", p, portValue(cfg, p)))
	}

	t.DetailView.SetText(strings.Join(lines, "\n"))
}

func portValue(cfg *clbcfg.BLECfg, p signal.Port) string {
	sig, ok := cfg.Port(p)
	if !ok {
		return "(unset)"
	}
	return sig.Name()
}

// UpdateFabricView renders the PPS/IRQ/counter/clock-divider/OE state.
func (t *TUI) UpdateFabricView() {
	t.FabricView.Clear()

	var lines []string
	lines = append(lines, "[yellow]PPS outputs[white]")
	for g, p := range t.Record.PPSOut {
		if p == nil {
			continue
		}
		if idx, err := p.BLE(); err == nil {
			lines = append(lines, fmt.Sprintf("  group %d -> BLE %d", g, idx))
		}
	}

	lines = append(lines, "", "[yellow]IRQ outputs[white]")
	for g, irq := range t.Record.IRQOut {
		if irq == nil {
			continue
		}
		if idx, err := irq.BLE(); err == nil {
			lines = append(lines, fmt.Sprintf("  group %d -> BLE %d", g, idx))
		}
	}

	lines = append(lines, "", "[yellow]Counter[white]")
	lines = append(lines, fmt.Sprintf("  stop:  %s", t.Record.Counter.Stop))
	lines = append(lines, fmt.Sprintf("  reset: %s", t.Record.Counter.Reset))
	for i, m := range t.Record.Counter.CountIs {
		lines = append(lines, fmt.Sprintf("  %s: %s", clbcfg.CountIsName(i), m))
	}

	lines = append(lines, "", fmt.Sprintf("[yellow]Clock divider:[white] %s", t.Record.ClkDiv))

	lines = append(lines, "", "[yellow]Output enables[white]")
	for i, sel := range t.Record.OE {
		lines = append(lines, fmt.Sprintf("  OE %d: %s", i, sel))
	}

	t.FabricView.SetText(strings.Join(lines, "\n"))
}

// UpdatePeripheralsView renders the non-bitstream peripheral attributions.
func (t *TUI) UpdatePeripheralsView() {
	t.PeripheralsView.Clear()

	p := t.Record.Peripherals
	fields := []struct{ name, val string }{
		{"TMR0_IN", p.Timer0In},
		{"TMR1_IN", p.Timer1In},
		{"TMR1_GATE", p.Timer1Gate},
		{"TMR2_IN", p.Timer2In},
		{"TMR2_RST", p.Timer2Reset},
		{"CCP1_IN", p.CCP1In},
		{"CCP2_IN", p.CCP2In},
		{"ADC_IN", p.ADCIn},
	}

	var lines []string
	for _, f := range fields {
		val := f.val
		if val == "" {
			val = "(unset)"
		}
		lines = append(lines, fmt.Sprintf("%-10s %s", f.name, val))
	}
	t.PeripheralsView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI event loop.
func (t *TUI) Run() error {
	t.RefreshAll()
	return t.App.SetRoot(t.Pages, true).SetFocus(t.BLEList).Run()
}

// Stop stops the TUI event loop.
func (t *TUI) Stop() {
	t.App.Stop()
}
