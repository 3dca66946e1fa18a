package clbcfg

import "github.com/clbtoolchain/clbfab/fabric"

// MuxCfg is one of the 16 routing muxes: a CLBIN source selector and an
// INSYNC mode.
type MuxCfg struct {
	CLBIn  fabric.CLBIn
	InSync fabric.InSync
}

// MuxCount is the number of routing muxes.
const MuxCount = 16

// PPSOut is one of the 8 output-pin selectors: names which of a group of
// four logic elements drives an external output pin. Selectable either by
// BLE identifier (which must belong to that pin's group of four) or by a
// direct 2-bit code.
type PPSOut struct {
	group fabric.PPSGroup
	code  uint8 // 0..3, the member index within the group
}

// NewPPSOut creates a selector for the given group, defaulting to member 0.
func NewPPSOut(group fabric.PPSGroup) *PPSOut {
	return &PPSOut{group: group}
}

// Group returns which of the 8 output-pin groups this selector belongs to.
func (p *PPSOut) Group() fabric.PPSGroup { return p.group }

// Code returns the raw 2-bit group-member code currently selected.
func (p *PPSOut) Code() uint8 { return p.code }

// SetBLE selects the pin's driver by logic-element index. Fails if ble does
// not belong to this selector's group of four.
func (p *PPSOut) SetBLE(ble int) error {
	wantGroup := fabric.PPSGroupOf(ble)
	if wantGroup != p.group {
		return &wrongPPSGroup{ble: ble, want: wantGroup, got: p.group}
	}
	p.code = fabric.PPSMemberOf(ble)
	return nil
}

// BLE returns the logic-element index this selector currently names.
func (p *PPSOut) BLE() (int, error) {
	return fabric.PPSMember(p.group, p.code)
}

// SetCode selects the pin's driver directly by its 2-bit code.
func (p *PPSOut) SetCode(code uint8) error {
	if code > 3 {
		return &codeOutOfRange{field: "PPS_OUT", code: code, bits: 2}
	}
	p.code = code
	return nil
}

type wrongPPSGroup struct {
	ble  int
	want fabric.PPSGroup
	got  fabric.PPSGroup
}

func (e *wrongPPSGroup) Error() string {
	return "BLE is routed via a different PPS group than this selector"
}

type codeOutOfRange struct {
	field string
	code  uint8
	bits  int
}

func (e *codeOutOfRange) Error() string {
	return e.field + " code exceeds its bit width"
}

// IRQOut is one of the 4 interrupt-source selectors: chooses one of 8
// logic elements within its group.
type IRQOut struct {
	group fabric.IRQGroup
	code  uint8 // 0..7
}

func NewIRQOut(group fabric.IRQGroup) *IRQOut {
	return &IRQOut{group: group}
}

func (i *IRQOut) Group() fabric.IRQGroup { return i.group }
func (i *IRQOut) Code() uint8            { return i.code }

func (i *IRQOut) SetBLE(ble int) error {
	wantGroup := fabric.IRQGroupOf(ble)
	if wantGroup != i.group {
		return &wrongIRQGroup{ble: ble, want: wantGroup, got: i.group}
	}
	i.code = fabric.IRQMemberOf(ble)
	return nil
}

type wrongIRQGroup struct {
	ble  int
	want fabric.IRQGroup
	got  fabric.IRQGroup
}

func (e *wrongIRQGroup) Error() string {
	return "BLE is routed via a different IRQ group than this selector"
}

func (i *IRQOut) BLE() (int, error) {
	return fabric.IRQMember(i.group, i.code)
}

func (i *IRQOut) SetCode(code uint8) error {
	if code > 7 {
		return &codeOutOfRange{field: "IRQ", code: code, bits: 3}
	}
	i.code = code
	return nil
}

// Counter is the counter block: two COUNTERIN selectors (stop and reset,
// each a 5-bit BLE index) and eight CNTMUX comparator-threshold fields.
type Counter struct {
	Stop  fabric.CounterIn
	Reset fabric.CounterIn
	// CountIs holds the eight COUNT_IS_<letter><1|2> fields, indexed in
	// the fixed order A1, A2, B1, B2, C1, C2, D1, D2.
	CountIs [8]fabric.CntMux
}

// CountIsIndex returns the index into Counter.CountIs for a given port
// letter and tap number (1 or 2).
func CountIsIndex(port byte, tap int) int {
	letters := "ABCD"
	li := -1
	for i := 0; i < len(letters); i++ {
		if letters[i] == port {
			li = i
			break
		}
	}
	return li*2 + (tap - 1)
}

// CountIsName returns the field name for a given CountIs index, e.g.
// "COUNT_IS_A1" for index 0.
func CountIsName(idx int) string {
	letters := "ABCD"
	letter := letters[idx/2]
	tap := idx%2 + 1
	return "COUNT_IS_" + string(letter) + itoa(tap)
}

func itoa(n int) string {
	return string(rune('0' + n))
}
