package fabric

import "fmt"

// BLECount is the number of logic-element slots in the fabric.
const BLECount = 32

// BLECoord is a logic element's place-and-route coordinate, as printed in
// FASM (BLE_X<x>Y<y>) and in the "LO_<y>_<x>" peer-reference form used
// inside BLE0_LI<n> source segments.
//
// The mapping between a BLE index (0..31) and (x, y) is row-major with x
// fastest: x runs 1..4, y runs 2..9.
type BLECoord struct {
	X int
	Y int
}

// CoordForIndex returns the (x, y) coordinate of logic element n.
func CoordForIndex(n int) (BLECoord, error) {
	if n < 0 || n >= BLECount {
		return BLECoord{}, fmt.Errorf("BLE index %d out of range 0..%d", n, BLECount-1)
	}
	return BLECoord{X: n%4 + 1, Y: n/4 + 2}, nil
}

// IndexForCoord is the inverse of CoordForIndex.
func IndexForCoord(c BLECoord) (int, error) {
	x, y := c.X-1, c.Y-2
	if x < 0 || x > 3 || y < 0 || y > 7 {
		return 0, fmt.Errorf("BLE coordinate X%dY%d out of range", c.X, c.Y)
	}
	return y*4 + x, nil
}

// LOCoord is the same logic element addressed the way a BLE0_LI<n> source
// segment or a counter/PPS/IRQ target names a peer: "LO_<y>_<x>" with an
// origin two rows and one column off the BLE's own X/Y numbering.
type LOCoord struct {
	Y int
	X int
}

// ToLO converts a BLE coordinate to its LO_y_x peer-reference form.
func (c BLECoord) ToLO() LOCoord {
	return LOCoord{Y: c.Y - 2, X: c.X - 1}
}

// ToBLE is the inverse of ToLO.
func (l LOCoord) ToBLE() BLECoord {
	return BLECoord{X: l.X + 1, Y: l.Y + 2}
}

// IndexForLO resolves a "LO_<y>_<x>" peer coordinate directly to a BLE
// index.
func IndexForLO(l LOCoord) (int, error) {
	return IndexForCoord(l.ToBLE())
}

// LOForIndex is the inverse of IndexForLO.
func LOForIndex(n int) (LOCoord, error) {
	c, err := CoordForIndex(n)
	if err != nil {
		return LOCoord{}, err
	}
	return c.ToLO(), nil
}

// PPSGroup identifies one of the 8 output-pin selector groups, each
// spanning 4 consecutive logic elements.
type PPSGroup int

// PPSGroupCount is the number of output-pin selectors.
const PPSGroupCount = 8

// PPSGroupOf returns which output-pin group a BLE index belongs to.
func PPSGroupOf(bleIndex int) PPSGroup { return PPSGroup(bleIndex / 4) }

// PPSMember returns the BLE index of the member-th (0..3) element of a PPS
// group.
func PPSMember(group PPSGroup, member uint8) (int, error) {
	if member > 3 {
		return 0, fmt.Errorf("PPS group member %d exceeds 2 bits", member)
	}
	return int(group)*4 + int(member), nil
}

// PPSMemberOf returns a BLE's 2-bit position within its own PPS group.
func PPSMemberOf(bleIndex int) uint8 { return uint8(bleIndex % 4) }

// IRQGroup identifies one of the 4 interrupt selector groups, each
// spanning 8 consecutive logic elements.
type IRQGroup int

// IRQGroupCount is the number of interrupt selectors.
const IRQGroupCount = 4

func IRQGroupOf(bleIndex int) IRQGroup { return IRQGroup(bleIndex / 8) }

func IRQMember(group IRQGroup, member uint8) (int, error) {
	if member > 7 {
		return 0, fmt.Errorf("IRQ group member %d exceeds 3 bits", member)
	}
	return int(group)*8 + int(member), nil
}

func IRQMemberOf(bleIndex int) uint8 { return uint8(bleIndex % 8) }
