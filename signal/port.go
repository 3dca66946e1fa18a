// Package signal holds the static catalog of named sources selectable at
// each of the four LUT input ports (A, B, C, D) of a logic element.
//
// The four ports are structurally parallel — each offers 22 named signals
// encoded as a 5-bit code — but the codes mean different things on
// different ports, since each port's enumeration references disjoint
// sibling logic elements and disjoint groups of fabric input pins. This
// package keeps the per-port catalogs as data (built once at init) rather
// than as hand-written enumerations, since the CLB_BLE_n / INn / CLBSWINn
// numbering is a regular function of the port index.
package signal

import "fmt"

// Port names one of the four LUT input ports of a logic element.
type Port byte

const (
	PortA Port = 'A'
	PortB Port = 'B'
	PortC Port = 'C'
	PortD Port = 'D'
)

// Ports lists the four port letters in their canonical order, which also
// fixes the positional LUT input index: A=0, B=1, C=2, D=3.
var Ports = [4]Port{PortA, PortB, PortC, PortD}

// Index returns the positional LUT input index (0..3) for a port letter.
func (p Port) Index() int {
	for i, q := range Ports {
		if q == p {
			return i
		}
	}
	return -1
}

func (p Port) String() string {
	return string(rune(p))
}

// PortSignal names one of the 22 sources selectable at a single LUT input
// port, together with the 5-bit hardware code the port's own enumeration
// assigns it.
type PortSignal struct {
	Port Port
	Code uint8 // 0..21, the port-specific 5-bit code
	Name string
}

// Signal is the flattened view used by the Boolean expression front end:
// (port-letter, port-specific-code, display-name). Two Signal values
// compare equal iff they name the same port and code, which is what makes
// Signal usable as a map key when collecting the set of signals an
// expression references.
type Signal struct {
	Port Port
	Code uint8
}

// Name returns the signal's display name, e.g. "CLB_BLE_5" or "IN8".
func (s Signal) Name() string {
	ps, ok := byCode[portIdx(s.Port)][s.Code]
	if !ok {
		return fmt.Sprintf("%c?%d", s.Port, s.Code)
	}
	return ps.Name
}

func (s Signal) String() string {
	return fmt.Sprintf("%s(port %c)", s.Name(), s.Port)
}

const signalsPerPort = 22

var (
	byCode [4]map[uint8]PortSignal // indexed by Port.Index()
	byName [4]map[string]PortSignal
	global map[string]Signal // every signal name is unique across all four ports
)

func portIdx(p Port) int { return p.Index() }

// buildPortCatalog generates the 22 named signals for one port: 8 peer BLE
// outputs, 4 fabric inputs, 8 software-write inputs, and the port's own two
// counter-comparator taps. Every port shares this shape; only the numeric
// base differs, by portIndex.
func buildPortCatalog(port Port, portIndex int) []PortSignal {
	cat := make([]PortSignal, 0, signalsPerPort)
	code := uint8(0)

	for i := 0; i < 8; i++ {
		cat = append(cat, PortSignal{port, code, fmt.Sprintf("CLB_BLE_%d", portIndex*8+i)})
		code++
	}
	for i := 0; i < 4; i++ {
		cat = append(cat, PortSignal{port, code, fmt.Sprintf("IN%d", portIndex*4+i)})
		code++
	}
	for i := 0; i < 8; i++ {
		cat = append(cat, PortSignal{port, code, fmt.Sprintf("CLBSWIN%d", portIndex*8+i)})
		code++
	}
	cat = append(cat, PortSignal{port, code, fmt.Sprintf("COUNT_IS_%c1", port)})
	code++
	cat = append(cat, PortSignal{port, code, fmt.Sprintf("COUNT_IS_%c2", port)})

	return cat
}

func init() {
	global = make(map[string]Signal, 4*signalsPerPort)
	for i, port := range Ports {
		cat := buildPortCatalog(port, i)
		byC := make(map[uint8]PortSignal, len(cat))
		byN := make(map[string]PortSignal, len(cat))
		for _, ps := range cat {
			byC[ps.Code] = ps
			byN[ps.Name] = ps
			if _, dup := global[ps.Name]; dup {
				panic("signal: duplicate name across ports: " + ps.Name)
			}
			global[ps.Name] = Signal{Port: ps.Port, Code: ps.Code}
		}
		byCode[i] = byC
		byName[i] = byN
	}
}

// Catalog returns the 22 named signals selectable at the given port, in
// ascending code order.
func Catalog(port Port) []PortSignal {
	idx := portIdx(port)
	out := make([]PortSignal, signalsPerPort)
	for code, ps := range byCode[idx] {
		out[code] = ps
	}
	return out
}

// ByCode resolves a port-specific 5-bit code to its named signal.
// UnknownEncoding-class failure: returns false if the code is out of the
// port's 0..21 range.
func ByCode(port Port, code uint8) (PortSignal, bool) {
	ps, ok := byCode[portIdx(port)][code]
	return ps, ok
}

// ByName resolves a signal's display name on the given port to its
// PortSignal. Returns false if the name is not valid on that port (e.g.
// "CLB_BLE_0" is not selectable on port B).
func ByName(port Port, name string) (PortSignal, bool) {
	ps, ok := byName[portIdx(port)][name]
	return ps, ok
}

// New constructs the flattened Signal for a name on a given port.
func New(port Port, name string) (Signal, error) {
	ps, ok := ByName(port, name)
	if !ok {
		return Signal{}, fmt.Errorf("signal %q is not selectable on port %c", name, port)
	}
	return Signal{Port: ps.Port, Code: ps.Code}, nil
}

// MustNew is like New but panics on failure; reserved for static tables
// built from names this package itself generated.
func MustNew(port Port, name string) Signal {
	s, err := New(port, name)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup resolves a bare signal name (as written in a Boolean expression or
// a FASM BLE0_LI<n> source segment) to its flattened Signal without the
// caller needing to know which port it lives on in advance — every signal
// name is unique across the four ports' catalogs.
func Lookup(name string) (Signal, error) {
	s, ok := global[name]
	if !ok {
		return Signal{}, fmt.Errorf("unknown signal %q", name)
	}
	return s, nil
}
