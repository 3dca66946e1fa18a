package serialize

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/clbtoolchain/clbfab/bitstream"
)

// DefaultDeviceMacros is the device family this fabric layout targets,
// used as the compile-time guard in the emitted assembly source when the
// caller does not supply its own list.
var DefaultDeviceMacros = []string{
	"_16F13113", "_16F13114", "_16F13115",
	"_16F13123", "_16F13124", "_16F13125",
	"_16F13143", "_16F13144", "_16F13145",
}

// DefaultPsect is the section name used when the caller does not specify
// one.
const DefaultPsect = "clb_config"

// AsmOptions controls the assembly-source emitter.
type AsmOptions struct {
	DeviceMacros []string
	Psect        string
}

func (o AsmOptions) withDefaults() AsmOptions {
	if len(o.DeviceMacros) == 0 {
		o.DeviceMacros = DefaultDeviceMacros
	}
	if o.Psect == "" {
		o.Psect = DefaultPsect
	}
	return o
}

type asmData struct {
	Guard string
	Psect string
	Words []string
}

// asmTemplate reproduces the device-macro guard, psect declaration, and
// "dw 0xNNNN;" word list that original_source/bitstream.py's
// save_bitstream_s emits.
var asmTemplate = template.Must(template.New("clb_config_asm").Parse(
	`#if !({{.Guard}})
    #error This module is only suitable for PIC16F13145 family devices
#endif

#ifdef CLB_CONFIG_ADDR
    psect {{.Psect}},global,class=STRCODE,abs,ovrld,delta=2,noexec,split=0,merge=0,keep
#else
    psect {{.Psect}},global,class=STRCODE,delta=2,noexec,split=0,merge=0,keep
#endif

global _start_{{.Psect}}

psect   {{.Psect}}
#ifdef CLB_CONFIG_ADDR
    ORG CLB_CONFIG_ADDR
#endif

_start_{{.Psect}}:
{{range .Words}}    dw  0x{{.}};
{{end}}`))

// WriteAsm renders a buffer as a PIC assembly source fragment suitable for
// linking directly into firmware.
func WriteAsm(w io.Writer, b *bitstream.Bits, opts AsmOptions) error {
	opts = opts.withDefaults()

	words := make([]string, wordCount)
	for wi := 0; wi < wordCount; wi++ {
		v, err := wordAt(b, wi)
		if err != nil {
			return err
		}
		words[wi] = strings.ToUpper(hex4(v))
	}

	guardParts := make([]string, len(opts.DeviceMacros))
	for i, m := range opts.DeviceMacros {
		guardParts[i] = fmt.Sprintf("defined(%s)", m)
	}

	return asmTemplate.Execute(w, asmData{
		Guard: strings.Join(guardParts, " || "),
		Psect: opts.Psect,
		Words: words,
	})
}
