package tools

import (
	"strings"

	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/fasm"
)

// FormatOptions controls canonical FASM formatting.
type FormatOptions struct {
	// AnnotateUnset appends a "# unset: ..." comment line naming every
	// peripheral attribution field that is empty, since Write omits
	// those fields.
	AnnotateUnset bool
}

// DefaultFormatOptions returns the default formatter options.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{AnnotateUnset: false}
}

// Format parses FASM source and re-emits it in canonical line order and
// spacing: the same order package fasm's Write always produces, so running
// Format twice is a no-op. A line that only warns (an unhandled prefix or
// a malformed field) is not applied to the record and so is absent from
// the formatted text; its parse warning is returned alongside the text
// rather than discarded.
func Format(input string, opts *FormatOptions) (string, []error, error) {
	if opts == nil {
		opts = DefaultFormatOptions()
	}
	rec, warnings, err := fasm.Parse(strings.NewReader(input), fasm.Options{Strict: false})
	if err != nil {
		return "", warnings, err
	}

	var buf strings.Builder
	if err := fasm.Write(&buf, rec); err != nil {
		return "", warnings, err
	}

	if opts.AnnotateUnset {
		annotateUnset(&buf, rec)
	}

	return buf.String(), warnings, nil
}

// annotateUnset appends a trailing comment block listing peripheral
// fields left at their zero value, so a reviewer scanning the formatted
// output can see at a glance which attributions were never set rather
// than having to diff against a blank record.
func annotateUnset(buf *strings.Builder, rec *clbcfg.Record) {
	type field struct {
		name string
		val  string
	}
	fields := []field{
		{"TMR0_IN", rec.Peripherals.Timer0In},
		{"TMR1_IN", rec.Peripherals.Timer1In},
		{"TMR1_GATE", rec.Peripherals.Timer1Gate},
		{"TMR2_IN", rec.Peripherals.Timer2In},
		{"TMR2_RST", rec.Peripherals.Timer2Reset},
		{"CCP1_IN", rec.Peripherals.CCP1In},
		{"CCP2_IN", rec.Peripherals.CCP2In},
		{"ADC_IN", rec.Peripherals.ADCIn},
	}

	var unset []string
	for _, f := range fields {
		if f.val == "" {
			unset = append(unset, f.name)
		}
	}
	if len(unset) == 0 {
		return
	}
	buf.WriteString("# unset: ")
	buf.WriteString(strings.Join(unset, ", "))
	buf.WriteString("\n")
}
