package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/clbtoolchain/clbfab/bitstream"
	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/fasm"
	"github.com/clbtoolchain/clbfab/serialize"
	"github.com/clbtoolchain/clbfab/tools"
)

// CompilerService wraps a single decoded configuration record and the
// analysis passes that operate on it — the piece of domain logic each
// API session drives. It is not
// safe for concurrent use; callers serialize access per session.
type CompilerService struct {
	record *clbcfg.Record
	state  SessionState
	linter *tools.Linter
}

// NewCompilerService returns a service with no source loaded yet.
func NewCompilerService() *CompilerService {
	return &CompilerService{
		state:  StateEmpty,
		linter: tools.NewLinter(&tools.LintOptions{CheckUnreachable: true}),
	}
}

// LoadSource parses FASM text and replaces the service's current record.
// Parse warnings are non-fatal and returned alongside the result; a parse
// error leaves the previous record (if any) untouched and sets the
// service's state to StateError.
func (c *CompilerService) LoadSource(src string, strict bool) LoadResult {
	rec, warnings, err := fasm.Parse(strings.NewReader(src), fasm.Options{Strict: strict})
	if err != nil {
		c.state = StateError
		return LoadResult{State: StateError, Warnings: warnings, ParseFail: err, LoadedAt: time.Now()}
	}

	c.record = rec
	c.state = StateLoaded
	return LoadResult{State: StateLoaded, Warnings: warnings, LoadedAt: time.Now()}
}

// State returns the service's current session state.
func (c *CompilerService) State() SessionState {
	return c.state
}

// Record returns the loaded configuration record, or nil if none has
// been loaded.
func (c *CompilerService) Record() *clbcfg.Record {
	return c.record
}

// Format renders the loaded record back to canonical FASM text.
func (c *CompilerService) Format(opts *tools.FormatOptions) (string, error) {
	if c.record == nil {
		return "", fmt.Errorf("service: no source loaded")
	}
	var buf strings.Builder
	if err := fasm.Write(&buf, c.record); err != nil {
		return "", err
	}
	if opts == nil {
		opts = tools.DefaultFormatOptions()
	}
	if !opts.AnnotateUnset {
		return buf.String(), nil
	}
	out, _, err := tools.Format(buf.String(), opts)
	return out, err
}

// Lint runs structural checks against the loaded record.
func (c *CompilerService) Lint() ([]*tools.LintIssue, error) {
	if c.record == nil {
		return nil, fmt.Errorf("service: no source loaded")
	}
	return c.linter.LintRecord(c.record), nil
}

// XRef renders a signal cross-reference report for the loaded record.
func (c *CompilerService) XRef() (string, error) {
	if c.record == nil {
		return "", fmt.Errorf("service: no source loaded")
	}
	return tools.GenerateXRef(c.record), nil
}

// BLEs returns a compact summary of every logic element in the loaded
// record, for list views that don't need the full BLECfg.
func (c *CompilerService) BLEs() ([]BLESummary, error) {
	if c.record == nil {
		return nil, fmt.Errorf("service: no source loaded")
	}
	out := make([]BLESummary, len(c.record.BLEs))
	for i := range c.record.BLEs {
		out[i] = BLESummary{
			Index:    i,
			Equation: c.record.BLEs[i].EquationString(),
			Flop:     c.record.BLEs[i].Flop.String(),
		}
	}
	return out, nil
}

// EncodeJSON packs the loaded record into a bitstream and renders it as
// the JSON wire format.
func (c *CompilerService) EncodeJSON() (string, error) {
	if c.record == nil {
		return "", fmt.Errorf("service: no source loaded")
	}
	bits, err := bitstream.Encode(c.record)
	if err != nil {
		return "", fmt.Errorf("encoding bitstream: %w", err)
	}
	var buf strings.Builder
	if err := serialize.WriteJSON(&buf, bits); err != nil {
		return "", fmt.Errorf("writing JSON: %w", err)
	}
	return buf.String(), nil
}

// EncodeAsm packs the loaded record into a bitstream and renders it as
// an assembly-source data block.
func (c *CompilerService) EncodeAsm(opts serialize.AsmOptions) (string, error) {
	if c.record == nil {
		return "", fmt.Errorf("service: no source loaded")
	}
	bits, err := bitstream.Encode(c.record)
	if err != nil {
		return "", fmt.Errorf("encoding bitstream: %w", err)
	}
	var buf strings.Builder
	if err := serialize.WriteAsm(&buf, bits, opts); err != nil {
		return "", fmt.Errorf("writing assembly: %w", err)
	}
	return buf.String(), nil
}

// DecodeJSON replaces the loaded record by decoding a bitstream JSON
// document, the inverse of EncodeJSON.
func (c *CompilerService) DecodeJSON(src string) error {
	bits, err := serialize.ReadJSON(strings.NewReader(src))
	if err != nil {
		return fmt.Errorf("reading bitstream JSON: %w", err)
	}
	rec, err := bitstream.Decode(bits)
	if err != nil {
		return fmt.Errorf("decoding bitstream: %w", err)
	}
	c.record = rec
	c.state = StateLoaded
	return nil
}
