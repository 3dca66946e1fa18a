package api

import (
	"time"

	"github.com/clbtoolchain/clbfab/service"
	"github.com/clbtoolchain/clbfab/tools"
)

// SessionCreateRequest represents a request to create a new session.
// Source is optional; when present the session loads it immediately,
// the same as a follow-up call to the source endpoint.
type SessionCreateRequest struct {
	Source string `json:"source,omitempty"`
	Strict bool   `json:"strict,omitempty"`
}

// SessionCreateResponse represents the response from creating a session.
type SessionCreateResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStatusResponse represents the current status of a session.
type SessionStatusResponse struct {
	SessionID   string                     `json:"sessionId"`
	State       string                     `json:"state"`
	Diagnostics service.DiagnosticsSummary `json:"diagnostics"`
}

// SourceRequest represents a request to load FASM source into a session.
type SourceRequest struct {
	Source string `json:"source"`
	Strict bool   `json:"strict,omitempty"`
}

// SourceResponse represents the outcome of loading FASM source.
type SourceResponse struct {
	Success  bool     `json:"success"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// BLEListResponse lists every logic element in the loaded record.
type BLEListResponse struct {
	BLEs []service.BLESummary `json:"bles"`
}

// LintResponse is the rendered output of a lint pass.
type LintResponse struct {
	Issues []LintIssueDTO `json:"issues"`
}

// LintIssueDTO is the wire representation of a tools.LintIssue.
type LintIssueDTO struct {
	Level   string `json:"level"`
	BLE     int    `json:"ble"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ToLintIssueDTO converts a tools.LintIssue to its wire form.
func ToLintIssueDTO(iss *tools.LintIssue) LintIssueDTO {
	return LintIssueDTO{
		Level:   iss.Level.String(),
		BLE:     iss.BLE,
		Message: iss.Message,
		Code:    iss.Code,
	}
}

// XRefResponse is the rendered cross-reference report.
type XRefResponse struct {
	Report string `json:"report"`
}

// FormatRequest represents a request to reformat FASM source.
type FormatRequest struct {
	AnnotateUnset bool `json:"annotateUnset,omitempty"`
}

// FormatResponse carries the reformatted source.
type FormatResponse struct {
	Source string `json:"source"`
}

// CompileRequest represents a request to pack the loaded record into a
// bitstream.
type CompileRequest struct {
	Format       string   `json:"format"` // "json" or "asm"
	Psect        string   `json:"psect,omitempty"`
	DeviceMacros []string `json:"deviceMacros,omitempty"`
}

// CompileResponse carries the packed bitstream in the requested format.
type CompileResponse struct {
	Format string `json:"format"`
	Output string `json:"output"`
}

// DecompileRequest represents a request to unpack a bitstream JSON
// document into FASM source.
type DecompileRequest struct {
	JSON string `json:"json"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse represents a simple success response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Event represents a WebSocket event envelope.
type Event struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}
