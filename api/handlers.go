package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/clbtoolchain/clbfab/serialize"
	"github.com/clbtoolchain/clbfab/service"
	"github.com/clbtoolchain/clbfab/tools"
)

// handleCreateSession handles POST /api/v1/session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, loadResult, err := s.sessions.CreateSession(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create session: %v", err))
		return
	}

	if loadResult != nil {
		s.broadcaster.BroadcastSource(session.ID, map[string]interface{}{
			"state": string(loadResult.State),
		})
	}

	writeJSON(w, http.StatusCreated, SessionCreateResponse{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
	})
}

// handleListSessions handles GET /api/v1/session
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.sessions.ListSessions()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": ids,
		"count":    len(ids),
	})
}

// handleGetSessionStatus handles GET /api/v1/session/{id}
func (s *Server) handleGetSessionStatus(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var diagnostics service.DiagnosticsSummary
	if issues, err := session.Service.Lint(); err == nil {
		diagnostics = service.Summarize(issues)
	}

	writeJSON(w, http.StatusOK, SessionStatusResponse{
		SessionID:   sessionID,
		State:       string(session.Service.State()),
		Diagnostics: diagnostics,
	})
}

// handleDestroySession handles DELETE /api/v1/session/{id}
func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := s.sessions.DestroySession(sessionID); err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Session destroyed"})
}

// handleSource handles GET/POST /api/v1/session/{id}/source
func (s *Server) handleSource(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req SourceRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		result := session.Service.LoadSource(req.Source, req.Strict)

		resp := SourceResponse{Success: result.ParseFail == nil}
		for _, w := range result.Warnings {
			resp.Warnings = append(resp.Warnings, w.Error())
		}
		if result.ParseFail != nil {
			resp.Error = result.ParseFail.Error()
		}

		s.broadcaster.BroadcastSource(sessionID, map[string]interface{}{
			"state": string(result.State),
		})

		status := http.StatusOK
		if result.ParseFail != nil {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, resp)

	case http.MethodGet:
		out, err := session.Service.Format(nil)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, FormatResponse{Source: out})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleFormat handles POST /api/v1/session/{id}/format
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req FormatRequest
	if r.Body != nil {
		_ = readJSON(r, &req)
	}

	out, err := session.Service.Format(&tools.FormatOptions{AnnotateUnset: req.AnnotateUnset})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, FormatResponse{Source: out})
}

// handleLint handles GET /api/v1/session/{id}/lint
func (s *Server) handleLint(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	issues, err := session.Service.Lint()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dtos := make([]LintIssueDTO, len(issues))
	for i, iss := range issues {
		dtos[i] = ToLintIssueDTO(iss)
	}

	s.broadcaster.BroadcastDiagnostics(sessionID, map[string]interface{}{
		"issueCount": len(dtos),
	})

	writeJSON(w, http.StatusOK, LintResponse{Issues: dtos})
}

// handleXRef handles GET /api/v1/session/{id}/xref
func (s *Server) handleXRef(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	report, err := session.Service.XRef()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, XRefResponse{Report: report})
}

// handleListBLEs handles GET /api/v1/session/{id}/bles
func (s *Server) handleListBLEs(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	bles, err := session.Service.BLEs()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, BLEListResponse{BLEs: bles})
}

// handleCompile handles POST /api/v1/session/{id}/compile
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req CompileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var out string
	switch req.Format {
	case "", "json":
		out, err = session.Service.EncodeJSON()
	case "asm":
		out, err = session.Service.EncodeAsm(serialize.AsmOptions{Psect: req.Psect, DeviceMacros: req.DeviceMacros})
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", req.Format))
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.broadcaster.BroadcastCompile(sessionID, map[string]interface{}{"format": req.Format})
	writeJSON(w, http.StatusOK, CompileResponse{Format: req.Format, Output: out})
}

// handleDecompile handles POST /api/v1/session/{id}/decompile
func (s *Server) handleDecompile(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req DecompileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := session.Service.DecodeJSON(req.JSON); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := session.Service.Format(nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.broadcaster.BroadcastSource(sessionID, map[string]interface{}{"state": "loaded"})
	writeJSON(w, http.StatusOK, FormatResponse{Source: out})
}
