package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nomadflamingo/gymlog/internal/ingest/gymlog"
)

// parseErrorResponse describes a rejected log so clients can point at the
// offending line.
type parseErrorResponse struct {
	Error    string   `json:"error"`
	Kind     string   `json:"kind"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Expected []string `json:"expected,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	result, err := s.gymlog.Ingest(r.Context(), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "exercise log too large"})
			return
		}

		kind := gymlog.ErrorKind(err)
		if kind == "" {
			s.log.Error("parse request failed", "request_id", RequestIDFromContext(r.Context()), "error", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		resp := parseErrorResponse{Error: err.Error(), Kind: kind}
		resp.Line, resp.Column, _ = gymlog.Position(err)
		var syntaxErr *gymlog.SyntaxError
		if errors.As(err, &syntaxErr) {
			resp.Expected = syntaxErr.Expected
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
