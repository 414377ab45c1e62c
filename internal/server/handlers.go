package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
)

// ValidationResponse is the body of /v1/validate and of decode failures.
type ValidationResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	Path  string `json:"path,omitempty"`
}

// ErrorResponse is the body of request errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDestinations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"destinations": s.svc.Destinations.Keys()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	width := s.svc.Width(defaultWidth)
	if raw := r.URL.Query().Get("width"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "width must be a non-negative integer")
			return
		}
		width = n
	}

	scene, ok := s.decode(w, r)
	if !ok {
		return
	}

	out := s.svc.Draw(r.Context(), scene, width)
	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		ctx, cancel := context.WithTimeout(r.Context(), imageTimeout)
		defer cancel()
		if err := s.svc.Images.Wait(ctx); err != nil {
			s.log.Warn().Err(err).Msg("images still loading")
		}
		out = s.svc.Draw(r.Context(), scene, width)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out+"\n")
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	scene, ok := s.decode(w, r)
	if !ok {
		return
	}
	if err := sdui.Validate(scene); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, invalid(err))
		return
	}
	writeJSON(w, http.StatusOK, ValidationResponse{Valid: true})
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	scene, ok := s.decode(w, r)
	if !ok {
		return
	}
	data, err := sdui.EncodeIndent(scene, "  ")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, invalid(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(data, '\n'))
}

// decode reads and decodes the request body, writing the error response
// itself when that fails.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*sdui.Scene, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "document too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return nil, false
	}

	scene, err := s.svc.Decode(r.Context(), data)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, invalid(err))
		return nil, false
	}
	return scene, true
}

func invalid(err error) ValidationResponse {
	return ValidationResponse{Valid: false, Error: err.Error(), Path: sduierrors.PathOf(err)}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
