package server

import (
	"net/http"

	"github.com/kurobon/gitsim/internal/state"
)

type SessionRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type CommandRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Command   string `json:"command" validate:"max=4096"`
}

func (s *Server) handleInitSession(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	sess, err := s.Simulator.Open(r.Context(), "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "session created",
		"sessionId": sess.ID,
	})
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req SessionRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	view, err := s.Simulator.Reset(r.Context(), req.SessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset", "state": view})
}

func (s *Server) handleExecCommand(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req CommandRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	// Unknown or missing sessions are recreated, e.g. after a backend restart
	sess, err := s.Simulator.Open(r.Context(), req.SessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.Simulator.Execute(r.Context(), sess.ID, req.UserID, req.Command)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": sess.ID,
		"output":    res.Entry.Output,
		"outcome":   res.Outcome,
		"state":     res.View,
	})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	id := r.URL.Query().Get("sessionId")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sessionId required"})
		return
	}
	sess, err := s.Simulator.Open(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	view, err := s.Simulator.State(r.Context(), sess.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	entries, err := s.Simulator.Transcript(r.Context(), r.URL.Query().Get("sessionId"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []state.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
