package server

import (
	"net/http"

	"github.com/kurobon/gitsim/internal/state"
)

type AddFileRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	// Name is optional; without it the next file<N>.txt is created
	Name string `json:"name" validate:"omitempty,max=255"`
}

type ModifyFileRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Name      string `json:"name" validate:"required,max=255"`
}

func (s *Server) handleAddFile(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req AddFileRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var err error
	resp := struct {
		File  state.FileEntry `json:"file"`
		State state.View      `json:"state"`
	}{}
	if req.Name == "" {
		resp.File, resp.State, err = s.Simulator.AddTestFile(r.Context(), req.SessionID)
	} else {
		resp.File, resp.State, err = s.Simulator.AddFile(r.Context(), req.SessionID, req.Name)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleModifyFile(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req ModifyFileRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	view, err := s.Simulator.ModifyFile(r.Context(), req.SessionID, req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": view})
}
