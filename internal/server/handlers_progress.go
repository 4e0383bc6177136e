package server

import (
	"errors"
	"net/http"

	"github.com/kurobon/gitsim/internal/progress"
)

var errProgressDisabled = errors.New("progress tracking disabled")

type ProgressUpdateRequest struct {
	UserID string `json:"userId" validate:"required"`
	progress.Patch
}

type LessonRequest struct {
	UserID   string `json:"userId" validate:"required"`
	LessonID string `json:"lessonId" validate:"required"`
}

type XPRequest struct {
	UserID string `json:"userId" validate:"required"`
	Amount int    `json:"amount" validate:"required"`
}

type BadgeRequest struct {
	UserID  string `json:"userId" validate:"required"`
	BadgeID string `json:"badgeId" validate:"required"`
}

func (s *Server) tracker() (*progress.Tracker, error) {
	t := s.Simulator.Tracker()
	if t == nil {
		return nil, errProgressDisabled
	}
	return t, nil
}

// handleProgress serves GET ?userId= and POST partial updates
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	tracker, err := s.tracker()
	if err != nil {
		s.writeError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := tracker.Get(r.Context(), r.URL.Query().Get("userId"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPost:
		var req ProgressUpdateRequest
		if err := s.decode(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		p, err := tracker.Update(r.Context(), req.UserID, req.Patch)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	}
}

func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	tracker, err := s.tracker()
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req LessonRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	p, err := tracker.CompleteLesson(r.Context(), req.UserID, req.LessonID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAddXP(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	tracker, err := s.tracker()
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req XPRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	p, err := tracker.AddXP(r.Context(), req.UserID, req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUnlockBadge(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	tracker, err := s.tracker()
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req BadgeRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	p, err := tracker.UnlockBadge(r.Context(), req.UserID, req.BadgeID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
