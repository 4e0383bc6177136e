package server

import (
	"errors"
	"net/http"

	"github.com/kurobon/gitsim/internal/lesson"
)

var errLessonsDisabled = errors.New("lessons disabled")

type StartLessonRequest struct {
	LessonID string `json:"lessonId" validate:"required"`
}

type VerifyLessonRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	LessonID  string `json:"lessonId" validate:"required"`
	UserID    string `json:"userId"`
}

// handleListLessons lists lessons, localized by ?lang= when available
func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	if s.Lessons == nil {
		s.writeError(w, errLessonsDisabled)
		return
	}
	lessons, err := s.Lessons.Loader.ListLessons()
	if err != nil {
		s.writeError(w, err)
		return
	}

	lang := r.URL.Query().Get("lang")
	out := make([]lesson.Lesson, 0, len(lessons))
	for _, le := range lessons {
		out = append(out, le.Localized(lang))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStartLesson(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if s.Lessons == nil {
		s.writeError(w, errLessonsDisabled)
		return
	}
	var req StartLessonRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sessionID, err := s.Lessons.StartLesson(r.Context(), req.LessonID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	view, err := s.Simulator.State(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "lesson started",
		"sessionId": sessionID,
		"state":     view,
	})
}

func (s *Server) handleVerifyLesson(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if s.Lessons == nil {
		s.writeError(w, errLessonsDisabled)
		return
	}
	var req VerifyLessonRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.Lessons.VerifyLesson(r.Context(), req.SessionID, req.LessonID, req.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
