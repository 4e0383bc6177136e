package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kurobon/gitsim/internal/lesson"
	"github.com/kurobon/gitsim/internal/progress"
	"github.com/kurobon/gitsim/internal/simulator"
	"github.com/kurobon/gitsim/internal/state"
)

var errBadRequest = errors.New("bad request")

type Server struct {
	Simulator *simulator.Service
	Lessons   *lesson.Engine
	Mux       *http.ServeMux

	logger   *zap.Logger
	validate *validator.Validate
	gatherer prometheus.Gatherer
}

// NewServer wires the routes. lessons may be nil, which disables the
// lesson routes. gatherer backs /metrics; nil serves the default registry.
func NewServer(svc *simulator.Service, lessons *lesson.Engine, logger *zap.Logger, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		Simulator: svc,
		Lessons:   lessons,
		Mux:       http.NewServeMux(),
		logger:    logger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		gatherer:  gatherer,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Mux.HandleFunc("/ping", s.handlePing)
	s.Mux.HandleFunc("/api/session/init", s.handleInitSession)
	s.Mux.HandleFunc("/api/session/reset", s.handleResetSession)
	s.Mux.HandleFunc("/api/command", s.handleExecCommand)
	s.Mux.HandleFunc("/api/state", s.handleGetState)
	s.Mux.HandleFunc("/api/transcript", s.handleGetTranscript)
	s.Mux.HandleFunc("/api/files", s.handleAddFile)
	s.Mux.HandleFunc("/api/files/modify", s.handleModifyFile)
	s.Mux.HandleFunc("/api/progress", s.handleProgress)
	s.Mux.HandleFunc("/api/progress/lessons", s.handleCompleteLesson)
	s.Mux.HandleFunc("/api/progress/xp", s.handleAddXP)
	s.Mux.HandleFunc("/api/progress/badges", s.handleUnlockBadge)
	s.Mux.HandleFunc("/api/lessons", s.handleListLessons)
	s.Mux.HandleFunc("/api/lessons/start", s.handleStartLesson)
	s.Mux.HandleFunc("/api/lessons/verify", s.handleVerifyLesson)
	s.Mux.HandleFunc("/api/ws", s.handleWebSocket)
	s.Mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.Mux.ServeHTTP(w, r)
	s.logger.Debug("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "pong",
		"system":  "gitsim",
	})
}

// allow rejects requests with any other method
func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return false
	}
	return true
}

// decode reads the JSON body into dst and validates its tags
func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, progress.ErrInvalidUser):
		return http.StatusBadRequest
	case errors.Is(err, simulator.ErrSessionNotFound), errors.Is(err, simulator.ErrFileNotFound),
		errors.Is(err, lesson.ErrSessionNotFound), errors.Is(err, lesson.ErrLessonNotFound):
		return http.StatusNotFound
	case errors.Is(err, state.ErrFileExists):
		return http.StatusConflict
	case errors.Is(err, errProgressDisabled), errors.Is(err, errLessonsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
