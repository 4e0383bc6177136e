// Package simulator ties sessions, the git command engine and the progress
// tracker together. The front-ends talk to it and to nothing below it.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kurobon/gitsim/internal/git"
	_ "github.com/kurobon/gitsim/internal/git/commands" // Register commands
	"github.com/kurobon/gitsim/internal/metrics"
	"github.com/kurobon/gitsim/internal/progress"
	"github.com/kurobon/gitsim/internal/state"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrFileNotFound    = errors.New("file not found")
)

// Options tunes a Service
type Options struct {
	// XPPerCommand is awarded for every line that changed the repository
	XPPerCommand int
	// DefaultUserID is credited when a caller passes no user
	DefaultUserID string
	// Env overrides hash generation. Nil uses random hashes.
	Env *git.Env
}

// Result is what a submitted line produced
type Result struct {
	Entry   state.Entry `json:"entry"`
	Outcome git.Outcome `json:"outcome"`
	View    state.View  `json:"state"`
}

type Service struct {
	sessions *state.SessionManager
	tracker  *progress.Tracker
	opts     Options
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// New builds a Service. tracker and m may be nil.
func New(sessions *state.SessionManager, tracker *progress.Tracker, opts Options, logger *zap.Logger, m *metrics.Metrics) *Service {
	if sessions == nil {
		sessions = state.NewSessionManager()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Env == nil {
		opts.Env = git.DefaultEnv()
	}
	return &Service{
		sessions: sessions,
		tracker:  tracker,
		opts:     opts,
		logger:   logger,
		metrics:  m,
	}
}

// Tracker returns the progress tracker, nil when progress is disabled
func (s *Service) Tracker() *progress.Tracker {
	return s.tracker
}

// Open returns the session for id, creating a seeded one when missing.
// An empty id generates a fresh one.
func (s *Service) Open(_ context.Context, id string) (*state.Session, error) {
	sess, created := s.sessions.GetOrCreate(id)
	if created {
		s.logger.Info("session created", zap.String("session", sess.ID))
		s.metrics.SetSessionsActive(s.sessions.Count())
	}
	return sess, nil
}

// Close drops a session
func (s *Service) Close(_ context.Context, id string) error {
	if !s.sessions.DeleteSession(id) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.logger.Info("session closed", zap.String("session", id))
	s.metrics.SetSessionsActive(s.sessions.Count())
	return nil
}

func (s *Service) session(id string) (*state.Session, error) {
	sess, ok := s.sessions.GetSession(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Execute runs one input line in the session. Whatever the line does, the
// output text is the answer; a returned error only means the session is
// unknown.
func (s *Service) Execute(ctx context.Context, sessionID, userID, input string) (Result, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Result{}, err
	}

	if strings.TrimSpace(input) == "" {
		return Result{Outcome: git.OutcomeIgnored, View: state.Snapshot(sess.Repository())}, nil
	}

	var outcome git.Outcome
	_, next, entry := sess.Apply(input, func(cur state.Repository) (state.Repository, string, bool) {
		var out string
		var repo state.Repository
		repo, out, outcome = git.Interpret(s.opts.Env, cur, input)
		return repo, out, outcome != git.OutcomeIgnored
	})

	label := subcommandLabel(input)
	s.metrics.CommandExecuted(label, outcome.String())
	s.logger.Debug("command executed",
		zap.String("session", sessionID),
		zap.String("subcommand", label),
		zap.Stringer("outcome", outcome),
	)

	if outcome == git.OutcomeApplied {
		s.award(ctx, userID, s.opts.XPPerCommand)
	}

	return Result{Entry: entry, Outcome: outcome, View: state.Snapshot(next)}, nil
}

func subcommandLabel(input string) string {
	inv := git.ParseCommand(input)
	if !inv.IsGit() {
		return "none"
	}
	return inv.Subcommand.String()
}

// award credits XP. Store failures are logged and counted only: the
// command already happened.
func (s *Service) award(ctx context.Context, userID string, xp int) {
	if s.tracker == nil || xp <= 0 {
		return
	}
	if userID == "" {
		userID = s.opts.DefaultUserID
	}
	if userID == "" {
		return
	}
	if _, err := s.tracker.AddXP(ctx, userID, xp); err != nil {
		s.metrics.ProgressError()
		s.logger.Warn("failed to award xp", zap.String("user", userID), zap.Error(err))
	}
}

// Reset restores the seed repository and clears the transcript
func (s *Service) Reset(_ context.Context, id string) (state.View, error) {
	sess, err := s.session(id)
	if err != nil {
		return state.View{}, err
	}
	sess.Reset()
	s.logger.Info("session reset", zap.String("session", id))
	return state.Snapshot(sess.Repository()), nil
}

// AddTestFile creates the next file<N>.txt as untracked
func (s *Service) AddTestFile(_ context.Context, id string) (state.FileEntry, state.View, error) {
	sess, err := s.session(id)
	if err != nil {
		return state.FileEntry{}, state.View{}, err
	}
	var entry state.FileEntry
	repo := sess.Update(func(cur state.Repository) state.Repository {
		next, f := cur.AddTestFile()
		entry = f
		return next
	})
	return entry, state.Snapshot(repo), nil
}

// AddFile creates an untracked file with the given name. A taken name
// yields state.ErrFileExists.
func (s *Service) AddFile(_ context.Context, id, name string) (state.FileEntry, state.View, error) {
	sess, err := s.session(id)
	if err != nil {
		return state.FileEntry{}, state.View{}, err
	}
	var addErr error
	repo := sess.Update(func(cur state.Repository) state.Repository {
		next, err := cur.AddFile(name)
		addErr = err
		return next
	})
	if addErr != nil {
		return state.FileEntry{}, state.Snapshot(repo), addErr
	}
	entry, _ := repo.File(strings.TrimSpace(name))
	return entry, state.Snapshot(repo), nil
}

// ModifyFile marks a committed file as modified. Files in any other status
// are left alone.
func (s *Service) ModifyFile(_ context.Context, id, name string) (state.View, error) {
	sess, err := s.session(id)
	if err != nil {
		return state.View{}, err
	}
	if _, ok := sess.Repository().File(name); !ok {
		return state.Snapshot(sess.Repository()), fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	repo := sess.Update(func(cur state.Repository) state.Repository {
		return cur.ModifyFile(name)
	})
	return state.Snapshot(repo), nil
}

// State returns the projection the panels render
func (s *Service) State(_ context.Context, id string) (state.View, error) {
	sess, err := s.session(id)
	if err != nil {
		return state.View{}, err
	}
	return state.Snapshot(sess.Repository()), nil
}

// Repository returns the raw repository value of a session
func (s *Service) Repository(_ context.Context, id string) (state.Repository, error) {
	sess, err := s.session(id)
	if err != nil {
		return state.Repository{}, err
	}
	return sess.Repository(), nil
}

func (s *Service) Transcript(_ context.Context, id string) ([]state.Entry, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return sess.Transcript(), nil
}
