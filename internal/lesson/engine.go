// Package lesson runs guided exercises: it prepares a session from a
// lesson's setup lines and checks the learner's repository against the
// lesson's validation rules.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/progress"
	"github.com/kurobon/gitsim/internal/state"
)

var (
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrSetup           = errors.New("lesson setup failed")
)

type Engine struct {
	Loader   *Loader
	Sessions *state.SessionManager

	tracker *progress.Tracker
	env     *git.Env
	logger  *zap.Logger
}

// NewEngine builds an engine over the session manager the simulator uses,
// so lesson sessions accept commands like any other. tracker may be nil.
func NewEngine(loader *Loader, sessions *state.SessionManager, tracker *progress.Tracker, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Loader:   loader,
		Sessions: sessions,
		tracker:  tracker,
		env:      git.DefaultEnv(),
		logger:   logger,
	}
}

// StartLesson creates a fresh session and runs the lesson's setup in it.
// It returns the new session ID.
func (e *Engine) StartLesson(_ context.Context, lessonID string) (string, error) {
	le, err := e.Loader.LoadLesson(lessonID)
	if err != nil {
		return "", err
	}

	// Each start gets its own session so two learners never share one
	sessionID := fmt.Sprintf("lesson-%s-%s", le.ID, uuid.NewString()[:8])
	sess, _ := e.Sessions.GetOrCreate(sessionID)

	var setupErr error
	sess.Update(func(repo state.Repository) state.Repository {
		for _, line := range le.Setup {
			next, err := e.runSetup(repo, line)
			if err != nil {
				setupErr = fmt.Errorf("%w at %q: %w", ErrSetup, line, err)
				return repo
			}
			repo = next
		}
		return repo
	})
	if setupErr != nil {
		e.Sessions.DeleteSession(sessionID)
		return "", setupErr
	}

	e.logger.Info("lesson started", zap.String("lesson", le.ID), zap.String("session", sessionID))
	return sessionID, nil
}

// runSetup applies one setup line. Besides git commands it understands
// "touch [name]" and "edit <name>" for working-tree changes.
func (e *Engine) runSetup(repo state.Repository, line string) (state.Repository, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return repo, nil
	}

	switch fields[0] {
	case "touch":
		if len(fields) == 1 {
			next, _ := repo.AddTestFile()
			return next, nil
		}
		return repo.AddFile(fields[1])
	case "edit":
		if len(fields) < 2 {
			return repo, fmt.Errorf("edit needs a file name")
		}
		if _, ok := repo.File(fields[1]); !ok {
			return repo, fmt.Errorf("no file %s", fields[1])
		}
		return repo.ModifyFile(fields[1]), nil
	}

	next, output, outcome := git.Interpret(e.env, repo, line)
	if outcome == git.OutcomeRejected {
		return repo, errors.New(output)
	}
	return next, nil
}

type VerificationResult struct {
	Success  bool          `json:"success"`
	LessonID string        `json:"lessonId"`
	Progress []CheckResult `json:"progress"`
	// Awarded is set when this verification completed the lesson for the user
	Awarded bool `json:"awarded"`
}

type CheckResult struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}

// VerifyLesson evaluates every check against the session's repository.
// When all pass and userID is set the lesson is recorded as completed.
func (e *Engine) VerifyLesson(ctx context.Context, sessionID, lessonID, userID string) (*VerificationResult, error) {
	le, err := e.Loader.LoadLesson(lessonID)
	if err != nil {
		return nil, err
	}

	sess, ok := e.Sessions.GetSession(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	repo := sess.Repository()

	result := &VerificationResult{LessonID: le.ID, Success: true}
	for _, check := range le.Validation.Checks {
		passed, err := evaluate(repo, check)
		if err != nil {
			return nil, fmt.Errorf("lesson %s: %w", le.ID, err)
		}
		if check.Negate {
			passed = !passed
		}
		result.Progress = append(result.Progress, CheckResult{Description: check.Description, Passed: passed})
		if !passed {
			result.Success = false
		}
	}

	if result.Success && userID != "" && e.tracker != nil {
		before, err := e.tracker.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if _, err := e.tracker.CompleteLesson(ctx, userID, le.ID); err != nil {
			return nil, err
		}
		result.Awarded = !before.HasLesson(le.ID)
	}
	return result, nil
}

func evaluate(repo state.Repository, check Check) (bool, error) {
	switch check.Type {
	case CheckBranchExists:
		return repo.HasBranch(check.Name), nil

	case CheckCurrentBranch:
		return repo.CurrentBranch == check.Name, nil

	case CheckCommitExists:
		re, err := regexp.Compile(check.MessagePattern)
		if err != nil {
			return false, fmt.Errorf("bad message_pattern: %w", err)
		}
		for _, c := range commitsFor(repo, check.Name) {
			if re.MatchString(c.Message) {
				return true, nil
			}
		}
		return false, nil

	case CheckCommitCount:
		return len(commitsFor(repo, check.Name)) >= check.Count, nil

	case CheckFileStatus:
		want, err := state.ParseFileStatus(check.Status)
		if err != nil {
			return false, err
		}
		f, ok := repo.File(check.Path)
		return ok && f.Status == want, nil

	case CheckFileTracked:
		f, ok := repo.File(check.Path)
		return ok && f.Status != state.StatusUntracked, nil

	case CheckCleanWorkingTree:
		return len(repo.FilesWithStatus(state.StatusStaged, state.StatusModified, state.StatusUntracked)) == 0, nil

	default:
		return false, fmt.Errorf("unknown check type %q", check.Type)
	}
}

// commitsFor returns the commits of branch, or all commits when branch is empty
func commitsFor(repo state.Repository, branch string) []state.Commit {
	if branch == "" {
		return repo.Commits
	}
	return repo.CommitsOnBranch(branch)
}
