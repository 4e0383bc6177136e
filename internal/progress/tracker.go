package progress

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Patch carries the fields of an Update. Nil fields are left as they are.
type Patch struct {
	Level            *int     `json:"level,omitempty"`
	CompletedLessons []string `json:"completedLessons,omitempty"`
	XP               *int     `json:"xp,omitempty"`
	Badges           []string `json:"badges,omitempty"`
}

// Tracker applies progress changes on top of a Store. Each change is a
// load-modify-save cycle, serialised per user.
type Tracker struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTracker(store Store, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		store:  store,
		logger: logger,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (t *Tracker) lock(userID string) func() {
	t.mu.Lock()
	l, ok := t.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[userID] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Get returns the stored progress of userID
func (t *Tracker) Get(ctx context.Context, userID string) (Progress, error) {
	if strings.TrimSpace(userID) == "" {
		return Default(), ErrInvalidUser
	}
	return t.store.Load(ctx, userID)
}

// modify runs fn on the current record. fn returns false to leave the
// record untouched, in which case nothing is written.
func (t *Tracker) modify(ctx context.Context, userID string, fn func(p *Progress) bool) (Progress, error) {
	if strings.TrimSpace(userID) == "" {
		return Default(), ErrInvalidUser
	}
	unlock := t.lock(userID)
	defer unlock()

	p, err := t.store.Load(ctx, userID)
	if err != nil {
		return p, err
	}
	if !fn(&p) {
		return p, nil
	}

	now := t.now()
	p.LastActivity = &now
	if err := t.store.Save(ctx, userID, p); err != nil {
		return p, err
	}
	t.logger.Debug("progress updated",
		zap.String("user", userID),
		zap.Int("xp", p.XP),
		zap.Int("level", p.Level),
	)
	return p, nil
}

// Update overwrites the fields set in patch
func (t *Tracker) Update(ctx context.Context, userID string, patch Patch) (Progress, error) {
	return t.modify(ctx, userID, func(p *Progress) bool {
		if patch.Level != nil {
			p.Level = *patch.Level
		}
		if patch.XP != nil {
			p.XP = *patch.XP
		}
		if patch.CompletedLessons != nil {
			p.CompletedLessons = append([]string{}, patch.CompletedLessons...)
		}
		if patch.Badges != nil {
			p.Badges = append([]string{}, patch.Badges...)
		}
		return true
	})
}

// CompleteLesson records lessonID and awards LessonXP the first time only
func (t *Tracker) CompleteLesson(ctx context.Context, userID, lessonID string) (Progress, error) {
	return t.modify(ctx, userID, func(p *Progress) bool {
		if p.HasLesson(lessonID) {
			return false
		}
		p.CompletedLessons = append(p.CompletedLessons, lessonID)
		p.XP += LessonXP
		return true
	})
}

// AddXP adds amount to the XP total
func (t *Tracker) AddXP(ctx context.Context, userID string, amount int) (Progress, error) {
	return t.modify(ctx, userID, func(p *Progress) bool {
		p.XP += amount
		return true
	})
}

// UnlockBadge records badgeID and awards BadgeXP the first time only
func (t *Tracker) UnlockBadge(ctx context.Context, userID, badgeID string) (Progress, error) {
	return t.modify(ctx, userID, func(p *Progress) bool {
		if p.HasBadge(badgeID) {
			return false
		}
		p.Badges = append(p.Badges, badgeID)
		p.XP += BadgeXP
		return true
	})
}

// Close closes the underlying store
func (t *Tracker) Close() error {
	return t.store.Close()
}
