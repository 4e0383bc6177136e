// Package progress tracks a learner's level, XP, completed lessons and
// badges, and persists them through a pluggable Store.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	LessonXP = 50
	BadgeXP  = 100
)

var (
	ErrUnknownDriver = errors.New("unknown progress driver")
	ErrInvalidUser   = errors.New("user id required")
)

// Progress is one learner's record
type Progress struct {
	Level            int        `json:"level"`
	CompletedLessons []string   `json:"completedLessons"`
	XP               int        `json:"xp"`
	Badges           []string   `json:"badges"`
	LastActivity     *time.Time `json:"lastActivity"`
}

// Default is the record of a learner who has done nothing yet
func Default() Progress {
	return Progress{Level: 1, CompletedLessons: []string{}, Badges: []string{}}
}

// HasLesson reports whether id was completed
func (p Progress) HasLesson(id string) bool {
	return slices.Contains(p.CompletedLessons, id)
}

// HasBadge reports whether id was unlocked
func (p Progress) HasBadge(id string) bool {
	return slices.Contains(p.Badges, id)
}

func (p Progress) clone() Progress {
	out := p
	out.CompletedLessons = slices.Clone(p.CompletedLessons)
	out.Badges = slices.Clone(p.Badges)
	if out.CompletedLessons == nil {
		out.CompletedLessons = []string{}
	}
	if out.Badges == nil {
		out.Badges = []string{}
	}
	if p.LastActivity != nil {
		t := *p.LastActivity
		out.LastActivity = &t
	}
	return out
}

// decode fills missing fields from Default the way a partial stored record
// would be merged over the defaults.
func decode(data []byte) (Progress, error) {
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("failed to decode progress: %w", err)
	}
	return p.clone(), nil
}

func encode(p Progress) ([]byte, error) {
	data, err := json.Marshal(p.clone())
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress: %w", err)
	}
	return data, nil
}

// Store persists progress records keyed by user id. Loading an unknown
// user yields Default and no error.
type Store interface {
	Load(ctx context.Context, userID string) (Progress, error)
	Save(ctx context.Context, userID string, p Progress) error
	Close() error
}
