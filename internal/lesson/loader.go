package lesson

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lessons/*.yaml
var builtin embed.FS

// Loader reads lessons from a filesystem of <id>.yaml files.
type Loader struct {
	fsys fs.FS
}

func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Builtin loads the lessons shipped with the binary
func Builtin() *Loader {
	sub, err := fs.Sub(builtin, "lessons")
	if err != nil {
		panic(err)
	}
	return NewLoader(sub)
}

// LoadLesson loads a single lesson by ID (filename without extension).
func (l *Loader) LoadLesson(id string) (*Lesson, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrLessonNotFound, id)
	}
	data, err := fs.ReadFile(l.fsys, id+".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLessonNotFound, id, err)
	}

	var le Lesson
	if err := yaml.Unmarshal(data, &le); err != nil {
		return nil, fmt.Errorf("failed to parse lesson yaml: %w", err)
	}

	// Ensure ID matches filename if not set
	if le.ID == "" {
		le.ID = id
	}
	return &le, nil
}

// ListLessons returns every lesson ordered by difficulty then ID. Files
// that fail to parse are skipped.
func (l *Loader) ListLessons() ([]*Lesson, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, err
	}

	var lessons []*Lesson
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		le, err := l.LoadLesson(strings.TrimSuffix(e.Name(), ".yaml"))
		if err != nil {
			continue
		}
		lessons = append(lessons, le)
	}

	sort.SliceStable(lessons, func(i, j int) bool {
		if lessons[i].Difficulty.Stars != lessons[j].Difficulty.Stars {
			return lessons[i].Difficulty.Stars < lessons[j].Difficulty.Stars
		}
		return lessons[i].ID < lessons[j].ID
	})
	return lessons, nil
}
