package lesson

// Lesson is a guided exercise loaded from YAML: setup lines prepare a
// repository, checks decide when the learner is done.
type Lesson struct {
	ID           string                 `yaml:"id" json:"id"`
	Title        string                 `yaml:"title" json:"title"`
	Description  string                 `yaml:"description" json:"description"`
	Difficulty   Difficulty             `yaml:"difficulty" json:"difficulty"`
	Skill        string                 `yaml:"skill" json:"skill"`
	Setup        []string               `yaml:"setup" json:"-"`      // Lines run before the learner starts
	Validation   Validation             `yaml:"validation" json:"-"` // Completion checks
	Hints        []string               `yaml:"hints" json:"hints"`
	Translations map[string]Translation `yaml:"translations" json:"-"` // Localized content
}

type Translation struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Hints       []string `yaml:"hints" json:"hints"`
}

type Difficulty struct {
	Level string `yaml:"level" json:"level"` // basic, intermediate, advanced
	Stars int    `yaml:"stars" json:"stars"` // 1-5
}

type Validation struct {
	Checks []Check `yaml:"checks"`
}

// CheckType names a predicate over the repository
type CheckType string

const (
	CheckBranchExists     CheckType = "branch_exists"      // Name
	CheckCurrentBranch    CheckType = "current_branch"     // Name
	CheckCommitExists     CheckType = "commit_exists"      // MessagePattern, optional Name as branch
	CheckCommitCount      CheckType = "commit_count"       // Count, optional Name as branch
	CheckFileStatus       CheckType = "file_status"        // Path, Status
	CheckFileTracked      CheckType = "file_tracked"       // Path
	CheckCleanWorkingTree CheckType = "clean_working_tree" // no staged, modified or untracked files
)

type Check struct {
	Type           CheckType `yaml:"type"`
	Description    string    `yaml:"description"`     // User facing description
	MessagePattern string    `yaml:"message_pattern"` // Regular expression for commit messages
	Path           string    `yaml:"path"`            // For file checks
	Status         string    `yaml:"status"`          // For file_status
	Name           string    `yaml:"name"`            // Branch name
	Count          int       `yaml:"count"`           // Minimum commits for commit_count
	Negate         bool      `yaml:"negate"`          // If true, inverts the pass condition
}

// Localized returns a copy with the title, description and hints of lang
// when a translation exists.
func (l Lesson) Localized(lang string) Lesson {
	t, ok := l.Translations[lang]
	if !ok {
		return l
	}
	if t.Title != "" {
		l.Title = t.Title
	}
	if t.Description != "" {
		l.Description = t.Description
	}
	if len(t.Hints) > 0 {
		l.Hints = t.Hints
	}
	return l
}
