package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

const (
	DefaultBranch = "main"
	SeedHash      = "a1b2c3d"
	SeedMessage   = "Initial commit"
	SeedFile      = "README.md"
)

var (
	ErrInvariant  = errors.New("repository invariant violated")
	ErrFileExists = errors.New("file already exists")
)

// Repository is the whole simulated repository. It is a value: every
// transition returns a new Repository and leaves the receiver untouched.
//
// Head is a single pointer for the whole repository, not one per branch.
// Switching branches changes what log shows, never what Head refers to.
type Repository struct {
	CurrentBranch string      `json:"currentBranch"`
	Branches      []string    `json:"branches"`
	Commits       []Commit    `json:"commits"`
	Files         []FileEntry `json:"files"`
	Head          string      `json:"head"`
}

// SeedCommit is the commit every fresh repository starts with
func SeedCommit() Commit {
	return Commit{ID: "1", Message: SeedMessage, Hash: SeedHash, Branch: DefaultBranch}
}

// Seed returns the initial repository of a simulator session
func Seed() Repository {
	return Repository{
		CurrentBranch: DefaultBranch,
		Branches:      []string{DefaultBranch},
		Commits:       []Commit{SeedCommit()},
		Files:         []FileEntry{{Name: SeedFile, Status: StatusCommitted}},
		Head:          SeedHash,
	}
}

func (r Repository) HasBranch(name string) bool {
	return slices.Contains(r.Branches, name)
}

func (r Repository) HasCommitHash(hash string) bool {
	return lo.ContainsBy(r.Commits, func(c Commit) bool { return c.Hash == hash })
}

func (r Repository) File(name string) (FileEntry, bool) {
	return lo.Find(r.Files, func(f FileEntry) bool { return f.Name == name })
}

// FilesWithStatus returns the files in any of the given statuses, in insertion order
func (r Repository) FilesWithStatus(statuses ...FileStatus) []FileEntry {
	return lo.Filter(r.Files, func(f FileEntry, _ int) bool {
		return slices.Contains(statuses, f.Status)
	})
}

// CommitsOnBranch returns the commits recorded against branch, newest first
func (r Repository) CommitsOnBranch(branch string) []Commit {
	commits := lo.Filter(r.Commits, func(c Commit, _ int) bool { return c.Branch == branch })
	slices.Reverse(commits)
	return commits
}

func (r Repository) HeadCommit() (Commit, bool) {
	if r.Head == "" {
		return Commit{}, false
	}
	return lo.Find(r.Commits, func(c Commit) bool { return c.Hash == r.Head })
}

// Equal reports whether both values describe the same repository
func (r Repository) Equal(other Repository) bool {
	return r.CurrentBranch == other.CurrentBranch &&
		r.Head == other.Head &&
		slices.Equal(r.Branches, other.Branches) &&
		slices.Equal(r.Commits, other.Commits) &&
		slices.Equal(r.Files, other.Files)
}

func (r Repository) clone() Repository {
	return Repository{
		CurrentBranch: r.CurrentBranch,
		Branches:      slices.Clone(r.Branches),
		Commits:       slices.Clone(r.Commits),
		Files:         slices.Clone(r.Files),
		Head:          r.Head,
	}
}

// WithBranch appends a branch. Existing names are left alone.
func (r Repository) WithBranch(name string) Repository {
	if r.HasBranch(name) {
		return r
	}
	next := r.clone()
	next.Branches = append(next.Branches, name)
	return next
}

// WithCurrentBranch checks out an existing branch
func (r Repository) WithCurrentBranch(name string) Repository {
	if !r.HasBranch(name) {
		return r
	}
	next := r.clone()
	next.CurrentBranch = name
	return next
}

// WithCommit appends c and moves Head to it
func (r Repository) WithCommit(c Commit) Repository {
	next := r.clone()
	next.Commits = append(next.Commits, c)
	next.Head = c.Hash
	return next
}

// WithFileStatus sets the status of one file. Unknown names are ignored.
func (r Repository) WithFileStatus(name string, status FileStatus) Repository {
	idx := slices.IndexFunc(r.Files, func(f FileEntry) bool { return f.Name == name })
	if idx < 0 || r.Files[idx].Status == status {
		return r
	}
	next := r.clone()
	next.Files[idx].Status = status
	return next
}

// WithStatusTransition moves every file in one of from to status to,
// returning the new value and how many files moved.
func (r Repository) WithStatusTransition(from []FileStatus, to FileStatus) (Repository, int) {
	moved := 0
	next := r.clone()
	for i, f := range next.Files {
		if slices.Contains(from, f.Status) && f.Status != to {
			next.Files[i].Status = to
			moved++
		}
	}
	if moved == 0 {
		return r, 0
	}
	return next, moved
}

// WithFile appends a file entry, refusing duplicate names
func (r Repository) WithFile(entry FileEntry) (Repository, error) {
	if _, exists := r.File(entry.Name); exists {
		return r, fmt.Errorf("%w: %s", ErrFileExists, entry.Name)
	}
	next := r.clone()
	next.Files = append(next.Files, entry)
	return next, nil
}

// Check validates the repository invariants and reports the first violation
func (r Repository) Check() error {
	if len(r.Branches) == 0 {
		return fmt.Errorf("%w: no branches", ErrInvariant)
	}
	if !r.HasBranch(DefaultBranch) {
		return fmt.Errorf("%w: branch %q missing", ErrInvariant, DefaultBranch)
	}
	if dups := lo.FindDuplicates(r.Branches); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate branches %v", ErrInvariant, dups)
	}
	if !r.HasBranch(r.CurrentBranch) {
		return fmt.Errorf("%w: current branch %q is not a branch", ErrInvariant, r.CurrentBranch)
	}

	names := lo.Map(r.Files, func(f FileEntry, _ int) string { return f.Name })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate files %v", ErrInvariant, dups)
	}

	for _, c := range r.Commits {
		if !r.HasBranch(c.Branch) {
			return fmt.Errorf("%w: commit %s on unknown branch %q", ErrInvariant, c.Hash, c.Branch)
		}
	}
	hashes := lo.Map(r.Commits, func(c Commit, _ int) string { return c.Hash })
	if dups := lo.FindDuplicates(hashes); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate commit hashes %v", ErrInvariant, dups)
	}

	switch {
	case len(r.Commits) == 0 && r.Head != "":
		return fmt.Errorf("%w: HEAD %s set without commits", ErrInvariant, r.Head)
	case len(r.Commits) > 0 && !r.HasCommitHash(r.Head):
		return fmt.Errorf("%w: HEAD %q does not name a commit", ErrInvariant, r.Head)
	}
	return nil
}
