package state

import (
	"fmt"
)

// FileStatus is the lifecycle position of a simulated file
type FileStatus int

const (
	StatusUntracked FileStatus = iota
	StatusModified
	StatusStaged
	StatusCommitted
)

var statusNames = map[FileStatus]string{
	StatusUntracked: "untracked",
	StatusModified:  "modified",
	StatusStaged:    "staged",
	StatusCommitted: "committed",
}

func (s FileStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("FileStatus(%d)", int(s))
}

// ParseFileStatus is the inverse of String
func ParseFileStatus(name string) (FileStatus, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown file status %q", name)
}

func (s FileStatus) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fmt.Errorf("unknown file status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *FileStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseFileStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Commit is a simulated commit record. Commits are never mutated once created.
type Commit struct {
	ID      string `json:"id"` // 1-based sequence number
	Message string `json:"message"`
	Hash    string `json:"hash"`
	Branch  string `json:"branch"` // branch the commit was recorded against
}

// FileEntry is a tracked or untracked file, unique by Name
type FileEntry struct {
	Name   string     `json:"name"`
	Status FileStatus `json:"status"`
}

// View is the read-only projection of a Repository for the front-ends
type View struct {
	CurrentBranch string       `json:"currentBranch"`
	Branches      []BranchView `json:"branches"`
	Files         []FileView   `json:"files"`
	Commits       []CommitView `json:"commits"`
	Head          string       `json:"head"`
	CommitCount   int          `json:"commitCount"`
}

type BranchView struct {
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

type FileView struct {
	Name     string     `json:"name"`
	Status   FileStatus `json:"status"`
	Editable bool       `json:"editable"` // only committed files can be "edited on disk"
}

type CommitView struct {
	ID        string `json:"id"`
	Hash      string `json:"hash"`
	ShortHash string `json:"shortHash"`
	Message   string `json:"message"`
	Branch    string `json:"branch"`
	IsHead    bool   `json:"isHead"`
}
