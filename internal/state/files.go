package state

import (
	"fmt"
	"strings"
)

// The helpers below model "the user edited something on disk". They are
// driven by the front-ends only; no typed git command reaches them.

// AddFile adds an untracked file
func (r Repository) AddFile(name string) (Repository, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return r, fmt.Errorf("file name required")
	}
	return r.WithFile(FileEntry{Name: name, Status: StatusUntracked})
}

// AddTestFile adds an untracked file named file<N>.txt, where N starts at
// len(Files)+1 and is bumped until the name is free.
func (r Repository) AddTestFile() (Repository, FileEntry) {
	for n := len(r.Files) + 1; ; n++ {
		name := fmt.Sprintf("file%d.txt", n)
		if _, exists := r.File(name); exists {
			continue
		}
		entry := FileEntry{Name: name, Status: StatusUntracked}
		next, _ := r.WithFile(entry)
		return next, entry
	}
}

// ModifyFile marks a committed file as modified. Any other status is left as is.
func (r Repository) ModifyFile(name string) Repository {
	f, ok := r.File(name)
	if !ok || f.Status != StatusCommitted {
		return r
	}
	return r.WithFileStatus(name, StatusModified)
}

// NextEditable returns the first committed file after the one named after,
// wrapping around. It is what "edit the next file" shortcuts cycle through.
func (r Repository) NextEditable(after string) (FileEntry, bool) {
	start := 0
	for i, f := range r.Files {
		if f.Name == after {
			start = i + 1
			break
		}
	}
	for i := 0; i < len(r.Files); i++ {
		f := r.Files[(start+i)%len(r.Files)]
		if f.Status == StatusCommitted {
			return f, true
		}
	}
	return FileEntry{}, false
}
