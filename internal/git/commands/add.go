package commands

// add.go - Simulated Git Add Command
//
// Moves modified and untracked files to the staging area.

import (
	"fmt"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func init() {
	git.RegisterCommand(git.SubcommandAdd, func() git.Command { return &AddCommand{} })
}

type AddCommand struct{}

// Ensure AddCommand implements git.Command
var _ git.Command = (*AddCommand)(nil)

var stageable = []state.FileStatus{state.StatusModified, state.StatusUntracked}

func (c *AddCommand) Execute(env *git.Env, repo state.Repository, inv git.Invocation) (state.Repository, string) {
	if wantsHelp(inv) {
		return repo, c.Help()
	}

	target := inv.Arg(0)
	switch target {
	case "":
		return repo, "Nothing specified, nothing added.\nMaybe you wanted to say 'git add .'?"
	case ".", "-A", "--all":
		next, moved := repo.WithStatusTransition(stageable, state.StatusStaged)
		if moved == 0 {
			return repo, "Nothing to stage, working tree clean"
		}
		return next, "Files staged for commit"
	}

	// A single path: files that are absent or not stageable are left alone
	// without an error, but the confirmation is printed either way.
	if f, ok := repo.File(target); ok && (f.Status == state.StatusModified || f.Status == state.StatusUntracked) {
		repo = repo.WithFileStatus(target, state.StatusStaged)
	}
	return repo, fmt.Sprintf("Added %s to staging area", target)
}

func (c *AddCommand) Help() string {
	return `usage: git add [options] [--] <pathspec>...

Options:
    ., -A             add all modified and untracked files
    <file>            add specific file

Add file contents to the index (staging area).
`
}
