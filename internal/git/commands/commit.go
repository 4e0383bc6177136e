package commands

// commit.go - Simulated Git Commit Command
//
// Records every staged file in a new commit on the current branch and
// moves HEAD to it.

import (
	"fmt"
	"strconv"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func init() {
	git.RegisterCommand(git.SubcommandCommit, func() git.Command { return &CommitCommand{} })
}

type CommitCommand struct{}

// Ensure CommitCommand implements git.Command
var _ git.Command = (*CommitCommand)(nil)

func (c *CommitCommand) Execute(env *git.Env, repo state.Repository, inv git.Invocation) (state.Repository, string) {
	if wantsHelp(inv) {
		return repo, c.Help()
	}

	staged := repo.FilesWithStatus(state.StatusStaged)
	if len(staged) == 0 {
		return repo, cleanMessage
	}

	commit := state.Commit{
		ID:      strconv.Itoa(len(repo.Commits) + 1),
		Message: inv.Message(),
		Hash:    env.Hash(repo.HasCommitHash),
		Branch:  repo.CurrentBranch,
	}

	next, _ := repo.WithStatusTransition([]state.FileStatus{state.StatusStaged}, state.StatusCommitted)
	next = next.WithCommit(commit)

	return next, fmt.Sprintf("[%s %s] %s\n%d file(s) changed", commit.Branch, commit.Hash, commit.Message, len(staged))
}

func (c *CommitCommand) Help() string {
	return `usage: git commit [-m "<message>"]

Options:
    -m <message>      use the given quoted message as the commit message

Record the staged changes as a new commit on the current branch.
Without -m the message defaults to "` + git.DefaultCommitMessage + `".
`
}
