package commands

import (
	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func init() {
	git.RegisterCommand(git.SubcommandInit, func() git.Command { return &InitCommand{} })
}

type InitCommand struct{}

// Ensure InitCommand implements git.Command
var _ git.Command = (*InitCommand)(nil)

const initMessage = "Initialized empty Git repository in .git/"

func (c *InitCommand) Execute(env *git.Env, repo state.Repository, inv git.Invocation) (state.Repository, string) {
	if wantsHelp(inv) {
		return repo, c.Help()
	}

	// Re-running init never touches an existing history
	if len(repo.Commits) > 0 {
		return repo, initMessage
	}
	return repo.WithBranch(state.DefaultBranch).WithCommit(state.SeedCommit()), initMessage
}

func (c *InitCommand) Help() string {
	return `usage: git init

Create an empty Git repository. Running it again in an existing
repository is safe: history, HEAD and files are left untouched.
`
}
