package commands

import (
	"fmt"
	"strings"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func init() {
	git.RegisterCommand(git.SubcommandBranch, func() git.Command { return &BranchCommand{} })
}

type BranchCommand struct{}

// Ensure BranchCommand implements git.Command
var _ git.Command = (*BranchCommand)(nil)

func (c *BranchCommand) Execute(env *git.Env, repo state.Repository, inv git.Invocation) (state.Repository, string) {
	// git branch, git branch -a, git branch -h ... any dash argument lists
	name := inv.Arg(0)
	if name == "" || strings.HasPrefix(name, "-") {
		return repo, c.listBranches(repo)
	}
	return c.createBranch(repo, name)
}

func (c *BranchCommand) listBranches(repo state.Repository) string {
	lines := make([]string, 0, len(repo.Branches))
	for _, b := range repo.Branches {
		if b == repo.CurrentBranch {
			lines = append(lines, "* "+b)
		} else {
			lines = append(lines, "  "+b)
		}
	}
	return strings.Join(lines, "\n")
}

func (c *BranchCommand) createBranch(repo state.Repository, name string) (state.Repository, string) {
	if repo.HasBranch(name) {
		return repo, fmt.Sprintf("fatal: A branch named '%s' already exists.", name)
	}
	if err := git.ValidateBranchName(name); err != nil {
		return repo, git.InvalidBranchMessage(name)
	}
	return repo.WithBranch(name), "Created branch " + name
}

func (c *BranchCommand) Help() string {
	return `usage: git branch
       git branch <branchname>

List branches, marking the current one with '*', or create a new branch.
The new branch is not checked out; use 'git switch <branchname>' for that.
`
}
