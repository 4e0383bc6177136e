package commands

import (
	"fmt"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func init() {
	git.RegisterCommand(git.SubcommandSwitch, func() git.Command { return &SwitchCommand{name: "switch"} })
}

// SwitchCommand moves the current branch. checkout shares it: the
// simulator only models checkout's branch-switching half.
type SwitchCommand struct {
	name string
}

// Ensure SwitchCommand implements git.Command
var _ git.Command = (*SwitchCommand)(nil)

type SwitchOptions struct {
	CreateBranch string
	TargetBranch string
	Create       bool
}

func (c *SwitchCommand) Execute(env *git.Env, repo state.Repository, inv git.Invocation) (state.Repository, string) {
	if wantsHelp(inv) {
		return repo, c.Help()
	}

	opts := c.parseArgs(inv)
	if opts.Create {
		return c.createAndSwitch(repo, opts.CreateBranch)
	}
	if opts.TargetBranch == "" {
		return repo, ""
	}
	return c.switchTo(repo, opts.TargetBranch)
}

func (c *SwitchCommand) parseArgs(inv git.Invocation) SwitchOptions {
	switch first := inv.Arg(0); first {
	case "-b", "-c", "--create":
		return SwitchOptions{Create: true, CreateBranch: inv.Arg(1)}
	default:
		return SwitchOptions{TargetBranch: first}
	}
}

func (c *SwitchCommand) switchTo(repo state.Repository, name string) (state.Repository, string) {
	if !repo.HasBranch(name) {
		return repo, fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git.", name)
	}
	return repo.WithCurrentBranch(name), fmt.Sprintf("Switched to branch '%s'", name)
}

// createAndSwitch stays silent when the name is missing or already taken,
// unlike 'git branch <name>' which reports the duplicate.
func (c *SwitchCommand) createAndSwitch(repo state.Repository, name string) (state.Repository, string) {
	if name == "" || repo.HasBranch(name) {
		return repo, ""
	}
	if err := git.ValidateBranchName(name); err != nil {
		return repo, git.InvalidBranchMessage(name)
	}
	return repo.WithBranch(name).WithCurrentBranch(name), fmt.Sprintf("Switched to a new branch '%s'", name)
}

func (c *SwitchCommand) Help() string {
	name := c.name
	if name == "" {
		name = "switch"
	}
	return fmt.Sprintf(`usage: git %[1]s <branch>
       git %[1]s -c <new-branch>
       git %[1]s -b <new-branch>

Options:
    -c, -b <new-branch>   create the branch and switch to it

Switch the current branch. Commits already made stay on the branch they
were made on; 'git log' only lists commits of the current branch.
`, name)
}
