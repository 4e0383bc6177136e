package commands

import (
	"fmt"
	"strings"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func init() {
	git.RegisterCommand(git.SubcommandStatus, func() git.Command { return &StatusCommand{} })
}

type StatusCommand struct{}

// Ensure StatusCommand implements git.Command
var _ git.Command = (*StatusCommand)(nil)

const cleanMessage = "nothing to commit, working tree clean"

func (c *StatusCommand) Execute(env *git.Env, repo state.Repository, inv git.Invocation) (state.Repository, string) {
	if wantsHelp(inv) {
		return repo, c.Help()
	}
	if hasFlag(inv, "-s", "--short") {
		return repo, c.short(repo)
	}
	return repo, c.long(repo)
}

func (c *StatusCommand) long(repo state.Repository) string {
	staged := repo.FilesWithStatus(state.StatusStaged)
	modified := repo.FilesWithStatus(state.StatusModified)
	untracked := repo.FilesWithStatus(state.StatusUntracked)

	var sb strings.Builder
	fmt.Fprintf(&sb, "On branch %s\n", repo.CurrentBranch)

	if len(staged) > 0 {
		sb.WriteString("\nChanges to be committed:\n")
		for _, f := range staged {
			fmt.Fprintf(&sb, "  modified:   %s\n", f.Name)
		}
	}
	if len(modified) > 0 {
		sb.WriteString("\nChanges not staged for commit:\n")
		for _, f := range modified {
			fmt.Fprintf(&sb, "  modified:   %s\n", f.Name)
		}
	}
	if len(untracked) > 0 {
		sb.WriteString("\nUntracked files:\n")
		for _, f := range untracked {
			fmt.Fprintf(&sb, "  %s\n", f.Name)
		}
	}
	if len(staged) == 0 && len(modified) == 0 && len(untracked) == 0 {
		sb.WriteString("\n" + cleanMessage)
	}
	return sb.String()
}

// short mimics `git status -s`: two status columns then the path
func (c *StatusCommand) short(repo state.Repository) string {
	var lines []string
	for _, f := range repo.Files {
		switch f.Status {
		case state.StatusStaged:
			lines = append(lines, "M  "+f.Name)
		case state.StatusModified:
			lines = append(lines, " M "+f.Name)
		case state.StatusUntracked:
			lines = append(lines, "?? "+f.Name)
		}
	}
	return strings.Join(lines, "\n")
}

func (c *StatusCommand) Help() string {
	return `usage: git status [-s]

Options:
    -s, --short       give the output in the short format

Show the working tree status: staged changes, unstaged changes and
untracked files.
`
}
