package commands

import (
	"fmt"
	"strings"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func init() {
	git.RegisterCommand(git.SubcommandLog, func() git.Command { return &LogCommand{} })
}

type LogCommand struct{}

// Ensure LogCommand implements git.Command
var _ git.Command = (*LogCommand)(nil)

// Every simulated commit is authored by the learner
const logAuthor = "You <you@example.com>"

func (c *LogCommand) Execute(env *git.Env, repo state.Repository, inv git.Invocation) (state.Repository, string) {
	if wantsHelp(inv) {
		return repo, c.Help()
	}

	commits := repo.CommitsOnBranch(repo.CurrentBranch)
	if len(commits) == 0 {
		return repo, "No commits yet"
	}

	oneline := hasFlag(inv, "--oneline")
	entries := make([]string, 0, len(commits))
	for _, commit := range commits {
		if oneline {
			entries = append(entries, fmt.Sprintf("%s %s", commit.Hash, commit.Message))
			continue
		}
		entries = append(entries, fmt.Sprintf("commit %s\nAuthor: %s\n    %s", commit.Hash, logAuthor, commit.Message))
	}

	sep := "\n\n"
	if oneline {
		sep = "\n"
	}
	return repo, strings.Join(entries, sep)
}

func (c *LogCommand) Help() string {
	return "usage: git log [--oneline]\n\nShow the commits of the current branch, newest first."
}
