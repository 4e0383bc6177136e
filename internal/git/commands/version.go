package commands

import (
	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func init() {
	git.RegisterCommand(git.SubcommandVersion, func() git.Command { return &VersionCommand{} })
}

type VersionCommand struct{}

var _ git.Command = (*VersionCommand)(nil)

const versionString = "git version 2.43.0 (simulated)"

func (c *VersionCommand) Execute(env *git.Env, repo state.Repository, inv git.Invocation) (state.Repository, string) {
	return repo, versionString
}

func (c *VersionCommand) Help() string {
	return "usage: git version\n\nShow the version of the simulated git."
}
