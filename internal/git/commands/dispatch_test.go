package commands

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func TestEverySubcommandRegistered(t *testing.T) {
	for _, sub := range git.Subcommands {
		assert.True(t, git.IsRegistered(sub), "no command registered for %s", sub)
		help, err := git.GetCommandHelp(sub)
		require.NoError(t, err)
		assert.NotEmpty(t, help, "%s has no help text", sub)
	}
	assert.False(t, git.IsRegistered(git.SubcommandUnknown))
}

func TestInterpret(t *testing.T) {
	t.Run("Unknown Subcommand", func(t *testing.T) {
		seed := state.Seed()
		next, out, outcome := git.Interpret(seqEnv(), seed, "git frobnicate")
		assert.Equal(t, "git: 'frobnicate' is not a git command. See 'git --help'.", out)
		assert.Equal(t, git.OutcomeUnchanged, outcome)
		assert.True(t, next.Equal(seed))
	})

	t.Run("Unknown Tool", func(t *testing.T) {
		seed := state.Seed()
		next, out, outcome := git.Interpret(seqEnv(), seed, "  svn commit  ")
		assert.Equal(t, "Command not found: svn commit", out)
		assert.Equal(t, git.OutcomeRejected, outcome)
		assert.True(t, next.Equal(seed))
	})

	t.Run("Blank Input Ignored", func(t *testing.T) {
		for _, line := range []string{"", "   ", "\t\n"} {
			next, out, outcome := git.Interpret(seqEnv(), state.Seed(), line)
			assert.Empty(t, out)
			assert.Equal(t, git.OutcomeIgnored, outcome)
			assert.True(t, next.Equal(state.Seed()))
		}
	})

	t.Run("Applied Versus Unchanged", func(t *testing.T) {
		_, _, outcome := git.Interpret(seqEnv(), state.Seed(), "git branch topic")
		assert.Equal(t, git.OutcomeApplied, outcome)

		_, _, outcome = git.Interpret(seqEnv(), state.Seed(), "git status")
		assert.Equal(t, git.OutcomeUnchanged, outcome)
	})

	t.Run("Bare Git Shows Help", func(t *testing.T) {
		for _, line := range []string{"git", "git help", "git --help", "git -h"} {
			_, out, _ := git.Interpret(seqEnv(), state.Seed(), line)
			assert.Contains(t, out, "usage: git <command>", line)
		}
		_, out, _ := git.Interpret(seqEnv(), state.Seed(), "git help commit")
		assert.Contains(t, out, "usage: git commit")
		_, out, _ = git.Interpret(seqEnv(), state.Seed(), "git help frobnicate")
		assert.Equal(t, "No manual entry for git-frobnicate", out)
	})

	t.Run("Version", func(t *testing.T) {
		for _, line := range []string{"git version", "git --version", "git -v"} {
			_, out, _ := git.Interpret(seqEnv(), state.Seed(), line)
			assert.Equal(t, "git version 2.43.0 (simulated)", out)
		}
	})

	t.Run("Input Never Mutated", func(t *testing.T) {
		repo, _ := state.Seed().AddTestFile()
		snapshot := state.Repository{
			CurrentBranch: repo.CurrentBranch,
			Branches:      append([]string(nil), repo.Branches...),
			Commits:       append([]state.Commit(nil), repo.Commits...),
			Files:         append([]state.FileEntry(nil), repo.Files...),
			Head:          repo.Head,
		}
		_, _ = run(t, seqEnv(), repo, "git add .", `git commit -m "x"`, "git switch -c y")
		assert.True(t, repo.Equal(snapshot), "transitions must not write through to their input")
	})
}

// TestRandomWalkInvariants drives the interpreter with random command
// sequences and checks the repository invariants after every step.
func TestRandomWalkInvariants(t *testing.T) {
	lines := []string{
		"git init", "git status", "git add .", "git add -A", "git add file2.txt",
		`git commit -m "work"`, "git commit", "git branch", "git branch feature",
		"git branch main", "git switch feature", "git switch main", "git switch -c topic",
		"git checkout -b feature", "git checkout nowhere", "git log", "git frobnicate", "ls",
	}

	rng := rand.New(rand.NewPCG(1, 2))
	env := seqEnv()
	repo := state.Seed()
	branchesSeen := map[string]bool{}

	for step := 0; step < 500; step++ {
		switch rng.IntN(5) {
		case 0:
			repo, _ = repo.AddTestFile()
		case 1:
			if f, ok := repo.NextEditable(""); ok {
				repo = repo.ModifyFile(f.Name)
			}
		default:
			line := lines[rng.IntN(len(lines))]
			before := repo
			repo, _, _ = git.Interpret(env, repo, line)
			if len(repo.Commits) > len(before.Commits) {
				last := repo.Commits[len(repo.Commits)-1]
				require.True(t, before.HasBranch(last.Branch), "commit on %q created before the branch existed", last.Branch)
				require.Equal(t, last.Hash, repo.Head)
			}
		}
		require.NoError(t, repo.Check(), "step %d", step)
		assert.Contains(t, repo.Branches, repo.CurrentBranch)
		for _, b := range repo.Branches {
			branchesSeen[b] = true
		}
	}
	assert.True(t, branchesSeen["main"])
}
