package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitsim/internal/state"
)

func TestBranchCommand(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		repo, _ := run(t, seqEnv(), state.Seed(), "git branch feature-x", "git branch dev")
		_, out := run(t, seqEnv(), repo, "git branch")
		assert.Equal(t, "* main\n  feature-x\n  dev", out)

		repo, _ = run(t, seqEnv(), repo, "git switch dev")
		_, out = run(t, seqEnv(), repo, "git branch -a")
		assert.Equal(t, "  main\n  feature-x\n* dev", out)

		for _, flag := range []string{"-h", "--help", "--list"} {
			next, out := run(t, seqEnv(), repo, "git branch "+flag)
			assert.Equal(t, "  main\n  feature-x\n* dev", out, flag)
			assert.True(t, next.Equal(repo))
		}
	})

	t.Run("Create And Switch Then Log", func(t *testing.T) {
		repo, out := run(t, seqEnv(), state.Seed(), "git branch feature-x")
		assert.Equal(t, "Created branch feature-x", out)
		assert.Contains(t, repo.Branches, "feature-x")
		assert.Equal(t, "main", repo.CurrentBranch, "branch does not check out")

		repo, out = run(t, seqEnv(), repo, "git switch feature-x")
		assert.Equal(t, "Switched to branch 'feature-x'", out)
		assert.Equal(t, "feature-x", repo.CurrentBranch)

		_, out = run(t, seqEnv(), repo, "git log")
		assert.Equal(t, "No commits yet", out)
	})

	t.Run("Duplicate Branch", func(t *testing.T) {
		seed := state.Seed()
		next, out := run(t, seqEnv(), seed, "git branch main")
		assert.Equal(t, "fatal: A branch named 'main' already exists.", out)
		assert.Len(t, next.Branches, len(seed.Branches))
		assert.True(t, next.Equal(seed))
	})

	t.Run("Invalid Name", func(t *testing.T) {
		seed := state.Seed()
		for _, name := range []string{"bad..name", "trailing.lock", "with~tilde"} {
			next, out := run(t, seqEnv(), seed, "git branch "+name)
			assert.Equal(t, "fatal: '"+name+"' is not a valid branch name.", out)
			assert.True(t, next.Equal(seed))
		}
	})

	t.Run("Branches Survive Switching", func(t *testing.T) {
		repo, _ := run(t, seqEnv(), state.Seed(), "git branch a", "git switch a", "git branch b", "git switch main")
		require.Equal(t, []string{"main", "a", "b"}, repo.Branches)
		assert.Equal(t, "main", repo.CurrentBranch)
	})
}
