package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kurobon/gitsim/internal/state"
)

func TestSwitchCommand(t *testing.T) {
	for _, verb := range []string{"switch", "checkout"} {
		t.Run(verb, func(t *testing.T) {
			t.Run("Missing Branch", func(t *testing.T) {
				seed := state.Seed()
				next, out := run(t, seqEnv(), seed, "git "+verb+" nowhere")
				assert.Equal(t, "error: pathspec 'nowhere' did not match any file(s) known to git.", out)
				assert.True(t, next.Equal(seed))
			})

			t.Run("Create", func(t *testing.T) {
				for _, flag := range []string{"-b", "-c"} {
					next, out := run(t, seqEnv(), state.Seed(), "git "+verb+" "+flag+" topic")
					assert.Equal(t, "Switched to a new branch 'topic'", out)
					assert.Equal(t, "topic", next.CurrentBranch)
					assert.Equal(t, []string{"main", "topic"}, next.Branches)
				}
			})

			t.Run("Create Existing Is Silent", func(t *testing.T) {
				repo, _ := run(t, seqEnv(), state.Seed(), "git branch topic")
				next, out := run(t, seqEnv(), repo, "git "+verb+" -c topic")
				assert.Empty(t, out)
				assert.True(t, next.Equal(repo))
				assert.Equal(t, "main", next.CurrentBranch)
			})

			t.Run("Create Without Name", func(t *testing.T) {
				seed := state.Seed()
				next, out := run(t, seqEnv(), seed, "git "+verb+" -b")
				assert.Empty(t, out)
				assert.True(t, next.Equal(seed))
			})

			t.Run("No Arguments", func(t *testing.T) {
				seed := state.Seed()
				next, out := run(t, seqEnv(), seed, "git "+verb)
				assert.Empty(t, out)
				assert.True(t, next.Equal(seed))
			})

			t.Run("Head Stays Global", func(t *testing.T) {
				repo, _ := state.Seed().AddTestFile()
				repo, _ = run(t, seqEnv(), repo, "git add .", `git commit -m "on main"`)
				head := repo.Head

				repo, _ = run(t, seqEnv(), repo, "git "+verb+" -c side")
				assert.Equal(t, head, repo.Head)
			})
		})
	}
}
