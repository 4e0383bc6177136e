package commands

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

// seqEnv hands out h000001, h000002, ... so outputs are predictable
func seqEnv() *git.Env {
	n := 0
	return &git.Env{NewHash: func(taken func(string) bool) string {
		for {
			n++
			hash := fmt.Sprintf("h%06d", n)
			if taken == nil || !taken(hash) {
				return hash
			}
		}
	}}
}

// run feeds each line to the interpreter and returns the final repository
// and the output of the last line. Invariants are checked after every step.
func run(t *testing.T, env *git.Env, repo state.Repository, lines ...string) (state.Repository, string) {
	t.Helper()
	var out string
	for _, line := range lines {
		repo, out, _ = git.Interpret(env, repo, line)
		require.NoError(t, repo.Check(), "after %q", line)
	}
	return repo, out
}

func parse(line string) git.Invocation {
	return git.ParseCommand(line)
}
