package git

import (
	"fmt"
	"strings"

	"github.com/kurobon/gitsim/internal/state"
)

// Command defines the interface for all git commands.
// Execute must validate before it builds the next state: on any failure it
// returns repo unchanged together with the error text.
type Command interface {
	Execute(env *Env, repo state.Repository, inv Invocation) (state.Repository, string)
	Help() string
}

// CommandFactory allows creating new instances of commands
type CommandFactory func() Command

// Env carries what a command needs beyond the repository itself
type Env struct {
	// NewHash returns a fresh commit hash that taken does not report as used
	NewHash func(taken func(string) bool) string
}

// DefaultEnv uses random hashes
func DefaultEnv() *Env {
	return &Env{NewHash: NewHash}
}

// Hash returns a commit hash not reported by taken
func (e *Env) Hash(taken func(string) bool) string {
	if e == nil || e.NewHash == nil {
		return NewHash(taken)
	}
	return e.NewHash(taken)
}

// Outcome classifies what a submitted line did
type Outcome int

const (
	OutcomeIgnored   Outcome = iota // blank line
	OutcomeRejected                 // not a git invocation
	OutcomeUnchanged                // dispatched, repository untouched
	OutcomeApplied                  // dispatched, repository changed
)

var outcomeNames = map[Outcome]string{
	OutcomeIgnored:   "ignored",
	OutcomeRejected:  "rejected",
	OutcomeUnchanged: "unchanged",
	OutcomeApplied:   "applied",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

var registry = make(map[Subcommand]CommandFactory)

// RegisterCommand registers a command factory
func RegisterCommand(sub Subcommand, factory CommandFactory) {
	if sub == SubcommandUnknown {
		panic("git: cannot register the unknown subcommand")
	}
	registry[sub] = factory
}

// Dispatch runs the command for inv.Subcommand
func Dispatch(env *Env, repo state.Repository, inv Invocation) (state.Repository, string) {
	factory, ok := registry[inv.Subcommand]
	if !ok {
		return repo, notACommand(inv.Name)
	}
	if env == nil {
		env = DefaultEnv()
	}
	return factory().Execute(env, repo, inv)
}

// Interpret runs one raw input line against repo
func Interpret(env *Env, repo state.Repository, input string) (state.Repository, string, Outcome) {
	inv := ParseCommand(input)
	if inv.Empty() {
		return repo, "", OutcomeIgnored
	}
	if !inv.IsGit() {
		return repo, fmt.Sprintf("Command not found: %s", strings.TrimSpace(input)), OutcomeRejected
	}

	next, output := Dispatch(env, repo, inv)
	if next.Equal(repo) {
		return repo, output, OutcomeUnchanged
	}
	return next, output, OutcomeApplied
}

// IsRegistered reports whether a command is registered for sub
func IsRegistered(sub Subcommand) bool {
	_, ok := registry[sub]
	return ok
}

// GetCommandHelp returns the help string for a command
func GetCommandHelp(sub Subcommand) (string, error) {
	factory, ok := registry[sub]
	if !ok {
		return "", fmt.Errorf("command not found")
	}
	return factory().Help(), nil
}

func notACommand(name string) string {
	return fmt.Sprintf("git: '%s' is not a git command. See 'git --help'.", name)
}
