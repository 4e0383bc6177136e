package git

import (
	"regexp"
	"strings"
)

// Tool is the only command-line tool the simulator knows
const Tool = "git"

// DefaultCommitMessage is used when a commit line carries no quoted message
const DefaultCommitMessage = "Update files"

// First quoted -m argument; either quote may open or close it.
var messagePattern = regexp.MustCompile(`-m\s+["'](.+?)["']`)

// Invocation is one parsed input line
type Invocation struct {
	Raw        string
	Tool       string
	Name       string // subcommand as typed
	Subcommand Subcommand
	Args       []string // tokens after the subcommand
}

// Empty reports whether the line had no tokens at all
func (inv Invocation) Empty() bool {
	return inv.Tool == ""
}

func (inv Invocation) IsGit() bool {
	return inv.Tool == Tool
}

// Arg returns the i-th positional argument or "" when absent
func (inv Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// Message extracts the commit message from the raw line
func (inv Invocation) Message() string {
	return ExtractMessage(inv.Raw)
}

// Flags returns the arguments with the quoted -m message removed, so words
// inside a message never read as options.
func (inv Invocation) Flags() []string {
	parts := Tokenize(messagePattern.ReplaceAllString(inv.Raw, " "))
	if len(parts) <= 2 {
		return nil
	}
	return parts[2:]
}

// Tokenize splits a line on whitespace
func Tokenize(input string) []string {
	return strings.Fields(input)
}

// ParseCommand parses the raw input string into an Invocation.
// "git" alone and the usual help/version flags resolve to the help and
// version subcommands.
func ParseCommand(input string) Invocation {
	inv := Invocation{Raw: input}

	parts := Tokenize(input)
	if len(parts) == 0 {
		return inv
	}

	inv.Tool = parts[0]
	if len(parts) == 1 {
		if inv.IsGit() {
			inv.Subcommand = SubcommandHelp
		}
		return inv
	}

	inv.Name = parts[1]
	inv.Args = parts[2:]
	inv.Subcommand = ParseSubcommand(inv.Name)
	return inv
}

// ExtractMessage returns the first quoted -m argument in raw, or
// DefaultCommitMessage when there is none.
func ExtractMessage(raw string) string {
	m := messagePattern.FindStringSubmatch(raw)
	if m == nil {
		return DefaultCommitMessage
	}
	return m[1]
}
