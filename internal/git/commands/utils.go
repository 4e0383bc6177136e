package commands

import (
	"slices"

	"github.com/kurobon/gitsim/internal/git"
)

// Shared utilities for commands

// wantsHelp reports whether -h or --help was passed outside the commit message
func wantsHelp(inv git.Invocation) bool {
	return slices.ContainsFunc(inv.Flags(), func(arg string) bool {
		return arg == "-h" || arg == "--help"
	})
}

// hasFlag reports whether any of flags was passed
func hasFlag(inv git.Invocation, flags ...string) bool {
	return slices.ContainsFunc(inv.Flags(), func(arg string) bool {
		return slices.Contains(flags, arg)
	})
}
