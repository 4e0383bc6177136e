package commands

import (
	"github.com/kurobon/gitsim/internal/git"
)

func init() {
	git.RegisterCommand(git.SubcommandCheckout, func() git.Command { return &SwitchCommand{name: "checkout"} })
}
