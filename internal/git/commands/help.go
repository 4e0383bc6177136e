package commands

import (
	"fmt"
	"strings"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/state"
)

func init() {
	git.RegisterCommand(git.SubcommandHelp, func() git.Command { return &HelpCommand{} })
}

type HelpCommand struct{}

// Ensure HelpCommand implements git.Command
var _ git.Command = (*HelpCommand)(nil)

// Command metadata for help display
var commandDescriptions = map[git.Subcommand]string{
	git.SubcommandInit:     "Create an empty Git repository",
	git.SubcommandStatus:   "Show the working tree status",
	git.SubcommandAdd:      "Add file contents to the index",
	git.SubcommandCommit:   "Record changes to the repository",
	git.SubcommandBranch:   "List or create branches",
	git.SubcommandSwitch:   "Switch branches",
	git.SubcommandCheckout: "Switch branches (classic form of switch)",
	git.SubcommandLog:      "Show commit logs",
	git.SubcommandHelp:     "Display help information",
	git.SubcommandVersion:  "Show version info",
}

func (c *HelpCommand) Execute(env *git.Env, repo state.Repository, inv git.Invocation) (state.Repository, string) {
	// git help <command>
	if topic := inv.Arg(0); topic != "" && !strings.HasPrefix(topic, "-") {
		sub := git.ParseSubcommand(topic)
		text, err := git.GetCommandHelp(sub)
		if err != nil {
			return repo, fmt.Sprintf("No manual entry for git-%s", topic)
		}
		return repo, text
	}
	return repo, c.Help()
}

func (c *HelpCommand) Help() string {
	var sb strings.Builder
	sb.WriteString("usage: git <command> [<args>]\n\nThese are the commands this simulator understands:\n\n")
	for _, sub := range git.Subcommands {
		fmt.Fprintf(&sb, "   %-10s %s\n", sub.String(), commandDescriptions[sub])
	}
	sb.WriteString("\nSee 'git help <command>' to read about a specific subcommand.\n")
	return sb.String()
}
