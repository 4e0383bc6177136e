package git

// Subcommand is the closed set of git subcommands the simulator
// understands. Anything else parses to SubcommandUnknown.
type Subcommand int

const (
	SubcommandUnknown Subcommand = iota
	SubcommandInit
	SubcommandStatus
	SubcommandAdd
	SubcommandCommit
	SubcommandBranch
	SubcommandSwitch
	SubcommandCheckout
	SubcommandLog
	SubcommandHelp
	SubcommandVersion
)

// Subcommands lists every known subcommand in help order
var Subcommands = []Subcommand{
	SubcommandInit,
	SubcommandStatus,
	SubcommandAdd,
	SubcommandCommit,
	SubcommandBranch,
	SubcommandSwitch,
	SubcommandCheckout,
	SubcommandLog,
	SubcommandHelp,
	SubcommandVersion,
}

var subcommandNames = map[Subcommand]string{
	SubcommandInit:     "init",
	SubcommandStatus:   "status",
	SubcommandAdd:      "add",
	SubcommandCommit:   "commit",
	SubcommandBranch:   "branch",
	SubcommandSwitch:   "switch",
	SubcommandCheckout: "checkout",
	SubcommandLog:      "log",
	SubcommandHelp:     "help",
	SubcommandVersion:  "version",
}

var subcommandAliases = map[string]Subcommand{
	"-h":        SubcommandHelp,
	"--help":    SubcommandHelp,
	"-v":        SubcommandVersion,
	"--version": SubcommandVersion,
}

func (s Subcommand) String() string {
	if name, ok := subcommandNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSubcommand maps a typed subcommand name to its Subcommand
func ParseSubcommand(name string) Subcommand {
	if sub, ok := subcommandAliases[name]; ok {
		return sub
	}
	for sub, n := range subcommandNames {
		if n == name {
			return sub
		}
	}
	return SubcommandUnknown
}
