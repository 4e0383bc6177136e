package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kurobon/gitsim/internal/simulator"
)

func newExecCmd(opts *rootOptions) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "exec <line>...",
		Short: "Run command lines against a fresh repository",
		Long: `Run each argument as one input line against a fresh simulated
repository and print what it answers.

Examples:
  gitsim exec "git status"
  gitsim exec "git branch feature" "git switch feature" "git log"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runLines(cmd.Context(), a.svc, a.cfg.Simulator.UserID, args, cmd.OutOrStdout(), !quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print outputs only, without echoing the input lines")
	return cmd
}

// runLines executes lines in order on a new session
func runLines(ctx context.Context, svc *simulator.Service, userID string, lines []string, out io.Writer, echo bool) error {
	sess, err := svc.Open(ctx, "")
	if err != nil {
		return err
	}
	for _, line := range lines {
		res, err := svc.Execute(ctx, sess.ID, userID, line)
		if err != nil {
			return err
		}
		if echo {
			fmt.Fprintf(out, "$ %s\n", line)
		}
		if res.Entry.Output != "" {
			fmt.Fprintln(out, res.Entry.Output)
		}
	}
	return nil
}
