package cli

import (
	"github.com/spf13/cobra"

	"github.com/kurobon/gitsim/internal/tui"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	var tuiOpts tui.Options

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen terminal simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if tuiOpts.UserID == "" {
				tuiOpts.UserID = a.cfg.Simulator.UserID
			}
			return tui.Run(cmd.Context(), a.svc, tuiOpts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&tuiOpts.Command, "command", "", "Pre-fill the prompt with a command")
	f.StringVar(&tuiOpts.SessionID, "session", "", "Session ID (default: generated)")
	f.StringVar(&tuiOpts.UserID, "user", "", "User credited with XP (default simulator.user_id)")
	return cmd
}
