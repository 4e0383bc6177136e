package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kurobon/gitsim/internal/lesson"
)

func newLessonsCmd(opts *rootOptions) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "List the built-in lessons",
		Long: `List the built-in lessons. Start one in the REPL with :lesson <id>
and check your work with :check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return printLessons(a.lessons.Loader, lang, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Show translated titles when available (e.g. ja)")
	return cmd
}

func printLessons(loader *lesson.Loader, lang string, out io.Writer) error {
	lessons, err := loader.ListLessons()
	if err != nil {
		return err
	}
	stars := color.New(color.FgYellow)
	for _, le := range lessons {
		l := le.Localized(lang)
		fmt.Fprintf(out, "%-14s %s %s\n", l.ID, stars.Sprint(strings.Repeat("*", l.Difficulty.Stars)), l.Title)
	}
	return nil
}
