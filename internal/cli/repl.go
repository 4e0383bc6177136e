package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/lesson"
	"github.com/kurobon/gitsim/internal/simulator"
	"github.com/kurobon/gitsim/internal/state"
)

const replHelp = `Type git commands, or:
  :touch [name]   create an untracked file (default file<N>.txt)
  :edit [name]    modify a committed file (default: the next one)
  :state          show files, branches and commits
  :reset          start over from the initial repository
  :lessons        list lessons
  :lesson <id>    start a lesson in a fresh repository
  :check          check the current lesson
  :quit           leave`

// REPL reads one line at a time and prints what the simulator answers
type REPL struct {
	svc       *simulator.Service
	sessionID string
	userID    string
	in        io.Reader
	out       io.Writer

	lastEdited string
	lessons    *lesson.Engine
	lessonID   string

	prompt  *color.Color
	errText *color.Color
	notice  *color.Color
	hash    *color.Color
}

// NewREPL prepares a REPL on a fresh session. Colors are on only when out
// is a terminal.
func NewREPL(ctx context.Context, svc *simulator.Service, userID string, in io.Reader, out io.Writer) (*REPL, error) {
	sess, err := svc.Open(ctx, "")
	if err != nil {
		return nil, err
	}

	r := &REPL{
		svc:       svc,
		sessionID: sess.ID,
		userID:    userID,
		in:        in,
		out:       out,
		prompt:    color.New(color.FgGreen, color.Bold),
		errText:   color.New(color.FgRed),
		notice:    color.New(color.FgYellow),
		hash:      color.New(color.FgYellow),
	}
	if !isTerminal(out) {
		for _, c := range []*color.Color{r.prompt, r.errText, r.notice, r.hash} {
			c.DisableColor()
		}
	}
	return r, nil
}

// WithLessons enables the lesson meta-commands
func (r *REPL) WithLessons(e *lesson.Engine) *REPL {
	r.lessons = e
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var errQuit = errors.New("quit")

// Run loops until :quit or end of input
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "gitsim: a simulated repository is ready. :help lists extra commands.")

	scanner := bufio.NewScanner(r.in)
	for {
		r.prompt.Fprint(r.out, "$ ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var err error
		if strings.HasPrefix(line, ":") {
			err = r.meta(ctx, line)
		} else {
			err = r.execute(ctx, line)
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			r.errText.Fprintln(r.out, err.Error())
		}
	}
}

func (r *REPL) execute(ctx context.Context, line string) error {
	res, err := r.svc.Execute(ctx, r.sessionID, r.userID, line)
	if err != nil {
		return err
	}
	if res.Entry.Output == "" {
		return nil
	}
	if res.Outcome == git.OutcomeRejected || isErrorLine(res.Entry.Output) {
		r.errText.Fprintln(r.out, res.Entry.Output)
		return nil
	}
	fmt.Fprintln(r.out, res.Entry.Output)
	return nil
}

func isErrorLine(s string) bool {
	return strings.HasPrefix(s, "error:") || strings.HasPrefix(s, "fatal:") || strings.HasPrefix(s, "git: '")
}

func (r *REPL) meta(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case ":quit", ":q", ":exit":
		return errQuit
	case ":help", ":h":
		fmt.Fprintln(r.out, replHelp)
	case ":reset":
		if _, err := r.svc.Reset(ctx, r.sessionID); err != nil {
			return err
		}
		r.lastEdited = ""
		r.notice.Fprintln(r.out, "Repository reset")
	case ":touch":
		var (
			entry state.FileEntry
			err   error
		)
		if arg == "" {
			entry, _, err = r.svc.AddTestFile(ctx, r.sessionID)
		} else {
			entry, _, err = r.svc.AddFile(ctx, r.sessionID, arg)
		}
		if err != nil {
			return err
		}
		r.notice.Fprintf(r.out, "Created %s\n", entry.Name)
	case ":edit":
		return r.edit(ctx, arg)
	case ":lessons", ":lesson", ":check":
		return r.lessonMeta(ctx, fields[0], arg)
	case ":state":
		view, err := r.svc.State(ctx, r.sessionID)
		if err != nil {
			return err
		}
		r.printState(view)
	default:
		return fmt.Errorf("unknown command %s (try :help)", fields[0])
	}
	return nil
}

func (r *REPL) lessonMeta(ctx context.Context, cmd, arg string) error {
	if r.lessons == nil {
		return errors.New("lessons are not available")
	}

	switch cmd {
	case ":lessons":
		return printLessons(r.lessons.Loader, "", r.out)
	case ":lesson":
		if arg == "" {
			return errors.New("usage: :lesson <id>")
		}
		le, err := r.lessons.Loader.LoadLesson(arg)
		if err != nil {
			return err
		}
		id, err := r.lessons.StartLesson(ctx, arg)
		if err != nil {
			return err
		}
		r.sessionID = id
		r.lessonID = le.ID
		r.lastEdited = ""
		r.notice.Fprintf(r.out, "Lesson: %s\n", le.Title)
		fmt.Fprintln(r.out, strings.TrimSpace(le.Description))
	default:
		if r.lessonID == "" {
			return errors.New("no lesson started (try :lesson <id>)")
		}
		res, err := r.lessons.VerifyLesson(ctx, r.sessionID, r.lessonID, r.userID)
		if err != nil {
			return err
		}
		for _, c := range res.Progress {
			mark := "[ ]"
			if c.Passed {
				mark = "[x]"
			}
			fmt.Fprintf(r.out, "%s %s\n", mark, c.Description)
		}
		if res.Success {
			r.notice.Fprintln(r.out, "Lesson complete!")
		}
	}
	return nil
}

func (r *REPL) edit(ctx context.Context, name string) error {
	if name == "" {
		repo, err := r.svc.Repository(ctx, r.sessionID)
		if err != nil {
			return err
		}
		f, ok := repo.NextEditable(r.lastEdited)
		if !ok {
			r.notice.Fprintln(r.out, "No committed files to edit")
			return nil
		}
		name = f.Name
	}
	if _, err := r.svc.ModifyFile(ctx, r.sessionID, name); err != nil {
		return err
	}
	r.lastEdited = name
	r.notice.Fprintf(r.out, "Edited %s\n", name)
	return nil
}

func (r *REPL) printState(view state.View) {
	fmt.Fprintln(r.out, "Files:")
	for _, f := range view.Files {
		fmt.Fprintf(r.out, "  %-10s %s\n", f.Status, f.Name)
	}
	fmt.Fprintln(r.out, "Branches:")
	for _, b := range view.Branches {
		mark := " "
		if b.Current {
			mark = "*"
		}
		fmt.Fprintf(r.out, "  %s %s\n", mark, b.Name)
	}
	fmt.Fprintf(r.out, "Commits on %s:\n", view.CurrentBranch)
	for _, c := range view.Commits {
		fmt.Fprint(r.out, "  ")
		r.hash.Fprint(r.out, c.Hash)
		fmt.Fprintf(r.out, " %s", c.Message)
		if c.IsHead {
			fmt.Fprint(r.out, " (HEAD)")
		}
		fmt.Fprintln(r.out)
	}
}

func newREPLCmd(opts *rootOptions) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Type commands at a plain line prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if userID == "" {
				userID = a.cfg.Simulator.UserID
			}
			r, err := NewREPL(cmd.Context(), a.svc, userID, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.WithLessons(a.lessons).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User credited with XP (default simulator.user_id)")
	return cmd
}
