// Package tui is the terminal front-end: a transcript with a prompt on the
// left and the Files, Branches and Commit History panels on the right.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/simulator"
	"github.com/kurobon/gitsim/internal/state"
)

type lineKind int

const (
	lineInput lineKind = iota
	lineOutput
	lineError
	lineNotice
)

type line struct {
	kind lineKind
	text string
}

// Options configures a Model
type Options struct {
	SessionID string
	UserID    string
	// Command pre-fills the prompt
	Command string
}

type Model struct {
	ctx       context.Context
	svc       *simulator.Service
	sessionID string
	userID    string

	input      textinput.Model
	lines      []line
	view       state.View
	lastEdited string

	width  int
	height int
}

// New opens (or creates) the session and builds the initial model
func New(ctx context.Context, svc *simulator.Service, opts Options) (Model, error) {
	sess, err := svc.Open(ctx, opts.SessionID)
	if err != nil {
		return Model{}, err
	}
	view, err := svc.State(ctx, sess.ID)
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Placeholder = `git status`
	input.Prompt = promptStyle.Render("$ ")
	input.CharLimit = 256
	input.SetValue(opts.Command)
	input.CursorEnd()
	input.Focus()

	return Model{
		ctx:       ctx,
		svc:       svc,
		sessionID: sess.ID,
		userID:    opts.UserID,
		input:     input,
		view:      view,
		width:     100,
		height:    30,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit(), nil
		case "ctrl+r":
			return m.reset(), nil
		case "ctrl+n":
			return m.addFile(), nil
		case "ctrl+e":
			return m.editNext(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() Model {
	raw := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(raw) == "" {
		return m
	}

	res, err := m.svc.Execute(m.ctx, m.sessionID, m.userID, raw)
	if err != nil {
		return m.fail(err)
	}

	m.lines = append(m.lines, line{kind: lineInput, text: raw})
	if res.Entry.Output != "" {
		kind := lineOutput
		if isErrorOutput(res.Outcome, res.Entry.Output) {
			kind = lineError
		}
		m.lines = append(m.lines, line{kind: kind, text: res.Entry.Output})
	}
	m.view = res.View
	return m
}

func (m Model) reset() Model {
	view, err := m.svc.Reset(m.ctx, m.sessionID)
	if err != nil {
		return m.fail(err)
	}
	m.view = view
	m.lines = []line{{kind: lineNotice, text: "Repository reset"}}
	m.lastEdited = ""
	return m
}

func (m Model) addFile() Model {
	entry, view, err := m.svc.AddTestFile(m.ctx, m.sessionID)
	if err != nil {
		return m.fail(err)
	}
	m.view = view
	return m.notice(fmt.Sprintf("Created %s", entry.Name))
}

func (m Model) editNext() Model {
	repo, err := m.svc.Repository(m.ctx, m.sessionID)
	if err != nil {
		return m.fail(err)
	}
	f, ok := repo.NextEditable(m.lastEdited)
	if !ok {
		return m.notice("No committed files to edit")
	}
	view, err := m.svc.ModifyFile(m.ctx, m.sessionID, f.Name)
	if err != nil {
		return m.fail(err)
	}
	m.view = view
	m.lastEdited = f.Name
	return m.notice(fmt.Sprintf("Edited %s", f.Name))
}

func (m Model) notice(text string) Model {
	m.lines = append(m.lines, line{kind: lineNotice, text: text})
	return m
}

func (m Model) fail(err error) Model {
	m.lines = append(m.lines, line{kind: lineError, text: err.Error()})
	return m
}

func isErrorOutput(outcome git.Outcome, output string) bool {
	if outcome == git.OutcomeRejected {
		return true
	}
	for _, prefix := range []string{"error:", "fatal:", "git: '"} {
		if strings.HasPrefix(output, prefix) {
			return true
		}
	}
	return false
}

// SessionID reports which session the model drives
func (m Model) SessionID() string {
	return m.sessionID
}

// Run starts the full-screen program and blocks until the user quits
func Run(ctx context.Context, svc *simulator.Service, opts Options) error {
	m, err := New(ctx, svc, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
