package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpText = "enter run • ctrl+n new file • ctrl+e edit file • ctrl+r reset • esc quit"

func (m Model) View() string {
	rightWidth := max(m.width/3, 30)
	leftWidth := max(m.width-rightWidth-4, 30)

	left := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Terminal"),
		m.renderTranscript(leftWidth),
		m.input.View(),
		helpStyle.Render(helpText),
	)

	right := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(rightWidth).Render(m.renderFiles()),
		panelStyle.Width(rightWidth).Render(m.renderBranches()),
		panelStyle.Width(rightWidth).Render(m.renderCommits()),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Render(left),
		"  ",
		right,
	)
}

// renderTranscript shows the tail that fits above the prompt
func (m Model) renderTranscript(width int) string {
	var rendered []string
	for _, l := range m.lines {
		for _, text := range strings.Split(l.text, "\n") {
			switch l.kind {
			case lineInput:
				rendered = append(rendered, promptStyle.Render("$ ")+inputEchoStyle.Render(text))
			case lineError:
				rendered = append(rendered, errorStyle.Render(text))
			case lineNotice:
				rendered = append(rendered, noticeStyle.Render(text))
			default:
				rendered = append(rendered, outputStyle.Render(text))
			}
		}
	}

	room := max(m.height-4, 1)
	if len(rendered) > room {
		rendered = rendered[len(rendered)-room:]
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(rendered, "\n"))
}

func (m Model) renderFiles() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Files"))
	for _, f := range m.view.Files {
		fmt.Fprintf(&sb, "\n%s %s %s",
			statusStyle(f.Status).Render("●"),
			f.Name,
			helpStyle.Render(f.Status.String()),
		)
	}
	return sb.String()
}

func (m Model) renderBranches() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Branches"))
	for _, b := range m.view.Branches {
		if b.Current {
			fmt.Fprintf(&sb, "\n%s", currentBranchStyle.Render("✓ "+b.Name))
			continue
		}
		fmt.Fprintf(&sb, "\n  %s", b.Name)
	}
	return sb.String()
}

func (m Model) renderCommits() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Commit History"))
	if len(m.view.Commits) == 0 {
		sb.WriteString("\n" + helpStyle.Render("No commits on "+m.view.CurrentBranch))
	}
	for _, c := range m.view.Commits {
		fmt.Fprintf(&sb, "\n%s %s", hashStyle.Render(c.Hash), c.Message)
		if c.IsHead {
			sb.WriteString(" " + headBadgeStyle.Render("HEAD"))
		}
	}
	return sb.String()
}
