package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kurobon/gitsim/internal/state"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	inputEchoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	currentBranchStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("46")).
				Bold(true)

	hashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	headBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("86")).
			Padding(0, 1)
)

var statusColors = map[state.FileStatus]lipgloss.Color{
	state.StatusUntracked: lipgloss.Color("196"),
	state.StatusModified:  lipgloss.Color("226"),
	state.StatusStaged:    lipgloss.Color("46"),
	state.StatusCommitted: lipgloss.Color("240"),
}

func statusStyle(s state.FileStatus) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColors[s])
}
