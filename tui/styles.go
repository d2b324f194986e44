package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D6B")).
			Padding(0, 1)

	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787"))

	statBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2E7D6B")).
			Padding(0, 2).
			MarginRight(1)

	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")).Bold(true)
)
