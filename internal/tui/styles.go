package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for console elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32")).
			Bold(true)

	ClockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	OnFieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	BenchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9E9E9E"))

	UnderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64B5F6"))

	OverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB74D"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
