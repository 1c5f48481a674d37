package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	flagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	coachStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
)
