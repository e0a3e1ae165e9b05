package ui

import (
	"github.com/charmbracelet/lipgloss"

	"bmitrack/internal/bmi"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle.Copy()
	noStyle      = lipgloss.NewStyle()

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFDF5")).
				Render

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF0000")).
				Render

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	activeTabStyle   = titleStyle.Copy()
	inactiveTabStyle = blurredStyle.Copy().Padding(0, 1)

	underweightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	normalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	overweightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	obeseStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func categoryStyle(cat bmi.Category) lipgloss.Style {
	switch cat {
	case bmi.Underweight:
		return underweightStyle
	case bmi.NormalWeight:
		return normalStyle
	case bmi.Overweight:
		return overweightStyle
	case bmi.Obese:
		return obeseStyle
	}
	return noStyle
}
