package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bmitrack/internal/service"
)

// trendLoadedMsg carries chart points and aggregates for one user.
type trendLoadedMsg struct {
	Users    []string
	Username string
	Points   []service.TrendPoint
	Summary  *service.Summary
	Err      error
}

type TrendModel struct {
	svc      *service.RecordService
	Viewport viewport.Model
	Users    []string
	UserIdx  int
	Points   []service.TrendPoint
	Summary  *service.Summary
	Err      error
	width    int
}

func NewTrendModel(svc *service.RecordService) TrendModel {
	vp := viewport.New(80, 18)
	vp.Style = lipgloss.NewStyle().PaddingLeft(1)

	return TrendModel{
		svc:      svc,
		Viewport: vp,
		width:    80,
	}
}

func (m *TrendModel) SetSize(width, height int) {
	m.width = width
	m.Viewport.Width = width - 6
	m.Viewport.Height = height - 12
	m.Viewport.SetContent(m.renderContent())
}

func (m TrendModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the user list, trend points and summary for the
// selected user.
func (m TrendModel) Reload() tea.Cmd {
	svc := m.svc
	idx := m.UserIdx
	return func() tea.Msg {
		users, err := svc.Usernames()
		if err != nil {
			return trendLoadedMsg{Err: err}
		}
		if len(users) == 0 {
			return trendLoadedMsg{}
		}
		if idx >= len(users) {
			idx = len(users) - 1
		}
		points, err := svc.Trend(users[idx])
		if err != nil {
			return trendLoadedMsg{Err: err}
		}
		summary, err := svc.Summary(users[idx])
		return trendLoadedMsg{Users: users, Username: users[idx], Points: points, Summary: summary, Err: err}
	}
}

func (m TrendModel) Update(msg tea.Msg) (TrendModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if len(m.Users) > 1 {
				m.UserIdx--
				if m.UserIdx < 0 {
					m.UserIdx = len(m.Users) - 1
				}
				return m, m.Reload()
			}
		case "right", "l":
			if len(m.Users) > 1 {
				m.UserIdx++
				if m.UserIdx >= len(m.Users) {
					m.UserIdx = 0
				}
				return m, m.Reload()
			}
		case "r":
			return m, m.Reload()
		}

	case trendLoadedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Err = nil
		m.Users = msg.Users
		m.Points = msg.Points
		m.Summary = msg.Summary
		if m.UserIdx >= len(m.Users) {
			m.UserIdx = 0
		}
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoTop()
	}

	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m TrendModel) renderContent() string {
	if m.Summary == nil {
		return blurredStyle.Render("No records yet. Calculate a BMI first.")
	}

	s := m.Summary
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Records: %d   Latest: %s %s\n",
		s.Count,
		categoryStyle(s.LatestCategory).Render(fmt.Sprintf("%.2f", s.LatestBMI)),
		categoryStyle(s.LatestCategory).Render(string(s.LatestCategory))))
	b.WriteString(fmt.Sprintf("Min: %.2f   Max: %.2f   Avg: %.2f   Weight change: %+.1f kg\n",
		s.MinBMI, s.MaxBMI, s.AvgBMI, s.WeightChange))

	b.WriteString("\n" + statusMessageStyle("BMI over time") + "\n")
	b.WriteString(RenderBMISeries(m.Points, m.width))
	b.WriteString("\n\n" + statusMessageStyle("Weight over time") + "\n")
	b.WriteString(RenderWeightSeries(m.Points, m.width))
	return b.String()
}

func (m TrendModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("BMI Tracker - Trend") + "\n\n")

	if len(m.Users) == 0 {
		b.WriteString(blurredStyle.Render("No records yet. Calculate a BMI first."))
		if m.Err != nil {
			b.WriteString("\n\n" + errorMessageStyle(m.Err.Error()))
		}
		return b.String()
	}

	user := m.Users[m.UserIdx]
	b.WriteString(focusedStyle.Render(fmt.Sprintf("User: %s", user)))
	b.WriteString(blurredStyle.Render(fmt.Sprintf("  (%d of %d users)", m.UserIdx+1, len(m.Users))))
	b.WriteString("\n\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Press left/right to switch user, 'r' to refresh, up/down to scroll"))

	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
