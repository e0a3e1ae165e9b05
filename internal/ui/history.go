package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bmitrack/internal/models"
	"bmitrack/internal/service"
)

// historyLoadedMsg carries a refreshed user list plus one user's records.
type historyLoadedMsg struct {
	Users    []string
	Username string
	Records  []models.BMIRecord
	Err      error
}

type HistoryModel struct {
	svc     *service.RecordService
	Table   table.Model
	Users   []string
	UserIdx int
	Records []models.BMIRecord
	Err     error
}

func NewHistoryModel(svc *service.RecordService) HistoryModel {
	columns := []table.Column{
		{Title: "Date", Width: 17},
		{Title: "Weight", Width: 8},
		{Title: "Height", Width: 8},
		{Title: "BMI", Width: 7},
		{Title: "Category", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return HistoryModel{
		svc:   svc,
		Table: t,
	}
}

func (m HistoryModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the user list and the selected user's records.
func (m HistoryModel) Reload() tea.Cmd {
	svc := m.svc
	idx := m.UserIdx
	return func() tea.Msg {
		users, err := svc.Usernames()
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		if len(users) == 0 {
			return historyLoadedMsg{}
		}
		if idx >= len(users) {
			idx = len(users) - 1
		}
		recs, err := svc.History(users[idx])
		return historyLoadedMsg{Users: users, Username: users[idx], Records: recs, Err: err}
	}
}

func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
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

	case historyLoadedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Err = nil
		m.Users = msg.Users
		m.Records = msg.Records
		if m.UserIdx >= len(m.Users) {
			m.UserIdx = 0
		}

		rows := make([]table.Row, len(m.Records))
		for i, rec := range m.Records {
			rows[i] = table.Row{
				formatTimestamp(rec),
				fmt.Sprintf("%.1f", rec.Weight),
				fmt.Sprintf("%.2f", rec.Height),
				fmt.Sprintf("%.2f", rec.BMI),
				string(rec.Category),
			}
		}
		m.Table.SetRows(rows)
		m.Table.SetCursor(0)
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func formatTimestamp(rec models.BMIRecord) string {
	ts, err := rec.Time()
	if err != nil {
		return rec.Timestamp
	}
	return ts.Format("2006-01-02 15:04")
}

func (m HistoryModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("BMI Tracker - History") + "\n\n")

	if len(m.Users) == 0 {
		b.WriteString(blurredStyle.Render("No records yet. Calculate a BMI first."))
		if m.Err != nil {
			b.WriteString("\n\n" + errorMessageStyle(m.Err.Error()))
		}
		return b.String()
	}

	user := m.Users[m.UserIdx]
	b.WriteString(focusedStyle.Render(fmt.Sprintf("User: %s", user)))
	b.WriteString(blurredStyle.Render(fmt.Sprintf("  (%d of %d users, %d records)", m.UserIdx+1, len(m.Users), len(m.Records))))
	b.WriteString("\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Press left/right to switch user, 'r' to refresh, up/down to navigate"))

	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
