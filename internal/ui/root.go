package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"bmitrack/internal/monitor"
	"bmitrack/internal/service"
)

type tab int

const (
	tabCalculator tab = iota
	tabHistory
	tabTrend
)

var tabTitles = []string{"Calculator", "History", "Trend"}

// storeChangedMsg signals that the database file changed on disk.
type storeChangedMsg struct{}

type RootModel struct {
	Tab        tab
	Calculator CalculatorModel
	History    HistoryModel
	Trend      TrendModel
	Quitting   bool
	watcher    *monitor.StoreWatcher
	width      int
	height     int
}

func NewRootModel(svc *service.RecordService, watcher *monitor.StoreWatcher) RootModel {
	return RootModel{
		Tab:        tabCalculator,
		Calculator: NewCalculatorModel(svc),
		History:    NewHistoryModel(svc),
		Trend:      NewTrendModel(svc),
		watcher:    watcher,
	}
}

func (m RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.Calculator.Init()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForStoreChange)
	}
	return tea.Batch(cmds...)
}

// waitForStoreChange blocks on the watcher and is re-armed after every
// storeChangedMsg, like a server receive loop.
func (m RootModel) waitForStoreChange() tea.Msg {
	if _, ok := <-m.watcher.Events(); !ok {
		return nil
	}
	return storeChangedMsg{}
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.History.Table.SetHeight(msg.Height - 12)
		m.Trend.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			if m.watcher != nil {
				m.watcher.Close()
			}
			return m, tea.Quit
		}
		switch msg.String() {
		case "f1":
			m.Tab = tabCalculator
			return m, nil
		case "f2":
			m.Tab = tabHistory
			return m, m.History.Reload()
		case "f3":
			m.Tab = tabTrend
			if m.width > 0 {
				m.Trend.SetSize(m.width, m.height)
			}
			return m, m.Trend.Reload()
		}

	case storeChangedMsg:
		// Another process or a fresh save touched the database.
		cmds = append(cmds, m.History.Reload(), m.Trend.Reload(), m.waitForStoreChange)

	case evaluatedMsg:
		if msg.Err == nil && msg.Ev != nil && msg.Ev.Saved {
			cmds = append(cmds, m.History.Reload(), m.Trend.Reload())
		}
	}

	switch m.Tab {
	case tabCalculator:
		newCalc, newCmd := m.Calculator.Update(msg)
		m.Calculator = newCalc
		cmds = append(cmds, newCmd)

	case tabHistory:
		newHist, newCmd := m.History.Update(msg)
		m.History = newHist
		cmds = append(cmds, newCmd)

	case tabTrend:
		newTrend, newCmd := m.Trend.Update(msg)
		m.Trend = newTrend
		cmds = append(cmds, newCmd)
	}

	// Loaded data lands on the owning model even while another tab is active.
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if m.Tab != tabHistory {
			newHist, newCmd := m.History.Update(msg)
			m.History = newHist
			cmds = append(cmds, newCmd)
		}
	case trendLoadedMsg:
		if m.Tab != tabTrend {
			newTrend, newCmd := m.Trend.Update(msg)
			m.Trend = newTrend
			cmds = append(cmds, newCmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Goodbye!\n"
	}

	var body string
	switch m.Tab {
	case tabCalculator:
		body = m.Calculator.View()
	case tabHistory:
		body = m.History.View()
	case tabTrend:
		body = m.Trend.View()
	}

	return docStyle.Render(m.tabBar() + "\n\n" + body)
}

func (m RootModel) tabBar() string {
	parts := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if tab(i) == m.Tab {
			parts[i] = activeTabStyle.Render(title)
		} else {
			parts[i] = inactiveTabStyle.Render(title)
		}
	}
	return strings.Join(parts, " ") + "  " + blurredStyle.Render("F1/F2/F3 to switch")
}
