package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bmitrack/internal/bmi"
	"bmitrack/internal/service"
)

type errMsg error

// evaluatedMsg carries the outcome of a calculate-and-save round trip.
type evaluatedMsg struct {
	Ev  *service.Evaluation
	Err error
}

type CalculatorModel struct {
	svc      *service.RecordService
	Inputs   []textinput.Model
	FocusIdx int
	Result   *service.Evaluation
	Err      error
}

const (
	inputUsername = iota
	inputWeight
	inputHeight
)

func NewCalculatorModel(svc *service.RecordService) CalculatorModel {
	inputs := make([]textinput.Model, 3)

	inputs[inputUsername] = textinput.New()
	inputs[inputUsername].Placeholder = "alice"
	inputs[inputUsername].Prompt = "Username: "
	inputs[inputUsername].CharLimit = 64
	inputs[inputUsername].Focus()

	inputs[inputWeight] = textinput.New()
	inputs[inputWeight].Placeholder = "70"
	inputs[inputWeight].Prompt = "Weight (kg): "
	inputs[inputWeight].CharLimit = 8

	inputs[inputHeight] = textinput.New()
	inputs[inputHeight].Placeholder = "1.75"
	inputs[inputHeight].Prompt = "Height (m): "
	inputs[inputHeight].CharLimit = 8

	return CalculatorModel{
		svc:      svc,
		Inputs:   inputs,
		FocusIdx: 0,
	}
}

// SetUsername prefills the username input, e.g. from config.
func (m *CalculatorModel) SetUsername(name string) {
	m.Inputs[inputUsername].SetValue(name)
}

func (m CalculatorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m CalculatorModel) Update(msg tea.Msg) (CalculatorModel, tea.Cmd) {
	var cmds []tea.Cmd = make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.evaluateCmd
			}
			m.nextInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		}

	case evaluatedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			m.Result = nil
		} else {
			m.Err = nil
			m.Result = msg.Ev
		}

	case errMsg:
		m.Err = msg
		m.Result = nil
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *CalculatorModel) nextInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx++
	if m.FocusIdx >= len(m.Inputs) {
		m.FocusIdx = 0
	}
	m.Inputs[m.FocusIdx].Focus()
}

func (m *CalculatorModel) prevInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
	m.Inputs[m.FocusIdx].Focus()
}

func (m CalculatorModel) evaluateCmd() tea.Msg {
	username := m.Inputs[inputUsername].Value()
	weightStr := strings.TrimSpace(m.Inputs[inputWeight].Value())
	heightStr := strings.TrimSpace(m.Inputs[inputHeight].Value())

	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		return errMsg(fmt.Errorf("please enter valid numbers"))
	}
	height, err := strconv.ParseFloat(heightStr, 64)
	if err != nil {
		return errMsg(fmt.Errorf("please enter valid numbers"))
	}

	ev, err := m.svc.Evaluate(username, weight, height)
	return evaluatedMsg{Ev: ev, Err: err}
}

func (m CalculatorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("BMI Tracker - Calculator") + "\n\n")

	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		if i < len(m.Inputs)-1 {
			b.WriteRune('\n')
		}
	}

	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Press Tab to change fields, Enter to calculate"))

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}

	if m.Result != nil {
		rec := m.Result.Record
		style := categoryStyle(rec.Category)

		b.WriteString("\n\n")
		b.WriteString(statusMessageStyle("--- Results ---"))
		b.WriteString(fmt.Sprintf("\nWeight: %g kg", rec.Weight))
		b.WriteString(fmt.Sprintf("\nHeight: %g m", rec.Height))
		b.WriteString("\n" + style.Render(fmt.Sprintf("BMI: %.2f", rec.BMI)))
		b.WriteString("\n" + style.Render("Category: "+string(rec.Category)))
		if m.Result.Saved {
			b.WriteString("\n" + blurredStyle.Render("Saved for "+rec.Username))
		} else {
			b.WriteString("\n" + errorMessageStyle("Could not save this record"))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Underweight < 18.5 | Normal 18.5-24.9 | Overweight 25-29.9 | Obese >= 30"))

	return b.String()
}
