package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bmitrack/internal/bmi"
	"bmitrack/internal/service"
)

// Loop is the interactive command-line calculator. Reader and writer are
// injected so sessions can be scripted in tests.
type Loop struct {
	svc      *service.RecordService
	in       *bufio.Scanner
	out      io.Writer
	username string
}

func New(svc *service.RecordService, in io.Reader, out io.Writer) *Loop {
	return &Loop{svc: svc, in: bufio.NewScanner(in), out: out}
}

// SetUsername presets the username so Run skips its prompt. Blank keeps
// calculations unsaved.
func (l *Loop) SetUsername(name string) { l.username = strings.TrimSpace(name) }

// Run prompts for measurements until the user declines another round or
// input ends.
func (l *Loop) Run() error {
	fmt.Fprintln(l.out, "=== BMI Calculator (Command Line) ===")
	fmt.Fprintln(l.out, "Enter your details to calculate BMI")
	if l.username == "" {
		name, ok := l.prompt("Enter your username (leave blank to skip saving): ")
		if !ok {
			return l.in.Err()
		}
		l.username = strings.TrimSpace(name)
	}

	for {
		weight, ok := l.promptFloat("Enter your weight in kg: ")
		if !ok {
			return l.in.Err()
		}
		height, ok := l.promptFloat("Enter your height in meters: ")
		if !ok {
			return l.in.Err()
		}

		l.evaluate(weight, height)

		again, ok := l.prompt("Calculate another BMI? (y/n): ")
		if !ok {
			return l.in.Err()
		}
		if strings.ToLower(strings.TrimSpace(again)) != "y" {
			fmt.Fprintln(l.out, "Goodbye!")
			return nil
		}
	}
}

func (l *Loop) prompt(label string) (string, bool) {
	fmt.Fprint(l.out, label)
	if !l.in.Scan() {
		return "", false
	}
	return l.in.Text(), true
}

func (l *Loop) promptFloat(label string) (float64, bool) {
	for {
		raw, ok := l.prompt(label)
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			fmt.Fprintln(l.out, "Error: please enter valid numbers.")
			continue
		}
		return v, true
	}
}

func (l *Loop) evaluate(weight, height float64) {
	if l.username == "" {
		res, err := l.svc.Compute(weight, height)
		if err != nil {
			fmt.Fprintf(l.out, "Error: %s.\n\n", err)
			return
		}
		l.printResult(res.Weight, res.Height, res.BMI, res.Category, nil)
		return
	}

	ev, err := l.svc.Evaluate(l.username, weight, height)
	if err != nil {
		fmt.Fprintf(l.out, "Error: %s.\n\n", err)
		return
	}
	l.printResult(ev.Record.Weight, ev.Record.Height, ev.Record.BMI, ev.Record.Category, &ev.Saved)
}

func (l *Loop) printResult(weight, height, value float64, cat bmi.Category, saved *bool) {
	fmt.Fprintln(l.out, "\n--- Results ---")
	fmt.Fprintf(l.out, "Weight: %g kg\n", weight)
	fmt.Fprintf(l.out, "Height: %g m\n", height)
	fmt.Fprintf(l.out, "BMI: %.2f\n", value)
	fmt.Fprintf(l.out, "Category: %s\n", cat)
	if saved != nil {
		state := "no"
		if *saved {
			state = "yes"
		}
		fmt.Fprintf(l.out, "Saved: %s\n", state)
	}
	fmt.Fprintln(l.out, "----------------")
	fmt.Fprintln(l.out)
}
