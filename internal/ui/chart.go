package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"bmitrack/internal/bmi"
	"bmitrack/internal/models"
	"bmitrack/internal/service"
)

// RenderBMISeries draws one horizontal bar per measurement in
// chronological order, colored by classification. The '┊' marks sit at
// the category limits.
func RenderBMISeries(points []service.TrendPoint, width int) string {
	if len(points) == 0 {
		return blurredStyle.Render("No data yet.")
	}

	barW := gaugeWidth(width)
	axisMax := bmi.OverweightLimit + 5
	for _, p := range points {
		if p.BMI >= axisMax {
			axisMax = p.BMI + 2
		}
	}
	guides := []float64{bmi.UnderweightLimit, bmi.NormalLimit, bmi.OverweightLimit}

	var b strings.Builder
	for _, p := range points {
		cat := bmi.Classify(p.BMI)
		bar := categoryStyle(cat).Render(gauge(p.BMI, axisMax, barW, guides))
		b.WriteString(fmt.Sprintf("%s  %6.2f  %s\n", dateLabel(p.Timestamp), p.BMI, bar))
	}
	b.WriteString(blurredStyle.Render("category limits at "))
	b.WriteString(underweightStyle.Render(fmt.Sprintf("%.1f", bmi.UnderweightLimit)))
	b.WriteString(blurredStyle.Render(", "))
	b.WriteString(overweightStyle.Render(fmt.Sprintf("%.0f", bmi.NormalLimit)))
	b.WriteString(blurredStyle.Render(" and "))
	b.WriteString(obeseStyle.Render(fmt.Sprintf("%.0f", bmi.OverweightLimit)))
	return b.String()
}

// RenderWeightSeries draws one horizontal bar per measurement in
// chronological order, scaled to the heaviest record.
func RenderWeightSeries(points []service.TrendPoint, width int) string {
	if len(points) == 0 {
		return blurredStyle.Render("No data yet.")
	}

	barW := gaugeWidth(width)
	axisMax := 0.0
	for _, p := range points {
		if p.Weight > axisMax {
			axisMax = p.Weight
		}
	}
	axisMax *= 1.25
	if axisMax <= 0 {
		axisMax = 1
	}

	var b strings.Builder
	for i, p := range points {
		bar := underweightStyle.Render(gauge(p.Weight, axisMax, barW, nil))
		b.WriteString(fmt.Sprintf("%s  %5.1f kg %s", dateLabel(p.Timestamp), p.Weight, bar))
		if i < len(points)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func gauge(value, axisMax float64, width int, guides []float64) string {
	cells := make([]rune, width)
	fill := int(math.Round(value / axisMax * float64(width)))
	if fill > width {
		fill = width
	}
	if fill < 0 {
		fill = 0
	}
	for i := range cells {
		if i < fill {
			cells[i] = '█'
		} else {
			cells[i] = ' '
		}
	}
	for _, g := range guides {
		pos := int(math.Round(g / axisMax * float64(width)))
		if pos >= fill && pos < width {
			cells[pos] = '┊'
		}
	}
	return string(cells)
}

func gaugeWidth(width int) int {
	w := width - 28
	if w < 20 {
		w = 20
	}
	if w > 60 {
		w = 60
	}
	return w
}

func dateLabel(ts string) string {
	t, err := time.Parse(models.TimeLayout, ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}
