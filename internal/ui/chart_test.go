package ui_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmitrack/internal/service"
	"bmitrack/internal/ui"
)

func trendFixture() []service.TrendPoint {
	return []service.TrendPoint{
		{Timestamp: "2024-03-01 08:00:00", BMI: 15.43, Weight: 50.0},
		{Timestamp: "2024-03-08 08:00:00", BMI: 22.86, Weight: 70.0},
		{Timestamp: "2024-03-15 08:00:00", BMI: 31.22, Weight: 95.6},
	}
}

func TestRenderBMISeriesListsPointsInOrder(t *testing.T) {
	out := ui.RenderBMISeries(trendFixture(), 80)

	first := strings.Index(out, "2024-03-01")
	second := strings.Index(out, "2024-03-08")
	third := strings.Index(out, "2024-03-15")
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	assert.Greater(t, third, second)

	assert.Contains(t, out, "15.43")
	assert.Contains(t, out, "22.86")
	assert.Contains(t, out, "31.22")
}

func TestRenderBMISeriesBarsScaleWithValue(t *testing.T) {
	out := ui.RenderBMISeries(trendFixture(), 80)

	lines := strings.Split(out, "\n")
	var low, high string
	for _, line := range lines {
		if strings.Contains(line, "15.43") {
			low = line
		}
		if strings.Contains(line, "31.22") {
			high = line
		}
	}
	require.NotEmpty(t, low)
	require.NotEmpty(t, high)
	assert.Greater(t, strings.Count(high, "█"), strings.Count(low, "█"))
}

func TestRenderBMISeriesShowsCategoryLimits(t *testing.T) {
	out := ui.RenderBMISeries(trendFixture(), 80)

	assert.Contains(t, out, "category limits at 18.5, 25 and 30")
	assert.Contains(t, out, "┊")
}

func TestRenderBMISeriesEmpty(t *testing.T) {
	assert.Contains(t, ui.RenderBMISeries(nil, 80), "No data yet.")
}

func TestRenderWeightSeriesShowsEveryWeight(t *testing.T) {
	out := ui.RenderWeightSeries(trendFixture(), 80)

	assert.Contains(t, out, "50.0 kg")
	assert.Contains(t, out, "70.0 kg")
	assert.Contains(t, out, "95.6 kg")
	assert.Equal(t, 3, len(strings.Split(out, "\n")))
}

func TestRenderWeightSeriesEmpty(t *testing.T) {
	assert.Contains(t, ui.RenderWeightSeries(nil, 80), "No data yet.")
}
