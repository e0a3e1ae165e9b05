package service

import (
	"math"

	"bmitrack/internal/bmi"
	"bmitrack/internal/models"
)

// Summary aggregates a user's history for the statistics view.
type Summary struct {
	Username       string
	Count          int
	LatestBMI      float64
	LatestCategory bmi.Category
	MinBMI         float64
	MaxBMI         float64
	AvgBMI         float64
	WeightChange   float64 // latest minus first recorded weight
}

// TrendPoint is one charted observation.
type TrendPoint struct {
	Timestamp string
	BMI       float64
	Weight    float64
}

// BuildSummary folds a most-recent-first history into a Summary. Empty
// history yields nil.
func BuildSummary(username string, recs []models.BMIRecord) *Summary {
	if len(recs) == 0 {
		return nil
	}
	latest := recs[0]
	first := recs[len(recs)-1]

	sum := 0.0
	min := recs[0].BMI
	max := recs[0].BMI
	for _, r := range recs {
		sum += r.BMI
		if r.BMI < min {
			min = r.BMI
		}
		if r.BMI > max {
			max = r.BMI
		}
	}

	return &Summary{
		Username:       username,
		Count:          len(recs),
		LatestBMI:      latest.BMI,
		LatestCategory: latest.Category,
		MinBMI:         min,
		MaxBMI:         max,
		AvgBMI:         math.Round(sum/float64(len(recs))*100) / 100,
		WeightChange:   math.Round((latest.Weight-first.Weight)*100) / 100,
	}
}

// TrendPoints reverses a most-recent-first history into the chronological
// order the charts draw in.
func TrendPoints(recs []models.BMIRecord) []TrendPoint {
	points := make([]TrendPoint, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		points = append(points, TrendPoint{
			Timestamp: recs[i].Timestamp,
			BMI:       recs[i].BMI,
			Weight:    recs[i].Weight,
		})
	}
	return points
}

// Summary loads and summarizes one user's history.
func (s *RecordService) Summary(username string) (*Summary, error) {
	recs, err := s.records.HistoryByUsername(username)
	if err != nil {
		return nil, err
	}
	return BuildSummary(username, recs), nil
}

// Trend loads one user's history in chart order.
func (s *RecordService) Trend(username string) ([]TrendPoint, error) {
	recs, err := s.records.HistoryByUsername(username)
	if err != nil {
		return nil, err
	}
	return TrendPoints(recs), nil
}
