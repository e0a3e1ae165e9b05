package service

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"bmitrack/internal/bmi"
	"bmitrack/internal/logger"
	"bmitrack/internal/models"
	"bmitrack/internal/repo"
)

var ErrUsernameRequired = errors.New("please enter a username")

type RecordService struct {
	records repo.RecordRepository
	now     func() time.Time
}

func NewRecordService(records repo.RecordRepository) *RecordService {
	return &RecordService{records: records, now: time.Now}
}

// Result is one computed measurement before persistence.
type Result struct {
	Weight   float64
	Height   float64
	BMI      float64
	Category bmi.Category
}

// Compute validates, calculates and classifies without touching the store.
// The command-line loop uses this when no username was given.
func (s *RecordService) Compute(weight, height float64) (*Result, error) {
	value, err := bmi.Calculate(weight, height)
	if err != nil {
		return nil, err
	}
	return &Result{Weight: weight, Height: height, BMI: value, Category: bmi.Classify(value)}, nil
}

// Evaluation is a computed result plus the outcome of persisting it.
type Evaluation struct {
	Record models.BMIRecord
	Saved  bool
}

// Evaluate computes one calculation for username and appends it to the
// store. A failed write does not fail the evaluation: the result still
// returns with Saved false, and the cause goes to the log.
func (s *RecordService) Evaluate(username string, weight, height float64) (*Evaluation, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	res, err := s.Compute(weight, height)
	if err != nil {
		return nil, err
	}

	ev := &Evaluation{
		Record: models.BMIRecord{
			Username:  username,
			Weight:    weight,
			Height:    height,
			BMI:       res.BMI,
			Category:  res.Category,
			Timestamp: s.now().Format(models.TimeLayout),
		},
	}
	if err := s.records.Create(&ev.Record); err != nil {
		logger.Errorf("Persist bmi record for %s failed: %v", username, err)
		return ev, nil
	}
	ev.Saved = true
	return ev, nil
}

// History returns the user's records, most recent first.
func (s *RecordService) History(username string) ([]models.BMIRecord, error) {
	return s.records.HistoryByUsername(username)
}

// Usernames returns every user that has at least one record, sorted.
func (s *RecordService) Usernames() ([]string, error) {
	return s.records.DistinctUsernames()
}

// ExportJSON writes the user's history, most recent first, as indented JSON.
func (s *RecordService) ExportJSON(username string, w io.Writer) error {
	recs, err := s.records.HistoryByUsername(username)
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []models.BMIRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
