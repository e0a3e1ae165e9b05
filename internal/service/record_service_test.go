package service_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bmitrack/internal/bmi"
	"bmitrack/internal/models"
	"bmitrack/internal/service"
)

// MockRecordRepository is a mock implementation of repo.RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Create(rec *models.BMIRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockRecordRepository) HistoryByUsername(username string) ([]models.BMIRecord, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BMIRecord), args.Error(1)
}

func (m *MockRecordRepository) DistinctUsernames() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecordRepository) CountByUsername(username string) (int64, error) {
	args := m.Called(username)
	return args.Get(0).(int64), args.Error(1)
}

func TestCompute(t *testing.T) {
	svc := service.NewRecordService(new(MockRecordRepository))

	res, err := svc.Compute(70, 1.75)
	require.NoError(t, err)
	assert.Equal(t, 22.86, res.BMI)
	assert.Equal(t, bmi.NormalWeight, res.Category)

	res, err = svc.Compute(50, 1.8)
	require.NoError(t, err)
	assert.Equal(t, 15.43, res.BMI)
	assert.Equal(t, bmi.Underweight, res.Category)
}

func TestEvaluateSavesRecord(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	svc := service.NewRecordService(mockRepo)

	mockRepo.On("Create", mock.MatchedBy(func(rec *models.BMIRecord) bool {
		if rec.Username != "alice" || rec.Weight != 70 || rec.Height != 1.75 {
			return false
		}
		if rec.BMI != 22.86 || rec.Category != bmi.NormalWeight {
			return false
		}
		_, err := time.Parse(models.TimeLayout, rec.Timestamp)
		return err == nil
	})).Return(nil).Once()

	ev, err := svc.Evaluate("alice", 70, 1.75)
	require.NoError(t, err)
	assert.True(t, ev.Saved)
	assert.Equal(t, 22.86, ev.Record.BMI)
	mockRepo.AssertExpectations(t)
}

func TestEvaluatePersistFailureStillReturnsResult(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	svc := service.NewRecordService(mockRepo)

	mockRepo.On("Create", mock.Anything).Return(errors.New("disk full")).Once()

	ev, err := svc.Evaluate("alice", 70, 1.75)
	require.NoError(t, err, "a failed write must not hide the computed result")
	assert.False(t, ev.Saved)
	assert.Equal(t, 22.86, ev.Record.BMI)
	assert.Equal(t, bmi.NormalWeight, ev.Record.Category)
	mockRepo.AssertExpectations(t)
}

func TestEvaluateRequiresUsername(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	svc := service.NewRecordService(mockRepo)

	for _, name := range []string{"", "   "} {
		ev, err := svc.Evaluate(name, 70, 1.75)
		assert.ErrorIs(t, err, service.ErrUsernameRequired)
		assert.Nil(t, ev)
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestEvaluateInvalidInput(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	svc := service.NewRecordService(mockRepo)

	ev, err := svc.Evaluate("alice", 0, 1.75)
	assert.ErrorIs(t, err, bmi.ErrNotPositive)
	assert.Nil(t, ev)

	ev, err = svc.Evaluate("alice", 70, 2.6)
	assert.ErrorIs(t, err, bmi.ErrHeightTooHigh)
	assert.Nil(t, ev)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestHistoryAndUsernames(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	svc := service.NewRecordService(mockRepo)

	recs := []models.BMIRecord{{Username: "alice", BMI: 22.86}}
	mockRepo.On("HistoryByUsername", "alice").Return(recs, nil).Once()
	mockRepo.On("DistinctUsernames").Return([]string{"alice", "bob"}, nil).Once()

	got, err := svc.History("alice")
	require.NoError(t, err)
	assert.Equal(t, recs, got)

	names, err := svc.Usernames()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)
	mockRepo.AssertExpectations(t)
}

func TestExportJSON(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	svc := service.NewRecordService(mockRepo)

	recs := []models.BMIRecord{
		{ID: 2, UUID: "u2", Username: "alice", Weight: 71, Height: 1.75, BMI: 23.18, Category: bmi.NormalWeight, Timestamp: "2024-03-02 10:00:00"},
		{ID: 1, UUID: "u1", Username: "alice", Weight: 70, Height: 1.75, BMI: 22.86, Category: bmi.NormalWeight, Timestamp: "2024-03-01 10:00:00"},
	}
	mockRepo.On("HistoryByUsername", "alice").Return(recs, nil).Once()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportJSON("alice", &buf))

	var decoded []models.BMIRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, recs, decoded)
	mockRepo.AssertExpectations(t)
}

func TestExportJSONEmptyHistory(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	svc := service.NewRecordService(mockRepo)

	mockRepo.On("HistoryByUsername", "ghost").Return([]models.BMIRecord(nil), nil).Once()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportJSON("ghost", &buf))
	assert.JSONEq(t, "[]", buf.String())
}
