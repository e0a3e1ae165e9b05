package repo

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bmitrack/internal/models"
)

// RecordRepository defines storage for BMI calculations. There is no update
// or delete: the history is append-only.
type RecordRepository interface {
	Create(rec *models.BMIRecord) error
	HistoryByUsername(username string) ([]models.BMIRecord, error)
	DistinctUsernames() ([]string, error)
	CountByUsername(username string) (int64, error)
}

// GORMRecordRepository is the GORM implementation of RecordRepository.
type GORMRecordRepository struct{ db *gorm.DB }

func NewGORMRecordRepository(db *gorm.DB) *GORMRecordRepository {
	return &GORMRecordRepository{db: db}
}

func (r *GORMRecordRepository) Create(rec *models.BMIRecord) error {
	if rec.UUID == "" {
		rec.UUID = uuid.New().String()
	}
	return r.db.Create(rec).Error
}

// HistoryByUsername returns the user's records, most recent first.
func (r *GORMRecordRepository) HistoryByUsername(username string) ([]models.BMIRecord, error) {
	var recs []models.BMIRecord
	err := r.db.Where("username = ?", username).Order("timestamp DESC, id DESC").Find(&recs).Error
	return recs, err
}

func (r *GORMRecordRepository) DistinctUsernames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.BMIRecord{}).Distinct("username").Order("username ASC").Pluck("username", &names).Error
	return names, err
}

func (r *GORMRecordRepository) CountByUsername(username string) (int64, error) {
	var count int64
	return count, r.db.Model(&models.BMIRecord{}).Where("username = ?", username).Count(&count).Error
}
