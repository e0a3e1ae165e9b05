package models

import (
	"time"

	"bmitrack/internal/bmi"
)

// TimeLayout is the storage format of BMIRecord.Timestamp. String ordering
// of this layout matches chronological ordering, which the history query
// relies on.
const TimeLayout = "2006-01-02 15:04:05"

// BMIRecord is one persisted calculation. Records are append-only; nothing
// in the application updates or deletes them once written.
type BMIRecord struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UUID      string       `gorm:"uniqueIndex;size:36" json:"uuid"`
	Username  string       `gorm:"index;size:191;not null" json:"username"`
	Weight    float64      `gorm:"not null" json:"weight_kg"`
	Height    float64      `gorm:"not null" json:"height_m"`
	BMI       float64      `gorm:"column:bmi;not null" json:"bmi"`
	Category  bmi.Category `gorm:"size:32;not null" json:"category"`
	Timestamp string       `gorm:"size:32;not null" json:"timestamp"`
	CreatedAt time.Time    `json:"created_at"`
}

func (BMIRecord) TableName() string { return "bmi_records" }

// Time parses the stored timestamp.
func (r BMIRecord) Time() (time.Time, error) {
	return time.Parse(TimeLayout, r.Timestamp)
}
