package domain

import "time"

// GenerationRecord is one content-generation attempt persisted for history
type GenerationRecord struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BrandName   string    `gorm:"column:brand_name" json:"brand_name"`
	Topic       string    `gorm:"column:topic" json:"topic"`
	Platforms   string    `gorm:"column:platforms;type:json" json:"platforms"`
	Model       string    `gorm:"column:model" json:"model"`
	Status      string    `gorm:"column:status" json:"status"` // success, failed
	ErrorDetail string    `gorm:"column:error_detail" json:"error_detail,omitempty"`
	DurationMs  int64     `gorm:"column:duration_ms" json:"duration_ms"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name
func (GenerationRecord) TableName() string {
	return "sf_generation_history"
}
