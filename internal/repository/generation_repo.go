package repository

import (
	"github.com/cantouch/socialflow-backend/internal/domain"
	"gorm.io/gorm"
)

// GenerationRepository handles generation history data operations
type GenerationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository creates a new GenerationRepository
func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

// Create saves a new generation record
func (r *GenerationRepository) Create(rec *domain.GenerationRecord) error {
	return r.db.Create(rec).Error
}

// ListRecent retrieves the most recent generation records
func (r *GenerationRepository) ListRecent(limit int) ([]domain.GenerationRecord, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var records []domain.GenerationRecord
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
