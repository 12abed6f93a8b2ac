package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
)

// MediaRepository implements catalog.Repository
type MediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new GORM media repository
func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Save persists a media record to the database
func (r *MediaRepository) Save(ctx context.Context, record *catalog.MediaRecord) error {
	model := &MediaRecordModel{}
	model.FromDomain(record)

	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID retrieves a media record by its ID
func (r *MediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MediaRecord, error) {
	var model MediaRecordModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrMediaNotFound
		}
		return nil, result.Error
	}

	return model.ToDomain(), nil
}

// FindAll retrieves every media record, oldest first
func (r *MediaRepository) FindAll(ctx context.Context) ([]*catalog.MediaRecord, error) {
	var models []MediaRecordModel
	result := r.db.WithContext(ctx).Order("created_at ASC").Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*catalog.MediaRecord, len(models))
	for i := range models {
		records[i] = models[i].ToDomain()
	}
	return records, nil
}

// Delete removes a media record
func (r *MediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&MediaRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrMediaNotFound
	}
	return nil
}
