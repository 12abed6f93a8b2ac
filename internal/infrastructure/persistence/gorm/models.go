package gorm

import (
	"time"

	"github.com/google/uuid"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
)

// MediaRecordModel represents an uploaded media file in the database
type MediaRecordModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null"`
	Type            string    `gorm:"not null;index"`
	Duration        string    `gorm:"not null"`
	DurationSeconds int       `gorm:"not null;default:0"`
	Size            int64     `gorm:"not null;default:0"`
	SizeLabel       string
	MIMEType        string `gorm:"column:mime_type;not null"`
	StorageKey      string `gorm:"not null;uniqueIndex"`
	SourceURL       string
	ThumbnailURL    string
	CreatedAt       time.Time `gorm:"not null;index"`
}

// TableName pins the table name
func (MediaRecordModel) TableName() string {
	return "media_records"
}

// ToDomain converts a MediaRecordModel to a catalog record
func (m *MediaRecordModel) ToDomain() *catalog.MediaRecord {
	return &catalog.MediaRecord{
		ID:              m.ID,
		Name:            m.Name,
		Type:            timeline.ParseMediaType(m.Type),
		Duration:        m.Duration,
		DurationSeconds: m.DurationSeconds,
		Size:            m.Size,
		SizeLabel:       m.SizeLabel,
		MIMEType:        m.MIMEType,
		StorageKey:      m.StorageKey,
		SourceURL:       m.SourceURL,
		ThumbnailURL:    m.ThumbnailURL,
		CreatedAt:       m.CreatedAt,
	}
}

// FromDomain converts a catalog record to a MediaRecordModel
func (m *MediaRecordModel) FromDomain(r *catalog.MediaRecord) {
	m.ID = r.ID
	m.Name = r.Name
	m.Type = string(r.Type)
	m.Duration = r.Duration
	m.DurationSeconds = r.DurationSeconds
	m.Size = r.Size
	m.SizeLabel = r.SizeLabel
	m.MIMEType = r.MIMEType
	m.StorageKey = r.StorageKey
	m.SourceURL = r.SourceURL
	m.ThumbnailURL = r.ThumbnailURL
	m.CreatedAt = r.CreatedAt
}
