// Package adapters provides repository implementations for the activity feature.
package adapters

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"vitality_backend/internal/feature/activity/domain/entity"
	"vitality_backend/internal/feature/activity/usecase"
)

// ActivityModel is the GORM model for the activity_logs table.
type ActivityModel struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	EventType string    `gorm:"size:64;index;not null"`
	IPAddress string    `gorm:"size:45"` // IPv6 max length
	Title     string    `gorm:"size:255"`
	Metadata  string    `gorm:"type:text"` // JSON-encoded map
	CreatedAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (ActivityModel) TableName() string {
	return "activity_logs"
}

// activityMySQL is a MySQL implementation of the ActivityRepository interface.
type activityMySQL struct {
	db *gorm.DB
}

// Compile-time check to ensure activityMySQL implements ActivityRepository.
var _ usecase.ActivityRepository = (*activityMySQL)(nil)

// NewActivityMySQL creates a new instance of activityMySQL.
func NewActivityMySQL(db *gorm.DB) *activityMySQL {
	return &activityMySQL{db: db}
}

// Insert appends an audit entry. Entries are write-once; no update path exists.
func (r *activityMySQL) Insert(ctx context.Context, entry *entity.ActivityLogEntry) error {
	metadata := ""
	if len(entry.Metadata) > 0 {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
		metadata = string(raw)
	}

	model := &ActivityModel{
		ID:        entry.ID,
		EventType: entry.EventType,
		IPAddress: entry.IPAddress,
		Title:     entry.Title,
		Metadata:  metadata,
		CreatedAt: entry.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}
