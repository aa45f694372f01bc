package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note holds one free-text note per (user, subject, paper). Rows are upserted, never soft-deleted.
type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_owner"`
	SubjectId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_owner"`
	PaperType string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_note_owner"`
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}

func (m *Note) BeforeCreate(*gorm.DB) error {
	ensureID(&m.Id)
	return nil
}
