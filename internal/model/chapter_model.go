package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chapter struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	SubjectId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name        string         `gorm:"type:varchar(255);not null"`
	PaperType   string         `gorm:"type:varchar(20);not null"`
	IsCompleted bool           `gorm:"not null;default:false"`
	WeakTopic   bool           `gorm:"not null;default:false"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Chapter) TableName() string {
	return "chapters"
}

func (m *Chapter) BeforeCreate(*gorm.DB) error {
	ensureID(&m.Id)
	return nil
}
