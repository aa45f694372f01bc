package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Subject struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Name          string                      `gorm:"type:varchar(100);not null"`
	Papers        datatypes.JSONSlice[string] `gorm:"not null"`
	TotalChapters int                         `gorm:"not null;default:0"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt              `gorm:"index"`
}

func (Subject) TableName() string {
	return "subjects"
}

func (m *Subject) BeforeCreate(*gorm.DB) error {
	ensureID(&m.Id)
	return nil
}
