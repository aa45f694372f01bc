package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DailyTask struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index:idx_task_user_date"`
	SubjectId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChapterId   *uuid.UUID     `gorm:"type:uuid"`
	Description string         `gorm:"type:text;not null"`
	Date        datatypes.Date `gorm:"not null;index:idx_task_user_date"`
	IsCompleted bool           `gorm:"not null;default:false"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (DailyTask) TableName() string {
	return "daily_tasks"
}

func (m *DailyTask) BeforeCreate(*gorm.DB) error {
	ensureID(&m.Id)
	return nil
}
