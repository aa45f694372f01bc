package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudySession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_session_user_date"`
	SubjectId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Date      datatypes.Date `gorm:"not null;index:idx_session_user_date"`
	Duration  int            `gorm:"not null;default:0"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

func (m *StudySession) BeforeCreate(*gorm.DB) error {
	ensureID(&m.Id)
	return nil
}
