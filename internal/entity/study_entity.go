package entity

import (
	"time"

	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
)

type StudySession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SubjectId uuid.UUID
	Date      stats.Day
	Duration  int // minutes
	CreatedAt time.Time
}

type Task struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	SubjectId   uuid.UUID
	ChapterId   *uuid.UUID
	Description string
	Date        stats.Day
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Note struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SubjectId uuid.UUID
	PaperType PaperType
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
