package dto

import (
	"time"

	"github.com/google/uuid"
)

type TaskResponse struct {
	Id          uuid.UUID  `json:"id"`
	SubjectId   uuid.UUID  `json:"subject_id"`
	ChapterId   *uuid.UUID `json:"chapter_id,omitempty"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	IsCompleted bool       `json:"is_completed"`
}

type CreateTaskRequest struct {
	SubjectId   string `json:"subject_id" validate:"required,uuid"`
	ChapterId   string `json:"chapter_id" validate:"omitempty,uuid"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Description string `json:"description" validate:"required"`
	ChapterId   string `json:"chapter_id" validate:"omitempty,uuid"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type SessionResponse struct {
	Id          uuid.UUID `json:"id"`
	SubjectId   uuid.UUID `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	Date        string    `json:"date"`
	Duration    int       `json:"duration"`
	Formatted   string    `json:"formatted"`
	CreatedAt   time.Time `json:"created_at"`
}

type RecordSessionRequest struct {
	SubjectId string `json:"subject_id" validate:"required,uuid"`
	Duration  int    `json:"duration" validate:"min=0"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
