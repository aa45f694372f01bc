package entity

import (
	"time"

	"github.com/google/uuid"
)

type Chapter struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	SubjectId   uuid.UUID
	Name        string
	PaperType   PaperType
	IsCompleted bool
	WeakTopic   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
