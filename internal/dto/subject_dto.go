package dto

import (
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
)

type SubjectResponse struct {
	Id            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Papers        []string             `json:"papers"`
	TotalChapters int                  `json:"total_chapters"`
	Progress      stats.ProgressResult `json:"progress"`
}

type ChapterResponse struct {
	Id          uuid.UUID `json:"id"`
	SubjectId   uuid.UUID `json:"subject_id"`
	Name        string    `json:"name"`
	PaperType   string    `json:"paper_type"`
	IsCompleted bool      `json:"is_completed"`
	WeakTopic   bool      `json:"weak_topic"`
}

// SubjectSpaceResponse is one subject seen through one of its papers.
type SubjectSpaceResponse struct {
	Subject    SubjectResponse   `json:"subject"`
	Paper      string            `json:"paper"`
	Chapters   []ChapterResponse `json:"chapters"`
	WeakTopics []ChapterResponse `json:"weak_topics"`
	Note       string            `json:"note"`
}

type CreateChapterRequest struct {
	Name      string `json:"name" validate:"required"`
	PaperType string `json:"paper_type" validate:"required,oneof=first second single"`
}

type UpdateChapterRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpsertNoteRequest struct {
	Content string `json:"content"`
}

type NoteResponse struct {
	SubjectId uuid.UUID `json:"subject_id"`
	PaperType string    `json:"paper_type"`
	Content   string    `json:"content"`
}
