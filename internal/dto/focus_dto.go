package dto

import (
	"exam-prep-be/pkg/focus"

	"github.com/google/uuid"
)

type FocusModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=pomodoro long custom"`
}

// FocusSubjectRequest selects what the running session counts towards. An empty id clears it.
type FocusSubjectRequest struct {
	SubjectId string `json:"subject_id" validate:"omitempty,uuid"`
}

type FocusResponse struct {
	focus.Snapshot
	Clock     string `json:"clock"`
	ModeLabel string `json:"mode_label"`
}

// FocusCompletedMessage is published on the in-process bus when a timer with a subject expires.
type FocusCompletedMessage struct {
	UserId    uuid.UUID `json:"user_id"`
	SubjectId uuid.UUID `json:"subject_id"`
	Mode      string    `json:"mode"`
	Minutes   int       `json:"minutes"`
	Date      string    `json:"date"`
}
