package dto

import (
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
)

type SubjectProgress struct {
	SubjectId uuid.UUID            `json:"subject_id"`
	Name      string               `json:"name"`
	Progress  stats.ProgressResult `json:"progress"`
}

type DashboardResponse struct {
	TodayMinutes   int               `json:"today_minutes"`
	TodayFormatted string            `json:"today_formatted"`
	Streak         int               `json:"streak"`
	Countdown      stats.Remaining   `json:"countdown"`
	ExamDate       string            `json:"exam_date"`
	Progress       []SubjectProgress `json:"progress"`
	TodayTasks     []TaskResponse    `json:"today_tasks"`
}

type TrackerSubject struct {
	SubjectProgress
	Chapters []ChapterResponse `json:"chapters"`
}

type PeriodSummary struct {
	TotalMinutes   int    `json:"total_minutes"`
	Formatted      string `json:"formatted"`
	SessionCount   int    `json:"session_count"`
	CompletedTasks int    `json:"completed_tasks"`
	AverageDaily   int    `json:"average_daily,omitempty"`
	Streak         int    `json:"streak,omitempty"`
}

type TrackerResponse struct {
	Subjects       []TrackerSubject  `json:"subjects"`
	Weekly         PeriodSummary     `json:"weekly"`
	Monthly        PeriodSummary     `json:"monthly"`
	RecentSessions []SessionResponse `json:"recent_sessions"`
}

type PlannerSubject struct {
	SubjectId        uuid.UUID `json:"subject_id"`
	Name             string    `json:"name"`
	TotalChapters    int       `json:"total_chapters"`
	Remaining        int       `json:"remaining"`
	ChaptersPerMonth int       `json:"chapters_per_month"`
}

type PlannerResponse struct {
	Countdown        stats.Remaining  `json:"countdown"`
	ExamDate         string           `json:"exam_date"`
	MonthsLeft       int              `json:"months_left"`
	Months           []string         `json:"months"`
	Subjects         []PlannerSubject `json:"subjects"`
	PrioritySubjects []PlannerSubject `json:"priority_subjects"`
	UpcomingTasks    []TaskResponse   `json:"upcoming_tasks"`
}
