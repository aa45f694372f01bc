package specification

import (
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BySubjectID struct {
	SubjectID uuid.UUID
}

func (s BySubjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject_id = ?", s.SubjectID)
}

type ByPaperType struct {
	PaperType string
}

func (s ByPaperType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("paper_type = ?", s.PaperType)
}

// OnDate matches rows whose calendar date equals Day.
type OnDate struct {
	Day stats.Day
}

func (s OnDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date = ?", datatypes.Date(s.Day.Time()))
}

// OnOrAfter matches rows dated Day or later.
type OnOrAfter struct {
	Day stats.Day
}

func (s OnOrAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date >= ?", datatypes.Date(s.Day.Time()))
}

type Completed struct {
	Value bool
}

func (s Completed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_completed = ?", s.Value)
}

type WeakTopic struct{}

func (s WeakTopic) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("weak_topic = ?", true)
}
