package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaperType string

const (
	PaperFirst  PaperType = "first"
	PaperSecond PaperType = "second"
	PaperSingle PaperType = "single"
)

func ParsePaperType(s string) (PaperType, error) {
	switch p := PaperType(s); p {
	case PaperFirst, PaperSecond, PaperSingle:
		return p, nil
	}
	return "", fmt.Errorf("unknown paper type %q", s)
}

type Subject struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Name          string
	Papers        []PaperType
	TotalChapters int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *Subject) HasPaper(p PaperType) bool {
	for _, paper := range s.Papers {
		if paper == p {
			return true
		}
	}
	return false
}

// DefaultPaper is the paper shown when none is requested.
func (s *Subject) DefaultPaper() PaperType {
	if len(s.Papers) == 0 {
		return PaperSingle
	}
	return s.Papers[0]
}

type SubjectTemplate struct {
	Name   string
	Papers []PaperType
}

// DefaultSubjects is the catalogue every new account starts with.
var DefaultSubjects = []SubjectTemplate{
	{Name: "Bangla", Papers: []PaperType{PaperFirst, PaperSecond}},
	{Name: "English", Papers: []PaperType{PaperFirst, PaperSecond}},
	{Name: "Physics", Papers: []PaperType{PaperFirst, PaperSecond}},
	{Name: "Chemistry", Papers: []PaperType{PaperFirst, PaperSecond}},
	{Name: "Higher Math", Papers: []PaperType{PaperFirst, PaperSecond}},
	{Name: "Biology", Papers: []PaperType{PaperFirst, PaperSecond}},
	{Name: "ICT", Papers: []PaperType{PaperSingle}},
}
