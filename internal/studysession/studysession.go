package studysession

import "time"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type Group struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type StudyActivity struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

type Word struct {
	ID      int64  `json:"id" yaml:"id"`
	Kanji   string `json:"kanji" yaml:"kanji"`
	Romaji  string `json:"romaji" yaml:"romaji"`
	English string `json:"english" yaml:"english"`
}

// Catalog is the reference data sessions and reviews point at.
type Catalog struct {
	Groups          []Group         `yaml:"groups"`
	StudyActivities []StudyActivity `yaml:"study_activities"`
	Words           []Word          `yaml:"words"`
}

// Session is a study session joined with its group and activity names.
// ReviewItemsCount is counted live from word_review_items on every read.
type Session struct {
	ID               int64
	GroupID          int64
	GroupName        string
	ActivityID       int64
	ActivityName     string
	StartTime        time.Time
	EndTime          *time.Time
	ReviewItemsCount int
}

// SessionWord is one word reviewed in a session with counts scoped to that session.
type SessionWord struct {
	Word
	CorrectCount int
	WrongCount   int
}

// WordStats is a word with its rollup counts across all sessions.
type WordStats struct {
	Word
	CorrectCount int
	WrongCount   int
}

type CreateSessionInput struct {
	GroupID         *int64 `json:"group_id" validate:"required"`
	StudyActivityID *int64 `json:"study_activity_id" validate:"required"`
}

// SessionUpdate lists the attributes a partial update may change. Nil fields are
// left untouched.
type SessionUpdate struct {
	GroupID         *int64     `json:"group_id"`
	StudyActivityID *int64     `json:"study_activity_id"`
	EndTime         *time.Time `json:"end_time"`
}

func (u SessionUpdate) Empty() bool {
	return u.GroupID == nil && u.StudyActivityID == nil && u.EndTime == nil
}

type ReviewInput struct {
	WordID   *int64  `json:"word_id" validate:"required"`
	Correct  *bool   `json:"correct" validate:"required"`
	Response *string `json:"response,omitempty"`
}

// Review is a validated ReviewInput ready to be stored.
type Review struct {
	WordID   int64
	Correct  bool
	Response *string
}

type Page struct {
	Page    int
	PerPage int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type SessionPage struct {
	Items      []Session
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

type SessionDetail struct {
	Session    Session
	Words      []SessionWord
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}
