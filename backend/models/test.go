package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type Test struct {
	gorm.Model
	CourseID     uint           `gorm:"index" json:"course_id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Duration     int            `json:"duration"` // minutes
	TotalMarks   int            `json:"total_marks"`
	PassingMarks int            `json:"passing_marks"`
	TestType     string         `json:"test_type"` // mock, practice, chapter
	Questions    []TestQuestion `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

// TestQuestion stores its options as a serialized JSON list. Encoding and
// decoding happen here, at the model edge, so handlers only ever see []string.
type TestQuestion struct {
	gorm.Model
	TestID        uint   `gorm:"index" json:"test_id"`
	Question      string `gorm:"not null" json:"question"`
	Options       string `json:"-"`
	CorrectAnswer int    `json:"correct_answer"`
	Marks         int    `json:"marks"`
	Explanation   string `json:"explanation"`
}

func (q *TestQuestion) SetOptions(options []string) error {
	raw, err := json.Marshal(options)
	if err != nil {
		return err
	}
	q.Options = string(raw)
	return nil
}

func (q *TestQuestion) DecodedOptions() []string {
	var options []string
	if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
		return nil
	}
	return options
}

type TestUpdate struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Duration     *int    `json:"duration"`
	TotalMarks   *int    `json:"total_marks"`
	PassingMarks *int    `json:"passing_marks"`
}

func (u TestUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Duration != nil {
		changes["duration"] = *u.Duration
	}
	if u.TotalMarks != nil {
		changes["total_marks"] = *u.TotalMarks
	}
	if u.PassingMarks != nil {
		changes["passing_marks"] = *u.PassingMarks
	}
	return changes
}
