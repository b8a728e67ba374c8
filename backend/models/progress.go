package models

import "gorm.io/gorm"

const (
	ProgressTypeLesson = "lesson"
	ProgressTypeTest   = "test"

	ProgressStatusStarted   = "started"
	ProgressStatusCompleted = "completed"
)

type Progress struct {
	gorm.Model
	UserID       uint     `gorm:"index" json:"user_id"`
	CourseID     uint     `gorm:"index" json:"course_id"`
	LessonID     *uint    `json:"lesson_id,omitempty"`
	TestID       *uint    `json:"test_id,omitempty"`
	ProgressType string   `json:"progress_type"` // lesson, test
	Status       string   `json:"status"`
	Score        *float64 `json:"score,omitempty"`
	TimeSpent    int      `json:"time_spent"` // minutes
}

// CompletionStats is the derived completion block for a (user, course) pair.
type CompletionStats struct {
	TotalLessons     int64   `json:"totalLessons"`
	TotalTests       int64   `json:"totalTests"`
	CompletedLessons int64   `json:"completedLessons"`
	CompletedTests   int64   `json:"completedTests"`
	CompletionRate   float64 `json:"completionRate"`
}

type ProgressUpdate struct {
	Status    *string  `json:"status"`
	Score     *float64 `json:"score"`
	TimeSpent *int     `json:"time_spent"`
}

func (u ProgressUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Status != nil {
		changes["status"] = *u.Status
	}
	if u.Score != nil {
		changes["score"] = *u.Score
	}
	if u.TimeSpent != nil {
		changes["time_spent"] = *u.TimeSpent
	}
	return changes
}
