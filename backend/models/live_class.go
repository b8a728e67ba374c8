package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ClassStatusScheduled = "scheduled"
	ClassStatusLive      = "live"
	ClassStatusCompleted = "completed"
	ClassStatusCancelled = "cancelled"
)

type LiveClass struct {
	gorm.Model
	CourseID        uint                    `gorm:"index" json:"course_id"`
	Title           string                  `gorm:"not null" json:"title"`
	Description     string                  `json:"description"`
	ScheduledTime   time.Time               `json:"scheduled_time"`
	Duration        int                     `json:"duration"` // minutes
	MeetingURL      string                  `json:"meeting_url"`
	MaxParticipants int                     `gorm:"default:100" json:"max_participants"`
	Status          string                  `gorm:"default:scheduled" json:"status"`
	Registrations   []LiveClassRegistration `gorm:"foreignKey:ClassID" json:"registrations,omitempty"`
}

type LiveClassRegistration struct {
	gorm.Model
	UserID       uint      `gorm:"index" json:"user_id"`
	ClassID      uint      `gorm:"index" json:"class_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

type LiveClassUpdate struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	ScheduledTime   *time.Time `json:"scheduled_time"`
	Duration        *int       `json:"duration"`
	MeetingURL      *string    `json:"meeting_url"`
	MaxParticipants *int       `json:"max_participants"`
	Status          *string    `json:"status"`
}

func (u LiveClassUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.ScheduledTime != nil {
		changes["scheduled_time"] = *u.ScheduledTime
	}
	if u.Duration != nil {
		changes["duration"] = *u.Duration
	}
	if u.MeetingURL != nil {
		changes["meeting_url"] = *u.MeetingURL
	}
	if u.MaxParticipants != nil {
		changes["max_participants"] = *u.MaxParticipants
	}
	if u.Status != nil {
		changes["status"] = *u.Status
	}
	return changes
}
