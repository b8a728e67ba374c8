package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title          string      `gorm:"not null" json:"title"`
	Description    string      `json:"description"`
	EducatorID     uint        `gorm:"index" json:"educator_id"`
	TargetExam     string      `json:"target_exam"`
	Duration       string      `json:"duration"`        // e.g. "6 months"
	ValidityPeriod int         `json:"validity_period"` // days
	Price          float64     `json:"price"`
	Discount       float64     `json:"discount"`
	CourseType     string      `json:"course_type"` // Video, Live, Mixed, Text
	Lessons        []Lesson    `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
	Tests          []Test      `gorm:"foreignKey:CourseID" json:"tests,omitempty"`
	LiveClasses    []LiveClass `gorm:"foreignKey:CourseID" json:"live_classes,omitempty"`
}

type Lesson struct {
	gorm.Model
	CourseID    uint   `gorm:"index" json:"course_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Duration    int    `json:"duration"` // minutes
	OrderIndex  int    `json:"order_index"`
	LessonType  string `json:"lesson_type"` // video, text, pdf
	VideoURL    string `json:"video_url"`
}

type CourseUpdate struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Duration       *string  `json:"duration"`
	ValidityPeriod *int     `json:"validity_period"`
	Price          *float64 `json:"price"`
	Discount       *float64 `json:"discount"`
}

func (u CourseUpdate) Changes() map[string]interface{} {
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
	if u.ValidityPeriod != nil {
		changes["validity_period"] = *u.ValidityPeriod
	}
	if u.Price != nil {
		changes["price"] = *u.Price
	}
	if u.Discount != nil {
		changes["discount"] = *u.Discount
	}
	return changes
}

type LessonUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Duration    *int    `json:"duration"`
	OrderIndex  *int    `json:"order_index"`
	VideoURL    *string `json:"video_url"`
}

func (u LessonUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Content != nil {
		changes["content"] = *u.Content
	}
	if u.Duration != nil {
		changes["duration"] = *u.Duration
	}
	if u.OrderIndex != nil {
		changes["order_index"] = *u.OrderIndex
	}
	if u.VideoURL != nil {
		changes["video_url"] = *u.VideoURL
	}
	return changes
}
