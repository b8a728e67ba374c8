package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name              string `gorm:"not null" json:"name"`
	Email             string `gorm:"unique;not null" json:"email"`
	Password          string `gorm:"not null" json:"-"` // bcrypt hash
	TargetExam        string `json:"target_exam"`       // JEE, NEET, GATE, UPSC, CAT, GRE, GMAT, IELTS, TOEFL
	PreferredLanguage string `json:"preferred_language"`
	PreparationLevel  string `json:"preparation_level"` // Beginner, Intermediate, Advanced
}

// UserUpdate carries the profile fields a user may change. Anything else in
// the request body is dropped.
type UserUpdate struct {
	Name              *string `json:"name"`
	TargetExam        *string `json:"target_exam"`
	PreferredLanguage *string `json:"preferred_language"`
	PreparationLevel  *string `json:"preparation_level"`
}

func (u UserUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.TargetExam != nil {
		changes["target_exam"] = *u.TargetExam
	}
	if u.PreferredLanguage != nil {
		changes["preferred_language"] = *u.PreferredLanguage
	}
	if u.PreparationLevel != nil {
		changes["preparation_level"] = *u.PreparationLevel
	}
	return changes
}
