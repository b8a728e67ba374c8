package models

import "gorm.io/gorm"

type Educator struct {
	gorm.Model
	Name          string   `gorm:"not null" json:"name"`
	Email         string   `gorm:"unique;not null" json:"email"`
	Bio           string   `json:"bio"`
	Expertise     string   `json:"expertise"`
	Experience    int      `json:"experience"` // years
	Qualification string   `json:"qualification"`
	Courses       []Course `gorm:"foreignKey:EducatorID" json:"courses,omitempty"`
}

type EducatorUpdate struct {
	Name          *string `json:"name"`
	Bio           *string `json:"bio"`
	Expertise     *string `json:"expertise"`
	Experience    *int    `json:"experience"`
	Qualification *string `json:"qualification"`
}

func (u EducatorUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Bio != nil {
		changes["bio"] = *u.Bio
	}
	if u.Expertise != nil {
		changes["expertise"] = *u.Expertise
	}
	if u.Experience != nil {
		changes["experience"] = *u.Experience
	}
	if u.Qualification != nil {
		changes["qualification"] = *u.Qualification
	}
	return changes
}
