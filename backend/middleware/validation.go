package middleware

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Password complexity: at least one lower, upper, digit and special character.
	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var lower, upper, digit, special bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			case strings.ContainsRune("@$!%*?&", r):
				special = true
			}
		}
		return lower && upper && digit && special
	})
	// Letters and spaces only, for person names.
	v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		for _, r := range name {
			if !unicode.IsLetter(r) && r != ' ' {
				return false
			}
		}
		return name != ""
	})
	return v
}

type RegisterInput struct {
	Name              string `json:"name" validate:"required,min=2,max=50,personname"`
	Email             string `json:"email" validate:"required,email,max=100"`
	Password          string `json:"password" validate:"required,min=8,max=128,password"`
	TargetExam        string `json:"targetExam" validate:"required,oneof=JEE NEET GATE UPSC CAT GRE GMAT IELTS TOEFL"`
	PreferredLanguage string `json:"preferredLanguage" validate:"required,oneof=English Hindi Telugu Tamil Malayalam Kannada Bengali"`
	PreparationLevel  string `json:"preparationLevel" validate:"required,oneof=Beginner Intermediate Advanced"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CourseInput struct {
	Title          string  `json:"title" validate:"required,min=3,max=200"`
	Description    string  `json:"description" validate:"required,min=10,max=1000"`
	EducatorID     int     `json:"educatorId" validate:"required,gt=0"`
	TargetExam     string  `json:"targetExam" validate:"required,oneof=JEE NEET GATE UPSC CAT GRE GMAT IELTS TOEFL"`
	Duration       string  `json:"duration" validate:"required"`
	ValidityPeriod int     `json:"validityPeriod" validate:"required,gt=0"`
	Price          float64 `json:"price" validate:"gte=0"`
	Discount       float64 `json:"discount" validate:"gte=0"`
	CourseType     string  `json:"courseType" validate:"required,oneof=Video Live Mixed Text"`
}

// ValidExam reports whether the value is a supported target exam.
func ValidExam(exam string) bool {
	switch exam {
	case "JEE", "NEET", "GATE", "UPSC", "CAT", "GRE", "GMAT", "IELTS", "TOEFL":
		return true
	}
	return false
}

// Validate runs struct-tag validation and flattens the result into per-field
// messages suitable for the error envelope.
func Validate(input interface{}) []string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(invalid))
	for _, fe := range invalid {
		messages = append(messages, fieldMessage(fe))
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please provide a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "password":
		return "Password must contain at least one uppercase, lowercase, number, and special character"
	case "personname":
		return fmt.Sprintf("%s must contain only letters and spaces", field)
	case "gt", "gte":
		return fmt.Sprintf("%s must be a non-negative number", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
