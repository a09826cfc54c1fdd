package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/mvarma/portfolio-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate

	// nameRegex allows letters (including Latin diacritic ranges), spaces,
	// hyphens, apostrophes and periods.
	nameRegex = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\x{0100}-\x{017F}\x{0180}-\x{024F}\x{1E00}-\x{1EFF}\s\-'.]+$`)
)

func init() {
	Validate = validator.New()

	// Register custom validators for form fields
	// These should never fail in normal operation, but panic loudly if they do
	if err := Validate.RegisterValidation("person_name", validatePersonName); err != nil {
		panic(fmt.Sprintf("failed to register person_name validator: %v", err))
	}
	if err := Validate.RegisterValidation("query_type", validateQueryType); err != nil {
		panic(fmt.Sprintf("failed to register query_type validator: %v", err))
	}
}

// validatePersonName validates that a string contains only name characters
func validatePersonName(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}

// validateQueryType validates that a string is a valid QueryType enum value
func validateQueryType(fl validator.FieldLevel) bool {
	switch models.QueryType(fl.Field().String()) {
	case models.QueryTypeGeneral, models.QueryTypeProject, models.QueryTypeFreelance,
		models.QueryTypeJob, models.QueryTypeConsultation, models.QueryTypeOther:
		return true
	default:
		return false
	}
}

// ContactForm carries the contact form fields and their structural rules.
type ContactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=50,person_name"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Query   string `json:"query" validate:"required,query_type"`
	Message string `json:"message" validate:"required,min=10,max=500"`
}

// NewsletterForm carries the newsletter signup fields and their structural rules.
type NewsletterForm struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// fieldMessages maps form field + violated rule to a human-readable message.
// Only the first violated rule per field is reported.
var fieldMessages = map[string]map[string]string{
	"Name": {
		"required":    "Name is required",
		"min":         "Name must be at least 2 characters",
		"max":         "Name must be less than 50 characters",
		"person_name": "Name can only contain letters, spaces, hyphens, and apostrophes",
	},
	"Email": {
		"required": "Email is required",
		"email":    "Please enter a valid email address",
		"max":      "Email address is too long",
	},
	"Query": {
		"required":   "Please select a query type",
		"query_type": "Please select a query type",
	},
	"Message": {
		"required": "Message is required",
		"min":      "Message must be at least 10 characters",
		"max":      "Message must be less than 500 characters",
	},
}

// FieldErrors converts a validator error into one message per invalid field.
// A non-validator error yields a single generic entry.
func FieldErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"Validation failed"}
	}

	seen := make(map[string]bool)
	var messages []string
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		if seen[field] {
			continue
		}
		seen[field] = true

		if msg, found := fieldMessages[field][fieldError.Tag()]; found {
			messages = append(messages, msg)
		} else {
			messages = append(messages, fmt.Sprintf("Invalid value for %s", strings.ToLower(field)))
		}
	}
	return messages
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
