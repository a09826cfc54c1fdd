package validation

import (
	"strings"
	"testing"
)

func validContactForm() ContactForm {
	return ContactForm{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Query:   "general",
		Message: "I would like to discuss a project with you.",
	}
}

func TestContactForm_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*ContactForm)
	}{
		{name: "plain ascii name", mutate: func(f *ContactForm) {}},
		{name: "name with diacritics", mutate: func(f *ContactForm) { f.Name = "José García" }},
		{name: "name with apostrophe and hyphen", mutate: func(f *ContactForm) { f.Name = "Anne-Marie O'Brien" }},
		{name: "name with period", mutate: func(f *ContactForm) { f.Name = "J. R. Tolkien" }},
		{name: "minimum length message", mutate: func(f *ContactForm) { f.Message = strings.Repeat("a", 10) }},
		{name: "maximum length message", mutate: func(f *ContactForm) { f.Message = strings.Repeat("a", 500) }},
		{name: "every query type", mutate: func(f *ContactForm) { f.Query = "consultation" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form := validContactForm()
			tt.mutate(&form)
			if err := Validate.Struct(form); err != nil {
				t.Errorf("expected valid form, got error: %v", err)
			}
		})
	}
}

func TestContactForm_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(*ContactForm)
		wantMessage string
	}{
		{
			name:        "name too short",
			mutate:      func(f *ContactForm) { f.Name = "J" },
			wantMessage: "Name must be at least 2 characters",
		},
		{
			name:        "name too long",
			mutate:      func(f *ContactForm) { f.Name = strings.Repeat("a", 51) },
			wantMessage: "Name must be less than 50 characters",
		},
		{
			name:        "name with digits",
			mutate:      func(f *ContactForm) { f.Name = "Jane123" },
			wantMessage: "Name can only contain letters, spaces, hyphens, and apostrophes",
		},
		{
			name:        "missing email",
			mutate:      func(f *ContactForm) { f.Email = "" },
			wantMessage: "Email is required",
		},
		{
			name:        "malformed email",
			mutate:      func(f *ContactForm) { f.Email = "not-an-email" },
			wantMessage: "Please enter a valid email address",
		},
		{
			name:        "email too long",
			mutate:      func(f *ContactForm) { f.Email = strings.Repeat("a", 95) + "@example.com" },
			wantMessage: "Email address is too long",
		},
		{
			name:        "unknown query type",
			mutate:      func(f *ContactForm) { f.Query = "spam" },
			wantMessage: "Please select a query type",
		},
		{
			name:        "missing query type",
			mutate:      func(f *ContactForm) { f.Query = "" },
			wantMessage: "Please select a query type",
		},
		{
			name:        "message too short",
			mutate:      func(f *ContactForm) { f.Message = "too short" },
			wantMessage: "Message must be at least 10 characters",
		},
		{
			name:        "message too long",
			mutate:      func(f *ContactForm) { f.Message = strings.Repeat("a", 501) },
			wantMessage: "Message must be less than 500 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form := validContactForm()
			tt.mutate(&form)

			err := Validate.Struct(form)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			messages := FieldErrors(err)
			found := false
			for _, msg := range messages {
				if msg == tt.wantMessage {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("FieldErrors = %v, want to contain %q", messages, tt.wantMessage)
			}
		})
	}
}

func TestFieldErrors_OneMessagePerField(t *testing.T) {
	t.Parallel()

	// Name violates both min and person_name; only one message should appear.
	form := validContactForm()
	form.Name = "7"

	err := Validate.Struct(form)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	messages := FieldErrors(err)
	if len(messages) != 1 {
		t.Errorf("expected 1 message, got %d: %v", len(messages), messages)
	}
}

func TestNewsletterForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "reader@example.com", wantErr: false},
		{name: "missing email", email: "", wantErr: true},
		{name: "malformed email", email: "not-an-email", wantErr: true},
		{name: "email too long", email: strings.Repeat("a", 250) + "@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate.Struct(NewsletterForm{Email: tt.email})
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims whitespace", input: "  hello  ", want: "hello"},
		{name: "strips control characters", input: "hel\x00lo", want: "hello"},
		{name: "keeps newlines and tabs", input: "line1\n\tline2", want: "line1\n\tline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
