package models

// QueryType represents the topic of a contact form submission
type QueryType string

const (
	QueryTypeGeneral      QueryType = "general"
	QueryTypeProject      QueryType = "project"
	QueryTypeFreelance    QueryType = "freelance"
	QueryTypeJob          QueryType = "job"
	QueryTypeConsultation QueryType = "consultation"
	QueryTypeOther        QueryType = "other"
)

// ContactSubmission represents a validated contact form submission.
// It is never persisted; it is forwarded to the email relay and discarded.
type ContactSubmission struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Query   QueryType `json:"query"`
	Message string    `json:"message"`
}
