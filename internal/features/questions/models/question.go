package models

import (
	"strings"
	"time"
)

// Question represents a stored FAQ entry
type Question struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Keywords  string    `json:"keywords"`
	Category  string    `json:"category"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestionCreate represents the data needed to add a question
type QuestionCreate struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Keywords  string `json:"keywords"`
	Category  string `json:"category"`
	CreatedBy string `json:"created_by"`
}

// Normalize trims every field and fills in the anonymous author
func (q *QuestionCreate) Normalize() {
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.TrimSpace(q.Answer)
	q.Keywords = strings.TrimSpace(q.Keywords)
	q.Category = strings.TrimSpace(q.Category)
	q.CreatedBy = strings.TrimSpace(q.CreatedBy)
	if q.CreatedBy == "" {
		q.CreatedBy = AnonymousAuthor
	}
}

// Missing returns the names of required fields that are empty
func (q *QuestionCreate) Missing() []string {
	var missing []string
	if q.Question == "" {
		missing = append(missing, "question")
	}
	if q.Answer == "" {
		missing = append(missing, "answer")
	}
	if q.Category == "" {
		missing = append(missing, "category")
	}
	return missing
}

// AnonymousAuthor is recorded when a question has no author
const AnonymousAuthor = "anonymous"

// ListParams bounds a page of questions
type ListParams struct {
	Limit  int
	Offset int
}

// DefaultListLimit is the page size when none is given
const DefaultListLimit = 50

// MaxListLimit caps a single page
const MaxListLimit = 1000
