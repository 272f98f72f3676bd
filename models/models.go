package models

import "time"

// User represents a registered account. The registration path exists at the
// storage level only; no HTTP endpoint exposes it yet.
type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// QuestionSession records one question-to-solution exchange. Sessions are
// created exactly once, at solution-generation time, and never mutated.
// Optional fields are pointers so an absent value serializes as JSON null.
type QuestionSession struct {
	ID            string    `json:"id" db:"id"`
	OriginalText  string    `json:"originalText" db:"original_text"`
	ExtractedText *string   `json:"extractedText" db:"extracted_text"`
	Solutions     *string   `json:"solutions" db:"solutions"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
