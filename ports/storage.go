package ports

import (
	"context"

	"qsolve/models"
)

// Storage defines the interface for user and question-session persistence.
// Implementations own their records exclusively; callers never mutate a
// returned value in place.
type Storage interface {
	// CreateUser stores a new user with a hashed password
	CreateUser(ctx context.Context, username, password string) (*models.User, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetUserByUsername retrieves a user by username
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateQuestionSession stores a new session with a fresh ID and the
	// current timestamp. Nil optional fields are persisted as explicit nulls.
	CreateQuestionSession(ctx context.Context, originalText string, extractedText, solutions *string) (*models.QuestionSession, error)

	// GetQuestionSession retrieves a session by ID
	GetQuestionSession(ctx context.Context, id string) (*models.QuestionSession, error)
}
