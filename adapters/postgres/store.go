package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"qsolve/internal/errors"
	"qsolve/models"
	"qsolve/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var _ ports.Storage = (*Store)(nil)

// Store implements Storage on PostgreSQL. The schema mirrors the in-memory
// data model; the service only uses it when DATABASE_URL is configured.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a PostgreSQL-backed store.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS question_sessions (
			id VARCHAR PRIMARY KEY,
			original_text TEXT NOT NULL,
			extracted_text TEXT,
			solutions TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return errors.Wrap(err, "failed to create schema")
	}
	return nil
}

// CreateUser stores a new user with a bcrypt-hashed password.
func (s *Store) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  hash,
		CreatedAt: time.Now(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password, created_at)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.Username, user.Password, user.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, username, password, created_at FROM users WHERE id = $1
	`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, username, password, created_at FROM users WHERE username = $1
	`, username)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &user, nil
}

// CreateQuestionSession stores a new session with a fresh ID and the current
// timestamp.
func (s *Store) CreateQuestionSession(ctx context.Context, originalText string, extractedText, solutions *string) (*models.QuestionSession, error) {
	session := &models.QuestionSession{
		ID:            uuid.NewString(),
		OriginalText:  originalText,
		ExtractedText: extractedText,
		Solutions:     solutions,
		CreatedAt:     time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO question_sessions (id, original_text, extracted_text, solutions, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, session.ID, session.OriginalText, session.ExtractedText, session.Solutions, session.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create question session")
	}
	return session, nil
}

// GetQuestionSession retrieves a session by ID.
func (s *Store) GetQuestionSession(ctx context.Context, id string) (*models.QuestionSession, error) {
	var session models.QuestionSession
	err := s.db.GetContext(ctx, &session, `
		SELECT id, original_text, extracted_text, solutions, created_at
		FROM question_sessions WHERE id = $1
	`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.CodeNotFound, "session not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get question session")
	}
	return &session, nil
}
