package memstore

import (
	"context"
	"sync"
	"time"

	"qsolve/internal/errors"
	"qsolve/models"
	"qsolve/ports"

	"github.com/google/uuid"
)

var _ ports.Storage = (*Store)(nil)

// Store is an in-memory Storage implementation. All data lives for the
// process lifetime only.
//
// Note: the declared data model treats usernames as unique, but this store
// does not enforce it; callers that care must check GetUserByUsername first.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	sessions map[string]*models.QuestionSession
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*models.User),
		sessions: make(map[string]*models.QuestionSession),
	}
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

	s.mu.Lock()
	s.users[user.ID] = user
	s.mu.Unlock()

	out := *user
	return &out, nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "user not found")
	}
	out := *user
	return &out, nil
}

// GetUserByUsername retrieves a user by username via linear scan.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "user not found")
}

// CreateQuestionSession stores a new session with a fresh ID and the current
// timestamp. Nil optional fields stay nil and serialize as JSON null.
func (s *Store) CreateQuestionSession(ctx context.Context, originalText string, extractedText, solutions *string) (*models.QuestionSession, error) {
	session := &models.QuestionSession{
		ID:            uuid.NewString(),
		OriginalText:  originalText,
		ExtractedText: copyOptional(extractedText),
		Solutions:     copyOptional(solutions),
		CreatedAt:     time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return sessionCopy(session), nil
}

// GetQuestionSession retrieves a session by ID.
func (s *Store) GetQuestionSession(ctx context.Context, id string) (*models.QuestionSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "session not found")
	}
	return sessionCopy(session), nil
}

func sessionCopy(s *models.QuestionSession) *models.QuestionSession {
	out := *s
	out.ExtractedText = copyOptional(s.ExtractedText)
	out.Solutions = copyOptional(s.Solutions)
	return &out
}

func copyOptional(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
