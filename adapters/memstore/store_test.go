package memstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsolve/internal/errors"
	"qsolve/models"
)

func TestCreateAndGetUser(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "alice", "s3cret-Pass1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "s3cret-Pass1", user.Password, "password must be stored hashed")
	assert.True(t, models.CheckPasswordHash("s3cret-Pass1", user.Password))

	got, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	byName, err := store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestGetUserNotFound(t *testing.T) {
	store := NewStore()

	_, err := store.GetUser(context.Background(), "no-such-id")
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	_, err = store.GetUserByUsername(context.Background(), "nobody")
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

// The data model declares usernames unique but the in-memory store does not
// enforce it; this pins the current permissive behavior.
func TestDuplicateUsernamesAreNotRejected(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first, err := store.CreateUser(ctx, "bob", "Password1")
	require.NoError(t, err)
	second, err := store.CreateUser(ctx, "bob", "Password2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateAndGetQuestionSession(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	extracted := "What is 2 + 2?"
	solutions := "## Final Answer\n4"
	session, err := store.CreateQuestionSession(ctx, "What is 2 + 2?", &extracted, &solutions)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.False(t, session.CreatedAt.IsZero())

	got, err := store.GetQuestionSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "What is 2 + 2?", got.OriginalText)
	require.NotNil(t, got.ExtractedText)
	assert.Equal(t, "What is 2 + 2?", *got.ExtractedText)
	require.NotNil(t, got.Solutions)
	assert.Equal(t, solutions, *got.Solutions)
}

func TestQuestionSessionOptionalFieldsSerializeAsNull(t *testing.T) {
	store := NewStore()

	session, err := store.CreateQuestionSession(context.Background(), "unanswered question", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, session.ExtractedText)
	assert.Nil(t, session.Solutions)

	raw, err := json.Marshal(session)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"extractedText":null`)
	assert.Contains(t, string(raw), `"solutions":null`)
}

func TestGetQuestionSessionNotFound(t *testing.T) {
	store := NewStore()

	_, err := store.GetQuestionSession(context.Background(), "c2c9e7b2-0000-0000-0000-000000000000")
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestCreatedAtMonotonic(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var prev *models.QuestionSession
	for i := 0; i < 5; i++ {
		session, err := store.CreateQuestionSession(ctx, "q", nil, nil)
		require.NoError(t, err)
		if prev != nil {
			assert.False(t, session.CreatedAt.Before(prev.CreatedAt),
				"createdAt must be non-decreasing across sequential creations")
		}
		prev = session
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	extracted := "original"
	session, err := store.CreateQuestionSession(ctx, "original", &extracted, nil)
	require.NoError(t, err)

	got, err := store.GetQuestionSession(ctx, session.ID)
	require.NoError(t, err)
	got.OriginalText = "mutated"
	*got.ExtractedText = "mutated"

	again, err := store.GetQuestionSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.OriginalText)
	assert.Equal(t, "original", *again.ExtractedText)
}
