package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/dmitrijs2005/promptbook/internal/server/models"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromptService(m repomanager.RepositoryManager) *PromptService {
	s := NewPromptService(m)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestPromptService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	s := newPromptService(repomanager.NewInMemoryRepositoryManager())

	given := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	kept, err := s.Create(ctx, "u1", models.Prompt{ID: "client-id", UserID: "u9", Title: "A", Content: "a", CreatedAt: given})
	require.NoError(t, err)
	assert.NotEqual(t, "client-id", kept.ID)
	assert.Equal(t, "u1", kept.UserID, "owner comes from the session")
	assert.Equal(t, given, kept.CreatedAt)

	stamped, err := s.Create(ctx, "u1", models.Prompt{Title: "B", Content: "b"})
	require.NoError(t, err)
	assert.Equal(t, s.now(), stamped.CreatedAt)

	list, err := s.List(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Title)

	for _, p := range []models.Prompt{
		{Title: "", Content: "x"},
		{Title: "x", Content: ""},
		{Title: "x", Content: "x", Tokens: -1},
	} {
		_, err := s.Create(ctx, "u1", p)
		require.ErrorIs(t, err, common.ErrorInvalidArgument)
	}

	spaces, err := s.Create(ctx, "u1", models.Prompt{Title: " ", Content: "\t"})
	require.NoError(t, err, "whitespace counts as present")
	assert.Equal(t, " ", spaces.Title)
}

func TestPromptService_Update(t *testing.T) {
	ctx := context.Background()
	s := newPromptService(repomanager.NewInMemoryRepositoryManager())

	p, err := s.Create(ctx, "u1", models.Prompt{Title: "A", Content: "a"})
	require.NoError(t, err)

	title := "A2"
	got, err := s.Update(ctx, "u1", p.ID, models.PromptPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)

	_, err = s.Update(ctx, "u2", p.ID, models.PromptPatch{Title: &title})
	require.ErrorIs(t, err, common.ErrorNotFound)

	empty, neg := "", -3
	for _, patch := range []models.PromptPatch{{}, {Title: &empty}, {Content: &empty}, {Tokens: &neg}} {
		_, err := s.Update(ctx, "u1", p.ID, patch)
		require.ErrorIs(t, err, common.ErrorInvalidArgument)
	}

	spaces := "  "
	got, err = s.Update(ctx, "u1", p.ID, models.PromptPatch{Content: &spaces})
	require.NoError(t, err)
	assert.Equal(t, "  ", got.Content)

	_, err = s.Update(ctx, "u1", "not-a-uuid", models.PromptPatch{Title: &title})
	require.ErrorIs(t, err, common.ErrorInvalidArgument)
}

func TestPromptService_Delete(t *testing.T) {
	ctx := context.Background()
	s := newPromptService(repomanager.NewInMemoryRepositoryManager())

	p, err := s.Create(ctx, "u1", models.Prompt{Title: "A", Content: "a"})
	require.NoError(t, err)

	require.ErrorIs(t, s.Delete(ctx, "u1", "nope"), common.ErrorInvalidArgument)
	require.ErrorIs(t, s.Delete(ctx, "u1", uuid.NewString()), common.ErrorNotFound)
	require.NoError(t, s.Delete(ctx, "u1", p.ID))

	list, err := s.List(ctx, "u1", false)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPromptService_RepositoryFailures(t *testing.T) {
	ctx := context.Background()
	m := newBrokenManager()
	m.promptsErr = errDB
	s := newPromptService(m)
	title := "x"

	_, err := s.List(ctx, "u1", true)
	require.ErrorIs(t, err, errDB)
	_, err = s.Create(ctx, "u1", models.Prompt{Title: "x", Content: "x"})
	require.ErrorIs(t, err, errDB)
	_, err = s.Update(ctx, "u1", uuid.NewString(), models.PromptPatch{Title: &title})
	require.ErrorIs(t, err, errDB)
	require.ErrorIs(t, s.Delete(ctx, "u1", uuid.NewString()), errDB)
}
