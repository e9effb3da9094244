package persistence

import (
	"context"
	"testing"

	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDraftRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDraftRepository(db)
	history := NewGormHistoryRepository(db)
	ctx := context.Background()

	alertA := uuid.New()
	alertB := uuid.New()

	d1, err := mailer.NewEmailDraft(alertA, nil, "Acme – Remise non appliquée", "Bonjour,", "contact@globex.fr")
	require.NoError(t, err)
	d2, err := mailer.NewEmailDraft(alertA, nil, "Relance", "Bonjour,", "contact@globex.fr")
	require.NoError(t, err)
	d3, err := mailer.NewEmailDraft(alertB, nil, "Information", "Bonjour,", "contact@initech.fr")
	require.NoError(t, err)

	for _, d := range []*mailer.EmailDraft{d1, d2, d3} {
		require.NoError(t, repo.Save(ctx, d))
	}

	t.Run("finds drafts by alert", func(t *testing.T) {
		drafts, err := repo.FindByAlert(ctx, alertA)
		require.NoError(t, err)
		assert.Len(t, drafts, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		require.NoError(t, d1.MarkSent())
		require.NoError(t, repo.Save(ctx, d1))

		drafts, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{"status": mailer.DraftStatusSent}})
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, d1.ID, drafts[0].ID)
	})

	t.Run("keeps the send history per alert", func(t *testing.T) {
		require.NoError(t, history.Save(ctx, mailer.NewEmailHistory(d1, mailer.SendOutcomeSuccess, "")))
		require.NoError(t, history.Save(ctx, mailer.NewEmailHistory(d3, mailer.SendOutcomeFailed, "connection refused")))

		rows, err := history.FindByAlert(ctx, alertA)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, mailer.SendOutcomeSuccess, rows[0].Outcome)

		rows, err = history.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{"outcome": mailer.SendOutcomeFailed}})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "connection refused", rows[0].ErrorMessage)
	})

	t.Run("deletes a draft", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, d2.ID))
		_, err := repo.FindByID(ctx, d2.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
