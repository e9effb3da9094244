package persistence

import (
	"context"
	"testing"

	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPartner(t *testing.T, name string, programIDs ...uuid.UUID) *program.Partner {
	t.Helper()
	p, err := program.NewPartner(name)
	require.NoError(t, err)

	associations := make([]program.Association, len(programIDs))
	for i, id := range programIDs {
		associations[i] = program.Association{
			ProgramID:        id,
			SiteURL:          "https://example.com",
			PromoCode:        "PROMO20",
			SiteTestRequired: true,
		}
	}
	require.NoError(t, p.SetAssociations(associations))
	return p
}

func TestGormPartnerRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPartnerRepository(db)
	ctx := context.Background()

	programA := uuid.New()
	programB := uuid.New()

	globex := newTestPartner(t, "Globex", programA)
	initech := newTestPartner(t, "Initech", programA, programB)
	hooli := newTestPartner(t, "Hooli")

	threshold := decimal.NewFromInt(15)
	require.NoError(t, globex.SetExpectedDiscount(&threshold))

	for _, p := range []*program.Partner{globex, initech, hooli} {
		require.NoError(t, repo.Save(ctx, p))
	}

	t.Run("round-trips associations and threshold", func(t *testing.T) {
		found, err := repo.FindByID(ctx, globex.ID)
		require.NoError(t, err)
		require.Len(t, found.Associations, 1)
		assert.Equal(t, programA, found.Associations[0].ProgramID)
		assert.Equal(t, "PROMO20", found.Associations[0].PromoCode)
		require.NotNil(t, found.ExpectedDiscount)
		assert.True(t, found.ExpectedDiscount.Equal(threshold))
	})

	t.Run("finds partners by program", func(t *testing.T) {
		partners, err := repo.FindByProgram(ctx, programA, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, partners, 2)

		partners, err = repo.FindByProgram(ctx, programB, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, partners, 1)
		assert.Equal(t, "Initech", partners[0].Name)
	})

	t.Run("returns empty for an unknown program", func(t *testing.T) {
		partners, err := repo.FindByProgram(ctx, uuid.New(), shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, partners)
	})

	t.Run("orders by name by default", func(t *testing.T) {
		partners, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, partners, 3)
		assert.Equal(t, "Globex", partners[0].Name)
		assert.Equal(t, "Hooli", partners[1].Name)
		assert.Equal(t, "Initech", partners[2].Name)
	})

	t.Run("searches by name", func(t *testing.T) {
		partners, err := repo.FindAll(ctx, shared.Filter{Search: "tech"})
		require.NoError(t, err)
		require.Len(t, partners, 1)
		assert.Equal(t, "Initech", partners[0].Name)
	})

	t.Run("deletes a partner", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, hooli.ID))
		_, err := repo.FindByID(ctx, hooli.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, hooli.ID), shared.ErrNotFound)
	})
}
