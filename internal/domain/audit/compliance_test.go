package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSiteTest(t *testing.T, discountApplied bool, publicPrice, discountedPrice int64) *SiteTest {
	t.Helper()
	st, err := NewSiteTest(
		uuid.New(), uuid.New(), uuid.New(),
		time.Now(),
		discountApplied,
		decimal.NewFromInt(publicPrice),
		decimal.NewFromInt(discountedPrice),
		"", false, "",
	)
	require.NoError(t, err)
	return st
}

func threshold(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestDiscountPercentage(t *testing.T) {
	t.Run("computes rounded percentage", func(t *testing.T) {
		pct := DiscountPercentage(decimal.NewFromInt(100), decimal.NewFromInt(75))
		assert.True(t, pct.Equal(decimal.NewFromInt(25)), "got %s", pct)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		pct := DiscountPercentage(decimal.NewFromInt(3), decimal.NewFromInt(2))
		assert.Equal(t, "33.33", pct.String())
	})

	t.Run("zero public price yields zero", func(t *testing.T) {
		pct := DiscountPercentage(decimal.Zero, decimal.NewFromInt(50))
		assert.True(t, pct.IsZero())
	})
}

func TestEvaluateSiteTest(t *testing.T) {
	t.Run("discounted above public raises one finding", func(t *testing.T) {
		st := newSiteTest(t, true, 100, 120)

		findings := EvaluateSiteTest(st, nil)

		require.Len(t, findings, 1)
		assert.Equal(t, "Prix remisé (120€) supérieur au prix public (100€)", findings[0].Description)
	})

	t.Run("discount not applied always raises", func(t *testing.T) {
		st := newSiteTest(t, false, 100, 50)

		findings := EvaluateSiteTest(st, nil)

		require.Len(t, findings, 1)
		assert.Equal(t, "Remise non appliquée", findings[0].Description)
	})

	t.Run("insufficient discount against threshold", func(t *testing.T) {
		st := newSiteTest(t, true, 100, 95)

		findings := EvaluateSiteTest(st, threshold(10))

		require.Len(t, findings, 1)
		assert.Equal(t, "Remise insuffisante: 5% appliquée, 10% attendue (écart: 5%)", findings[0].Description)
	})

	t.Run("threshold met raises nothing", func(t *testing.T) {
		st := newSiteTest(t, true, 100, 75)

		findings := EvaluateSiteTest(st, threshold(10))

		assert.Empty(t, findings)
	})

	t.Run("nil threshold skips the discount rule", func(t *testing.T) {
		st := newSiteTest(t, true, 100, 99)

		findings := EvaluateSiteTest(st, nil)

		assert.Empty(t, findings)
	})

	t.Run("no discount with threshold raises two findings", func(t *testing.T) {
		st := newSiteTest(t, false, 200, 200)

		findings := EvaluateSiteTest(st, threshold(15))

		require.Len(t, findings, 2)
		assert.Equal(t, "Remise non appliquée", findings[0].Description)
		assert.Equal(t, "Remise insuffisante: 0% appliquée, 15% attendue (écart: 15%)", findings[1].Description)
	})

	t.Run("all three rules can fire together", func(t *testing.T) {
		st := newSiteTest(t, false, 100, 120)

		findings := EvaluateSiteTest(st, threshold(20))

		require.Len(t, findings, 3)
		assert.Contains(t, findings[0].Description, "Prix remisé")
		assert.Equal(t, "Remise non appliquée", findings[1].Description)
		assert.Contains(t, findings[2].Description, "Remise insuffisante")
	})
}

func newLineTest(t *testing.T, voicemail, pickup, offerApplied bool) *LineTest {
	t.Helper()
	lt, err := NewLineTest(
		uuid.New(), uuid.New(), uuid.New(),
		time.Now(),
		"0612345678",
		voicemail, pickup,
		"02:30", "NC", RatingGood, offerApplied, "",
	)
	require.NoError(t, err)
	return lt
}

func TestEvaluateLineTest(t *testing.T) {
	t.Run("offer not applied raises", func(t *testing.T) {
		lt := newLineTest(t, true, false, false)

		findings := EvaluateLineTest(lt)

		require.Len(t, findings, 1)
		assert.Equal(t, "Offre non appliquée", findings[0].Description)
	})

	t.Run("no dedicated voicemail nor pickup raises", func(t *testing.T) {
		lt := newLineTest(t, false, false, true)

		findings := EvaluateLineTest(lt)

		require.Len(t, findings, 1)
		assert.Equal(t, "Ni messagerie dédiée ni décroche dédié détecté", findings[0].Description)
	})

	t.Run("dedicated voicemail alone satisfies the greeting rule", func(t *testing.T) {
		lt := newLineTest(t, true, false, true)

		assert.Empty(t, EvaluateLineTest(lt))
	})

	t.Run("dedicated pickup alone satisfies the greeting rule", func(t *testing.T) {
		lt := newLineTest(t, false, true, true)

		assert.Empty(t, EvaluateLineTest(lt))
	})

	t.Run("both rules can fire together", func(t *testing.T) {
		lt := newLineTest(t, false, false, false)

		findings := EvaluateLineTest(lt)

		require.Len(t, findings, 2)
		assert.Equal(t, "Offre non appliquée", findings[0].Description)
		assert.Equal(t, "Ni messagerie dédiée ni décroche dédié détecté", findings[1].Description)
	})
}
