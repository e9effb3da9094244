package alert

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlert(t *testing.T) {
	t.Run("creates open alert", func(t *testing.T) {
		testID := uuid.New()
		a, err := NewAlert(&testID, TestTypeSite, "Remise non appliquée", uuid.New(), uuid.New(), uuid.New())

		require.NoError(t, err)
		assert.Equal(t, StatusOpen, a.Status)
		assert.Nil(t, a.ResolvedAt)
		assert.True(t, a.IsOpen())
	})

	t.Run("allows standalone alert without test", func(t *testing.T) {
		a, err := NewAlert(nil, TestTypeLine, "Test impossible à réaliser", uuid.New(), uuid.New(), uuid.New())

		require.NoError(t, err)
		assert.Nil(t, a.TestID)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewAlert(nil, TestTypeSite, "", uuid.New(), uuid.New(), uuid.New())

		assert.Error(t, err)
	})

	t.Run("rejects unknown test type", func(t *testing.T) {
		_, err := NewAlert(nil, TestType("mail"), "desc", uuid.New(), uuid.New(), uuid.New())

		assert.Error(t, err)
	})
}

func TestAlert_Resolve(t *testing.T) {
	t.Run("sets status and timestamp", func(t *testing.T) {
		a, _ := NewAlert(nil, TestTypeSite, "desc", uuid.New(), uuid.New(), uuid.New())

		a.Resolve()

		assert.Equal(t, StatusResolved, a.Status)
		require.NotNil(t, a.ResolvedAt)
	})

	t.Run("resolving twice refreshes the timestamp", func(t *testing.T) {
		a, _ := NewAlert(nil, TestTypeSite, "desc", uuid.New(), uuid.New(), uuid.New())

		a.Resolve()
		first := *a.ResolvedAt
		a.Resolve()

		assert.Equal(t, StatusResolved, a.Status)
		assert.False(t, a.ResolvedAt.Before(first))
	})
}

func TestAlert_CanDelete(t *testing.T) {
	t.Run("open alert cannot be deleted", func(t *testing.T) {
		a, _ := NewAlert(nil, TestTypeSite, "desc", uuid.New(), uuid.New(), uuid.New())

		assert.Error(t, a.CanDelete())
	})

	t.Run("resolved alert can be deleted", func(t *testing.T) {
		a, _ := NewAlert(nil, TestTypeSite, "desc", uuid.New(), uuid.New(), uuid.New())
		a.Resolve()

		assert.NoError(t, a.CanDelete())
	})
}

func TestComposeMessage(t *testing.T) {
	t.Run("formats program, partner and description", func(t *testing.T) {
		msg := ComposeMessage("Canal+", "MediaShop", "Remise non appliquée")

		assert.Equal(t, "[Canal+] - MediaShop : Remise non appliquée", msg)
	})

	t.Run("truncates long descriptions to 100 characters", func(t *testing.T) {
		long := strings.Repeat("a", 150)
		msg := ComposeMessage("P", "X", long)

		assert.Equal(t, "[P] - X : "+strings.Repeat("a", 100), msg)
	})
}
