// internal/domain/balance_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBalance(t *testing.T) {
	balance := NewBalance("user-1")

	assert.NotEmpty(t, balance.ID)
	assert.Equal(t, "user-1", balance.UserID)
	assert.True(t, balance.Amount.IsZero())
}

func TestBalanceAdd(t *testing.T) {
	t.Run("PositiveAmountIncreasesBalance", func(t *testing.T) {
		balance := NewBalance("user-1")
		before := balance.UpdatedAt
		time.Sleep(time.Millisecond)

		err := balance.Add(decimal.NewFromFloat(57.30))

		require.NoError(t, err)
		assert.True(t, balance.Amount.Equal(decimal.NewFromFloat(57.30)))
		assert.True(t, balance.UpdatedAt.After(before), "UpdatedAt should advance on credit")
	})

	t.Run("CreditsAccumulate", func(t *testing.T) {
		balance := NewBalance("user-1")
		require.NoError(t, balance.Add(decimal.NewFromInt(50)))
		require.NoError(t, balance.Add(decimal.NewFromFloat(9.55)))

		assert.True(t, balance.Amount.Equal(decimal.NewFromFloat(59.55)))
	})

	t.Run("ZeroAmountRejected", func(t *testing.T) {
		balance := NewBalance("user-1")
		require.NoError(t, balance.Add(decimal.NewFromInt(10)))
		updatedAt := balance.UpdatedAt

		err := balance.Add(decimal.Zero)

		assert.Error(t, err)
		assert.True(t, balance.Amount.Equal(decimal.NewFromInt(10)), "failed credit must not mutate state")
		assert.Equal(t, updatedAt, balance.UpdatedAt)
	})

	t.Run("NegativeAmountRejected", func(t *testing.T) {
		balance := NewBalance("user-1")
		err := balance.Add(decimal.NewFromInt(-5))

		assert.Error(t, err)
		assert.True(t, balance.Amount.IsZero())
	})
}

func TestBalanceSubtract(t *testing.T) {
	t.Run("DebitWithinBalance", func(t *testing.T) {
		balance := NewBalance("user-1")
		require.NoError(t, balance.Add(decimal.NewFromInt(100)))

		err := balance.Subtract(decimal.NewFromInt(40))

		require.NoError(t, err)
		assert.True(t, balance.Amount.Equal(decimal.NewFromInt(60)))
	})

	t.Run("DebitBelowZeroRejected", func(t *testing.T) {
		balance := NewBalance("user-1")
		require.NoError(t, balance.Add(decimal.NewFromInt(30)))

		err := balance.Subtract(decimal.NewFromInt(31))

		assert.Error(t, err)
		assert.True(t, balance.Amount.Equal(decimal.NewFromInt(30)), "failed debit must not mutate state")
	})

	t.Run("NonPositiveAmountRejected", func(t *testing.T) {
		balance := NewBalance("user-1")
		require.NoError(t, balance.Add(decimal.NewFromInt(30)))

		assert.Error(t, balance.Subtract(decimal.Zero))
		assert.Error(t, balance.Subtract(decimal.NewFromInt(-1)))
		assert.True(t, balance.Amount.Equal(decimal.NewFromInt(30)))
	})
}
