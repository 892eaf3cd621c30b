package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), PEN)
		require.NoError(t, err)
		assert.Equal(t, PEN, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyPEN(t *testing.T) {
	m := NewMoneyPEN(decimal.NewFromFloat(50.00))
	assert.Equal(t, PEN, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestNewMoneyPENFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyPENFromString("123.45")
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyPENFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestZeroPEN(t *testing.T) {
	m := ZeroPEN()
	assert.True(t, m.IsZero())
	assert.Equal(t, PEN, m.Currency())
}

func TestMoneyIsPositiveNegativeZero(t *testing.T) {
	positive := NewMoneyPENFromFloat(100)
	negative := NewMoneyPENFromFloat(-100)
	zero := ZeroPEN()

	assert.True(t, positive.IsPositive())
	assert.False(t, positive.IsNegative())
	assert.False(t, positive.IsZero())

	assert.False(t, negative.IsPositive())
	assert.True(t, negative.IsNegative())
	assert.False(t, negative.IsZero())

	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())
	assert.True(t, zero.IsZero())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		m1 := NewMoneyPENFromFloat(100.50)
		m2 := NewMoneyPENFromFloat(50.25)
		result, err := m1.Add(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromFloat(150.75)))
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		m1, _ := NewMoney(decimal.NewFromInt(100), PEN)
		m2, _ := NewMoney(decimal.NewFromInt(50), USD)
		_, err := m1.Add(m2)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoneySubtract(t *testing.T) {
	m1 := NewMoneyPENFromFloat(100)
	m2 := NewMoneyPENFromFloat(30.50)
	result, err := m1.Subtract(m2)
	require.NoError(t, err)
	assert.True(t, result.Amount().Equal(decimal.NewFromFloat(69.50)))
}

func TestMoneyMultiply(t *testing.T) {
	m := NewMoneyPENFromFloat(10.50)
	result := m.MultiplyByInt(3)
	assert.True(t, result.Amount().Equal(decimal.NewFromFloat(31.50)))
}

func TestMoneyDivide(t *testing.T) {
	t.Run("divides by non-zero", func(t *testing.T) {
		m := NewMoneyPENFromFloat(118)
		result, err := m.Divide(decimal.NewFromFloat(1.18))
		require.NoError(t, err)
		assert.True(t, result.Amount().Round(2).Equal(decimal.NewFromInt(100)))
	})

	t.Run("fails for zero divisor", func(t *testing.T) {
		m := NewMoneyPENFromFloat(100)
		_, err := m.Divide(decimal.Zero)
		assert.Error(t, err)
	})
}

func TestMoneyApplyDiscount(t *testing.T) {
	m := NewMoneyPENFromFloat(200)
	result := m.ApplyDiscount(decimal.NewFromInt(25))
	assert.True(t, result.Amount().Equal(decimal.NewFromInt(150)))
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyPENFromFloat(10)
	big := NewMoneyPENFromFloat(20)

	less, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, greater)

	assert.True(t, small.Equals(NewMoneyPENFromFloat(10)))
	assert.False(t, small.Equals(big))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyPENFromFloat(99.90)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var parsed Money
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, m.Equals(parsed))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string value", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("45.60"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(45.60)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
