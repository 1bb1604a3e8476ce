package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(10.50), EUR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(10.50)))
		assert.Equal(t, EUR, m.Currency())
	})

	t.Run("negative amounts are allowed at construction", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(-5.00), USD)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyUSDFromString(t *testing.T) {
	m, err := NewMoneyUSDFromString("19.98")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.98)))
	assert.Equal(t, USD, m.Currency())

	_, err = NewMoneyUSDFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.10)
		b := NewMoneyUSDFromFloat(0.20)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(10.30)))
	})

	t.Run("subtract below zero", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(5.00)
		b := NewMoneyUSDFromFloat(7.50)

		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromFloat(-2.50)))
	})

	t.Run("multiply", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(9.99).Multiply(decimal.NewFromInt(3))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(29.97)))
	})

	t.Run("decimal exactness", func(t *testing.T) {
		// 0.1 + 0.2 must be exactly 0.3
		a := NewMoneyUSDFromFloat(0.1)
		b := NewMoneyUSDFromFloat(0.2)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(0.3)), "sum = %s", sum.Amount())
	})

	t.Run("negate and round", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(1.005)
		assert.True(t, m.Negate().Amount().Equal(decimal.NewFromFloat(-1.005)))
		assert.True(t, m.Round(2).Amount().Equal(decimal.NewFromFloat(1.01)))
	})
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	usd := NewMoneyUSDFromFloat(10.00)
	eur, err := NewMoney(decimal.NewFromFloat(10.00), EUR)
	require.NoError(t, err)

	_, err = usd.Add(eur)
	assert.Error(t, err)

	_, err = usd.Subtract(eur)
	assert.Error(t, err)

	_, err = usd.LessThan(eur)
	assert.Error(t, err)

	_, err = usd.GreaterThanOrEqual(eur)
	assert.Error(t, err)

	assert.False(t, usd.Equals(eur), "same amount, different currency")
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyUSDFromFloat(5.00)
	big := NewMoneyUSDFromFloat(10.00)

	less, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, less)

	gte, err := big.GreaterThanOrEqual(small)
	require.NoError(t, err)
	assert.True(t, gte)

	gte, err = big.GreaterThanOrEqual(NewMoneyUSDFromFloat(10.00))
	require.NoError(t, err)
	assert.True(t, gte, "equal counts as greater-or-equal")
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "9.90 USD", NewMoneyUSDFromFloat(9.9).String())
	assert.Equal(t, "0.00 USD", ZeroUSD().String())
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyUSDFromFloat(24.98)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"24.98","currency":"USD"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equals(m))
}

func TestMoney_SQLRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(100.01)

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "100.01", v)

	var scanned Money
	require.NoError(t, scanned.Scan("100.01"))
	assert.True(t, scanned.Equals(m), "currency defaults to USD on scan")

	var fromNil Money
	require.NoError(t, fromNil.Scan(nil))
	assert.True(t, fromNil.IsZero())
	assert.Equal(t, DefaultCurrency, fromNil.Currency())

	var bad Money
	assert.Error(t, bad.Scan(42))
}
