package partner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates active customer with uppercased code", func(t *testing.T) {
		customer, err := NewCustomer("cust-001", "  Acme Corp  ")

		require.NoError(t, err)
		assert.Equal(t, "CUST-001", customer.Code)
		assert.Equal(t, "Acme Corp", customer.Name)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.True(t, customer.IsActive())
		assert.False(t, customer.RegisteredAt.IsZero())
	})

	tests := []struct {
		name     string
		code     string
		custName string
	}{
		{"empty code", "", "Acme"},
		{"code with spaces inside", "CU ST", "Acme"},
		{"code with special chars", "CUST_001!", "Acme"},
		{"code too long", strings.Repeat("C", 51), "Acme"},
		{"empty name", "CUST-001", ""},
		{"blank name", "CUST-001", "   "},
		{"name too long", "CUST-001", strings.Repeat("n", 201)},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewCustomer(tt.code, tt.custName)
			assert.Error(t, err)
		})
	}
}

func TestCustomer_Update(t *testing.T) {
	customer, err := NewCustomer("CUST-001", "Acme Corp")
	require.NoError(t, err)
	v := customer.Version

	require.NoError(t, customer.Update("Acme Corporation"))
	assert.Equal(t, "Acme Corporation", customer.Name)
	assert.Equal(t, v+1, customer.Version)

	assert.Error(t, customer.Update(""))
	assert.Equal(t, "Acme Corporation", customer.Name)
}

func TestCustomer_SetContact(t *testing.T) {
	customer, err := NewCustomer("CUST-001", "Acme Corp")
	require.NoError(t, err)

	t.Run("stores normalized contact", func(t *testing.T) {
		require.NoError(t, customer.SetContact("Jane Doe", "+1-555-0100", "Jane@Example.com"))
		assert.Equal(t, "Jane Doe", customer.ContactName)
		assert.Equal(t, "jane@example.com", customer.Email)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		assert.Error(t, customer.SetContact("Jane Doe", "", "not-an-email"))
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		assert.Error(t, customer.SetContact("Jane Doe", "call me", ""))
	})

	t.Run("empty fields are allowed", func(t *testing.T) {
		assert.NoError(t, customer.SetContact("", "", ""))
	})
}

func TestCustomer_ActivateDeactivate(t *testing.T) {
	customer, err := NewCustomer("CUST-001", "Acme Corp")
	require.NoError(t, err)

	assert.Error(t, customer.Activate(), "already active")

	require.NoError(t, customer.Deactivate())
	assert.False(t, customer.IsActive())
	assert.Error(t, customer.Deactivate(), "already inactive")

	require.NoError(t, customer.Activate())
	assert.True(t, customer.IsActive())
}
