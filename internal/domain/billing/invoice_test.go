package billing

import (
	"testing"
	"time"

	"github.com/bizdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestInvoice(t *testing.T, amount float64) *Invoice {
	invoice, err := NewInvoice("INV-20260301-TEST0001", uuid.New(), valueobject.NewMoneyUSDFromFloat(amount))
	require.NoError(t, err)
	return invoice
}

func createIssuedInvoice(t *testing.T, amount float64) *Invoice {
	invoice := createTestInvoice(t, amount)
	require.NoError(t, invoice.Issue())
	return invoice
}

func pay(t *testing.T, invoice *Invoice, amount float64) {
	_, err := invoice.AddPayment(valueobject.NewMoneyUSDFromFloat(amount), PaymentMethodCash, "")
	require.NoError(t, err)
}

// ============================================
// InvoiceStatus Tests
// ============================================

func TestInvoiceStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  InvoiceStatus
		isValid bool
	}{
		{InvoiceStatusDraft, true},
		{InvoiceStatusIssued, true},
		{InvoiceStatusPaid, true},
		{InvoiceStatusOverdue, true},
		{InvoiceStatusCancelled, true},
		{InvoiceStatus("UNKNOWN"), false},
		{InvoiceStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestInvoiceStatus_IsSticky(t *testing.T) {
	assert.True(t, InvoiceStatusDraft.IsSticky())
	assert.True(t, InvoiceStatusCancelled.IsSticky())
	assert.False(t, InvoiceStatusIssued.IsSticky())
	assert.False(t, InvoiceStatusPaid.IsSticky())
	assert.False(t, InvoiceStatusOverdue.IsSticky())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.True(t, PaymentMethodCard.IsValid())
	assert.True(t, PaymentMethodBankTransfer.IsValid())
	assert.True(t, PaymentMethodCheck.IsValid())
	assert.False(t, PaymentMethod("BITCOIN").IsValid())
}

// ============================================
// Invoice Creation Tests
// ============================================

func TestNewInvoice(t *testing.T) {
	t.Run("creates draft with default due date", func(t *testing.T) {
		orderID := uuid.New()
		invoice, err := NewInvoice("INV-001", orderID, valueobject.NewMoneyUSDFromFloat(100.00))

		require.NoError(t, err)
		assert.Equal(t, InvoiceStatusDraft, invoice.Status)
		assert.Equal(t, orderID, invoice.OrderID)
		assert.True(t, invoice.Amount.Equal(decimal.NewFromFloat(100.00)))
		assert.Empty(t, invoice.Payments)

		wantDue := invoice.IssueDate.Add(DefaultPaymentTerm)
		assert.True(t, invoice.DueDate.Equal(wantDue))
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		_, err := NewInvoice("INV-001", uuid.New(), valueobject.ZeroUSD())
		assert.NoError(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewInvoice("INV-001", uuid.New(), valueobject.NewMoneyUSDFromFloat(-1.00))
		assert.Error(t, err)
	})

	t.Run("rejects empty invoice number", func(t *testing.T) {
		_, err := NewInvoice("", uuid.New(), valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("rejects nil order", func(t *testing.T) {
		_, err := NewInvoice("INV-001", uuid.Nil, valueobject.ZeroUSD())
		assert.Error(t, err)
	})
}

func TestInvoice_SetDueDate(t *testing.T) {
	invoice := createTestInvoice(t, 100.00)

	newDue := invoice.IssueDate.Add(60 * 24 * time.Hour)
	require.NoError(t, invoice.SetDueDate(newDue))
	assert.True(t, invoice.DueDate.Equal(newDue))

	err := invoice.SetDueDate(invoice.IssueDate.Add(-time.Hour))
	assert.Error(t, err)
	assert.True(t, invoice.DueDate.Equal(newDue))
}

// ============================================
// Issue / Cancel Tests
// ============================================

func TestInvoice_Issue(t *testing.T) {
	t.Run("moves draft to issued", func(t *testing.T) {
		invoice := createTestInvoice(t, 100.00)
		require.NoError(t, invoice.Issue())
		assert.Equal(t, InvoiceStatusIssued, invoice.Status)
	})

	t.Run("cannot issue twice", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		assert.Error(t, invoice.Issue())
	})

	t.Run("fully paid draft becomes paid on issue", func(t *testing.T) {
		invoice := createTestInvoice(t, 100.00)
		pay(t, invoice, 100.00)
		assert.Equal(t, InvoiceStatusDraft, invoice.Status,
			"payments never auto-advance a draft")

		require.NoError(t, invoice.Issue())
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	})
}

func TestInvoice_Cancel(t *testing.T) {
	t.Run("cancels issued invoice", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		require.NoError(t, invoice.Cancel("billing error"))
		assert.Equal(t, InvoiceStatusCancelled, invoice.Status)
		assert.NotNil(t, invoice.CancelledAt)
		assert.Equal(t, "billing error", invoice.CancelReason)
	})

	t.Run("requires a reason", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		assert.Error(t, invoice.Cancel(""))
	})

	t.Run("cannot cancel a paid invoice", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		pay(t, invoice, 100.00)
		require.Equal(t, InvoiceStatusPaid, invoice.Status)

		assert.Error(t, invoice.Cancel("too late"))
	})

	t.Run("cannot cancel twice", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		require.NoError(t, invoice.Cancel("billing error"))
		assert.Error(t, invoice.Cancel("again"))
	})
}

// ============================================
// Payment Application Tests
// ============================================

func TestInvoice_AddPayment(t *testing.T) {
	t.Run("partial payment keeps issued status", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		pay(t, invoice, 40.00)

		assert.Equal(t, InvoiceStatusIssued, invoice.Status)
		assert.True(t, invoice.GetPaidAmount().Equal(decimal.NewFromFloat(40.00)))
		assert.True(t, invoice.GetRemainingBalance().Equal(decimal.NewFromFloat(60.00)))
		assert.False(t, invoice.IsFullyPaid())
	})

	t.Run("full payment marks invoice paid", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		pay(t, invoice, 60.00)
		pay(t, invoice, 40.00)

		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		assert.NotNil(t, invoice.PaidAt)
		assert.True(t, invoice.GetRemainingBalance().IsZero())
	})

	t.Run("overpayment counts as paid with negative balance", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		pay(t, invoice, 150.00)

		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		assert.True(t, invoice.IsFullyPaid())
		assert.True(t, invoice.GetRemainingBalance().Equal(decimal.NewFromFloat(-50.00)),
			"balance = %s", invoice.GetRemainingBalance())
	})

	t.Run("zero payment is accepted and recomputes", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		_, err := invoice.AddPayment(valueobject.ZeroUSD(), PaymentMethodCash, "")
		require.NoError(t, err)

		assert.Equal(t, 1, invoice.PaymentCount())
		assert.Equal(t, InvoiceStatusIssued, invoice.Status)
	})

	t.Run("rejects negative payment", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		_, err := invoice.AddPayment(valueobject.NewMoneyUSDFromFloat(-10.00), PaymentMethodCash, "")
		assert.Error(t, err)
		assert.Equal(t, 0, invoice.PaymentCount())
	})

	t.Run("rejects invalid payment method", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		_, err := invoice.AddPayment(valueobject.NewMoneyUSDFromFloat(10.00), PaymentMethod("IOU"), "")
		assert.Error(t, err)
	})

	t.Run("payment keeps invoice back-reference", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		payment, err := invoice.AddPayment(valueobject.NewMoneyUSDFromFloat(10.00), PaymentMethodBankTransfer, "wire-42")
		require.NoError(t, err)

		assert.Equal(t, invoice.ID, payment.InvoiceID)
		assert.Equal(t, "wire-42", payment.Reference)
	})
}

// ============================================
// Status Derivation Tests
// ============================================

func TestInvoice_UpdateStatusAt(t *testing.T) {
	t.Run("issued past due becomes overdue", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)

		invoice.UpdateStatusAt(invoice.DueDate.Add(24 * time.Hour))
		assert.Equal(t, InvoiceStatusOverdue, invoice.Status)
	})

	t.Run("fully paid wins over overdue", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		pay(t, invoice, 100.00)

		invoice.UpdateStatusAt(invoice.DueDate.Add(24 * time.Hour))
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	})

	t.Run("overdue invoice paid in full becomes paid", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		invoice.UpdateStatusAt(invoice.DueDate.Add(24 * time.Hour))
		require.Equal(t, InvoiceStatusOverdue, invoice.Status)

		pay(t, invoice, 100.00)
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	})

	t.Run("draft past due stays draft", func(t *testing.T) {
		invoice := createTestInvoice(t, 100.00)

		invoice.UpdateStatusAt(invoice.DueDate.Add(24 * time.Hour))
		assert.Equal(t, InvoiceStatusDraft, invoice.Status)
	})

	t.Run("cancelled stays cancelled", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		require.NoError(t, invoice.Cancel("billing error"))

		invoice.UpdateStatusAt(invoice.DueDate.Add(24 * time.Hour))
		assert.Equal(t, InvoiceStatusCancelled, invoice.Status)
	})

	t.Run("idempotent without payment changes", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		at := invoice.DueDate.Add(24 * time.Hour)

		invoice.UpdateStatusAt(at)
		first := invoice.Status
		invoice.UpdateStatusAt(at)
		assert.Equal(t, first, invoice.Status)
	})

	t.Run("paid never reverts", func(t *testing.T) {
		invoice := createIssuedInvoice(t, 100.00)
		pay(t, invoice, 100.00)
		require.Equal(t, InvoiceStatusPaid, invoice.Status)

		pay(t, invoice, 5.00)
		invoice.UpdateStatusAt(invoice.DueDate.Add(24 * time.Hour))
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	})
}

func TestInvoice_IsOverdueAt(t *testing.T) {
	invoice := createIssuedInvoice(t, 100.00)

	assert.False(t, invoice.IsOverdueAt(invoice.DueDate), "due date itself is not overdue")
	assert.True(t, invoice.IsOverdueAt(invoice.DueDate.Add(time.Second)))

	pay(t, invoice, 100.00)
	assert.False(t, invoice.IsOverdueAt(invoice.DueDate.Add(time.Second)),
		"fully paid is never overdue")
}
