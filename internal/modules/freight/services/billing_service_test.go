package services

import (
	"strings"
	"testing"

	"github.com/freightdesk/freightdesk-be/internal/core/export"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBillingFixture(t *testing.T) (*BillingService, *fakeCustomerRepo, *fakePaymentRepo) {
	t.Helper()
	customerRepo := newFakeCustomerRepo()
	paymentRepo := newFakePaymentRepo()
	svc := NewBillingService(paymentRepo, customerRepo, newFakePackageRepo(), export.NewService())
	return svc, customerRepo, paymentRepo
}

func TestCreateInvoice(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)
	customer := seedCustomer(t, customerRepo, "Ben", "ben@example.com")

	payment, err := svc.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: customer.ID.String(),
		Amount:     125.50,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusCreated, payment.Status)
	assert.True(t, strings.HasPrefix(payment.InvoiceNumber, "INV-"), "invoice number: %s", payment.InvoiceNumber)
	assert.Nil(t, payment.PaidAt)
}

func TestCreateInvoiceRejectsNonPositiveAmount(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)
	customer := seedCustomer(t, customerRepo, "Ben", "ben@example.com")

	_, err := svc.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: customer.ID.String(),
		Amount:     0,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestConfirmPayment(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)
	customer := seedCustomer(t, customerRepo, "Ben", "ben@example.com")

	payment, err := svc.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: customer.ID.String(),
		Amount:     80,
	})
	require.NoError(t, err)

	confirmed, err := svc.ConfirmPayment(payment.ID.String(), "bank_transfer", "TX-123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCaptured, confirmed.Status)
	require.NotNil(t, confirmed.PaidAt)
	assert.Equal(t, "bank_transfer", confirmed.Method)
	assert.Equal(t, "TX-123", confirmed.Reference)

	// Confirming twice must fail.
	_, err = svc.ConfirmPayment(payment.ID.String(), "bank_transfer", "TX-123")
	assert.ErrorIs(t, err, ErrPaymentAlreadyCaptured)
}

func TestCancelPayment(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)
	customer := seedCustomer(t, customerRepo, "Ben", "ben@example.com")

	payment, err := svc.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: customer.ID.String(),
		Amount:     80,
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelPayment(payment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCancelled, cancelled.Status)
}

func TestCancelCapturedPaymentFails(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)
	customer := seedCustomer(t, customerRepo, "Ben", "ben@example.com")

	payment, err := svc.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: customer.ID.String(),
		Amount:     80,
	})
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(payment.ID.String(), "", "")
	require.NoError(t, err)

	_, err = svc.CancelPayment(payment.ID.String())
	assert.ErrorIs(t, err, ErrPaymentAlreadyCaptured)
}

func TestOutstandingPayments(t *testing.T) {
	svc, customerRepo, paymentRepo := newBillingFixture(t)
	customer := seedCustomer(t, customerRepo, "Ben", "ben@example.com")

	for _, status := range []string{
		models.PaymentStatusPending,
		models.PaymentStatusAuthorized,
		models.PaymentStatusCaptured,
		models.PaymentStatusCancelled,
	} {
		require.NoError(t, paymentRepo.Create(&models.Payment{
			InvoiceNumber: "INV-" + status,
			CustomerID:    customer.ID,
			Amount:        50,
			Status:        status,
		}))
	}

	payments, err := svc.OutstandingPayments(0)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
	for _, payment := range payments {
		assert.NotEqual(t, models.PaymentStatusCaptured, payment.Status)
		assert.NotEqual(t, models.PaymentStatusCancelled, payment.Status)
	}
}

func TestInvoicePDF(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)
	customer := seedCustomer(t, customerRepo, "Ben", "ben@example.com")

	payment, err := svc.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: customer.ID.String(),
		Amount:     80,
	})
	require.NoError(t, err)

	data, filename, err := svc.InvoicePDF(payment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, payment.InvoiceNumber+".pdf", filename)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}
