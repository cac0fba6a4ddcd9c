package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/freightdesk/freightdesk-be/internal/core/export"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/repositories"
)

var (
	ErrInvalidAmount          = errors.New("payment amount must be positive")
	ErrPaymentAlreadyCaptured = errors.New("payment already captured")
)

type BillingService struct {
	paymentRepo  repositories.PaymentRepo
	customerRepo repositories.CustomerRepo
	packageRepo  repositories.PackageRepo
	exporter     *export.Service
}

func NewBillingService(
	paymentRepo repositories.PaymentRepo,
	customerRepo repositories.CustomerRepo,
	packageRepo repositories.PackageRepo,
	exporter *export.Service,
) *BillingService {
	return &BillingService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		packageRepo:  packageRepo,
		exporter:     exporter,
	}
}

// CreateInvoiceRequest represents the request to invoice a customer
type CreateInvoiceRequest struct {
	CustomerID string  `json:"customer_id"`
	PackageID  string  `json:"package_id,omitempty"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method,omitempty"`
}

// CreateInvoice opens a payment in the created state and assigns an
// invoice number.
func (s *BillingService) CreateInvoice(req *CreateInvoiceRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	customer, err := s.customerRepo.GetByID(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer lookup failed: %w", err)
	}

	payment := &models.Payment{
		InvoiceNumber: s.generateInvoiceNumber(),
		CustomerID:    customer.ID,
		Amount:        req.Amount,
		Status:        models.PaymentStatusCreated,
		Method:        req.Method,
	}

	if req.PackageID != "" {
		pkg, err := s.packageRepo.GetByID(req.PackageID)
		if err != nil {
			return nil, fmt.Errorf("package lookup failed: %w", err)
		}
		payment.PackageID = &pkg.ID
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	log.Printf("💰 Invoice created: %s (Customer: %s, Amount: %.2f)", payment.InvoiceNumber, customer.Name, payment.Amount)
	return payment, nil
}

// ConfirmPayment marks a payment as captured and stamps the paid
// timestamp. Confirming twice is an error.
func (s *BillingService) ConfirmPayment(paymentID, method, reference string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentStatusCaptured || payment.Status == models.PaymentStatusCompleted {
		return nil, ErrPaymentAlreadyCaptured
	}

	now := time.Now()
	payment.Status = models.PaymentStatusCaptured
	payment.PaidAt = &now
	if method != "" {
		payment.Method = method
	}
	if reference != "" {
		payment.Reference = reference
	}

	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	log.Printf("✅ Payment captured: %s (%.2f)", payment.InvoiceNumber, payment.Amount)
	return payment, nil
}

// CancelPayment voids a payment that has not been captured yet.
func (s *BillingService) CancelPayment(paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentStatusCaptured || payment.Status == models.PaymentStatusCompleted {
		return nil, ErrPaymentAlreadyCaptured
	}

	payment.Status = models.PaymentStatusCancelled
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, fmt.Errorf("failed to cancel payment: %w", err)
	}
	return payment, nil
}

// OutstandingPayments lists payments that still await settlement.
func (s *BillingService) OutstandingPayments(limit int) ([]models.Payment, error) {
	return s.paymentRepo.ListByStatus([]string{
		models.PaymentStatusPending,
		models.PaymentStatusAuthorized,
		models.PaymentStatusInitiated,
	}, limit)
}

// InvoicePDF renders a printable invoice for the payment.
func (s *BillingService) InvoicePDF(paymentID string) ([]byte, string, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, "", err
	}

	customer, err := s.customerRepo.GetByID(payment.CustomerID.String())
	if err != nil {
		return nil, "", fmt.Errorf("customer lookup failed: %w", err)
	}

	rows := [][]string{
		{"Invoice number", payment.InvoiceNumber},
		{"Customer", customer.Name},
		{"Amount", fmt.Sprintf("%.2f", payment.Amount)},
		{"Status", payment.Status},
	}
	if payment.PackageID != nil {
		if pkg, err := s.packageRepo.GetByID(payment.PackageID.String()); err == nil {
			rows = append(rows, []string{"Tracking number", pkg.TrackingNumber})
		}
	}
	if payment.PaidAt != nil {
		rows = append(rows, []string{"Paid at", payment.PaidAt.Format("2006-01-02 15:04")})
	}

	doc := &export.Document{
		Title:       "Invoice " + payment.InvoiceNumber,
		Subtitle:    customer.Name,
		GeneratedAt: time.Now(),
		Headers:     []string{"Field", "Value"},
		Rows:        rows,
	}

	data, err := s.exporter.ToPDF(doc)
	if err != nil {
		return nil, "", err
	}
	return data, payment.InvoiceNumber + ".pdf", nil
}

// generateInvoiceNumber generates a unique invoice number
func (s *BillingService) generateInvoiceNumber() string {
	now := time.Now()
	return fmt.Sprintf("INV-%s-%05d",
		now.Format("20060102"),
		now.UnixNano()%100000,
	)
}
