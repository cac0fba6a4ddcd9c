package handlers

import (
	"errors"
	"log"

	"github.com/freightdesk/freightdesk-be/internal/modules/freight/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	billingService *services.BillingService
}

func NewPaymentHandler(billingService *services.BillingService) *PaymentHandler {
	return &PaymentHandler{
		billingService: billingService,
	}
}

// CreateInvoice godoc
// @Summary Create an invoice
// @Description Open a payment for a customer, optionally tied to a package
// @Tags Payments
// @Accept json
// @Produce json
// @Param invoice body services.CreateInvoiceRequest true "Invoice details"
// @Success 200 {object} map[string]interface{}
// @Router /payments [post]
func (h *PaymentHandler) CreateInvoice(c *fiber.Ctx) error {
	var req services.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	if req.CustomerID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "customer_id is required"})
	}
	if req.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "amount must be greater than 0"})
	}

	payment, err := h.billingService.CreateInvoice(&req)
	if err != nil {
		log.Printf("❌ Failed to create invoice: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Invoice created successfully",
		"payment": payment,
	})
}

// ConfirmPayment godoc
// @Summary Confirm a payment
// @Description Mark a payment as captured
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param payment body object{method=string,reference=string} true "Payment confirmation details"
// @Success 200 {object} map[string]interface{}
// @Router /payments/{id}/confirm [post]
func (h *PaymentHandler) ConfirmPayment(c *fiber.Ctx) error {
	var req struct {
		Method    string `json:"method"`
		Reference string `json:"reference"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	payment, err := h.billingService.ConfirmPayment(c.Params("id"), req.Method, req.Reference)
	if err != nil {
		if errors.Is(err, services.ErrPaymentAlreadyCaptured) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Payment confirmed successfully",
		"payment": payment,
	})
}

// CancelPayment godoc
// @Summary Cancel a payment
// @Description Void a payment that has not been captured
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} map[string]interface{}
// @Router /payments/{id}/cancel [post]
func (h *PaymentHandler) CancelPayment(c *fiber.Ctx) error {
	payment, err := h.billingService.CancelPayment(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrPaymentAlreadyCaptured) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Payment cancelled successfully",
		"payment": payment,
	})
}

// ListOutstanding godoc
// @Summary List outstanding payments
// @Description List payments awaiting settlement
// @Tags Payments
// @Produce json
// @Param limit query int false "Max results"
// @Success 200 {object} map[string]interface{}
// @Router /payments/outstanding [get]
func (h *PaymentHandler) ListOutstanding(c *fiber.Ctx) error {
	payments, err := h.billingService.OutstandingPayments(c.QueryInt("limit"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"count":    len(payments),
	})
}

// GetInvoicePDF godoc
// @Summary Download invoice PDF
// @Description Render a printable invoice for the payment
// @Tags Payments
// @Produce application/pdf
// @Param id path string true "Payment ID"
// @Success 200 {file} binary
// @Router /payments/{id}/invoice [get]
func (h *PaymentHandler) GetInvoicePDF(c *fiber.Ctx) error {
	data, filename, err := h.billingService.InvoicePDF(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
