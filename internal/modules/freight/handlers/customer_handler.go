package handlers

import (
	"errors"

	"github.com/freightdesk/freightdesk-be/internal/modules/freight/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer godoc
// @Summary Register a customer
// @Description Register a new customer account
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body services.CreateCustomerRequest true "Customer details"
// @Success 200 {object} map[string]interface{}
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req services.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email is required"})
	}

	customer, err := h.customerService.CreateCustomer(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":  "Customer created successfully",
		"customer": customer,
	})
}

// GetCustomer godoc
// @Summary Get customer
// @Description Retrieve a customer by ID
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} map[string]interface{}
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.customerService.GetCustomer(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "customer not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"customer": customer})
}

// ListCustomers godoc
// @Summary List customers
// @Description List customers, optionally filtered by role
// @Tags Customers
// @Produce json
// @Param role query string false "Role filter"
// @Param limit query int false "Max results"
// @Success 200 {object} map[string]interface{}
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.customerService.ListCustomers(c.Query("role"), c.QueryInt("limit"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"customers": customers,
		"count":     len(customers),
	})
}

// GetCustomerPackages godoc
// @Summary List a customer's packages
// @Description List packages belonging to a customer, newest first
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Param limit query int false "Max results"
// @Success 200 {object} map[string]interface{}
// @Router /customers/{id}/packages [get]
func (h *CustomerHandler) GetCustomerPackages(c *fiber.Ctx) error {
	packages, err := h.customerService.CustomerPackages(c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "customer not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"packages": packages,
		"count":    len(packages),
	})
}

// GetCustomerPayments godoc
// @Summary List a customer's payments
// @Description List payments belonging to a customer, newest first
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Param limit query int false "Max results"
// @Success 200 {object} map[string]interface{}
// @Router /customers/{id}/payments [get]
func (h *CustomerHandler) GetCustomerPayments(c *fiber.Ctx) error {
	payments, err := h.customerService.CustomerPayments(c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "customer not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"count":    len(payments),
	})
}
