package handlers

import (
	"errors"
	"log"

	"github.com/freightdesk/freightdesk-be/internal/core/label"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/repositories"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PackageHandler struct {
	packageService *services.PackageService
	packageRepo    repositories.PackageRepo
}

func NewPackageHandler(packageService *services.PackageService, packageRepo repositories.PackageRepo) *PackageHandler {
	return &PackageHandler{
		packageService: packageService,
		packageRepo:    packageRepo,
	}
}

// RegisterPackage godoc
// @Summary Register a package
// @Description Register an inbound package and assign a tracking number
// @Tags Packages
// @Accept json
// @Produce json
// @Param package body services.RegisterPackageRequest true "Package details"
// @Success 200 {object} map[string]interface{}
// @Router /packages [post]
func (h *PackageHandler) RegisterPackage(c *fiber.Ctx) error {
	var req services.RegisterPackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	if req.CustomerID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "customer_id is required"})
	}
	if req.Branch == "" {
		return c.Status(400).JSON(fiber.Map{"error": "branch is required"})
	}

	pkg, err := h.packageService.RegisterPackage(&req)
	if err != nil {
		log.Printf("❌ Failed to register package: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Package registered successfully",
		"package": pkg,
	})
}

// ListPackages godoc
// @Summary List packages
// @Description List packages, optionally filtered by status and branch
// @Tags Packages
// @Produce json
// @Param status query string false "Status filter"
// @Param branch query string false "Branch filter"
// @Param limit query int false "Max results"
// @Success 200 {object} map[string]interface{}
// @Router /packages [get]
func (h *PackageHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.packageRepo.List(c.Query("status"), c.Query("branch"), c.QueryInt("limit"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"packages": packages,
		"count":    len(packages),
	})
}

// GetPackage godoc
// @Summary Get package
// @Description Retrieve a package by ID
// @Tags Packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} map[string]interface{}
// @Router /packages/{id} [get]
func (h *PackageHandler) GetPackage(c *fiber.Ctx) error {
	pkg, err := h.packageRepo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "package not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"package": pkg})
}

// TrackPackage godoc
// @Summary Track a package
// @Description Look up a package by its public tracking number
// @Tags Packages
// @Produce json
// @Param trackingNumber path string true "Tracking Number"
// @Success 200 {object} map[string]interface{}
// @Router /packages/track/{trackingNumber} [get]
func (h *PackageHandler) TrackPackage(c *fiber.Ctx) error {
	pkg, err := h.packageService.Track(c.Params("trackingNumber"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "package not found"})
	}

	return c.JSON(fiber.Map{"package": pkg})
}

// UpdatePackageStatus godoc
// @Summary Update package status
// @Description Move a package to a new lifecycle status
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param status body object{status=string} true "New status"
// @Success 200 {object} map[string]interface{}
// @Router /packages/{id}/status [patch]
func (h *PackageHandler) UpdatePackageStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.Status == "" {
		return c.Status(400).JSON(fiber.Map{"error": "status is required"})
	}

	pkg, err := h.packageService.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPackageStatus) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "package not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Package status updated",
		"package": pkg,
	})
}

// GetPackageLabel godoc
// @Summary Get package QR label
// @Description Render the package's tracking number as a printable QR code PNG
// @Tags Packages
// @Produce png
// @Param id path string true "Package ID"
// @Param size query int false "Image size in pixels"
// @Success 200 {file} binary
// @Router /packages/{id}/label [get]
func (h *PackageHandler) GetPackageLabel(c *fiber.Ctx) error {
	pkg, err := h.packageRepo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "package not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	png, err := label.TrackingQR(pkg.TrackingNumber, c.QueryInt("size"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
