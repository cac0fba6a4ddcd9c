package handlers

import (
	"errors"
	"log"

	"github.com/freightdesk/freightdesk-be/internal/modules/freight/repositories"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ManifestHandler struct {
	manifestService *services.ManifestService
	manifestRepo    repositories.ManifestRepo
	packageRepo     repositories.PackageRepo
}

func NewManifestHandler(
	manifestService *services.ManifestService,
	manifestRepo repositories.ManifestRepo,
	packageRepo repositories.PackageRepo,
) *ManifestHandler {
	return &ManifestHandler{
		manifestService: manifestService,
		manifestRepo:    manifestRepo,
		packageRepo:     packageRepo,
	}
}

// CreateManifest godoc
// @Summary Create a manifest
// @Description Open a new shipping manifest for a branch
// @Tags Manifests
// @Accept json
// @Produce json
// @Param manifest body object{branch=string,carrier=string,notes=string} true "Manifest details"
// @Success 200 {object} map[string]interface{}
// @Router /manifests [post]
func (h *ManifestHandler) CreateManifest(c *fiber.Ctx) error {
	var req struct {
		Branch  string `json:"branch"`
		Carrier string `json:"carrier"`
		Notes   string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.Branch == "" {
		return c.Status(400).JSON(fiber.Map{"error": "branch is required"})
	}

	manifest, err := h.manifestService.CreateManifest(req.Branch, req.Carrier, req.Notes)
	if err != nil {
		log.Printf("❌ Failed to create manifest: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":  "Manifest created successfully",
		"manifest": manifest,
	})
}

// ListManifests godoc
// @Summary List manifests
// @Description List manifests, optionally filtered by status and branch
// @Tags Manifests
// @Produce json
// @Param status query string false "Status filter"
// @Param branch query string false "Branch filter"
// @Param limit query int false "Max results"
// @Success 200 {object} map[string]interface{}
// @Router /manifests [get]
func (h *ManifestHandler) ListManifests(c *fiber.Ctx) error {
	manifests, err := h.manifestRepo.List(c.Query("status"), c.Query("branch"), c.QueryInt("limit"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"manifests": manifests,
		"count":     len(manifests),
	})
}

// GetManifest godoc
// @Summary Get manifest
// @Description Retrieve a manifest and its packages
// @Tags Manifests
// @Produce json
// @Param id path string true "Manifest ID"
// @Success 200 {object} map[string]interface{}
// @Router /manifests/{id} [get]
func (h *ManifestHandler) GetManifest(c *fiber.Ctx) error {
	manifest, err := h.manifestRepo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "manifest not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	packages, err := h.packageRepo.GetByManifestID(c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"manifest": manifest,
		"packages": packages,
	})
}

// AddPackages godoc
// @Summary Add packages to a manifest
// @Description Attach packages to an open manifest
// @Tags Manifests
// @Accept json
// @Produce json
// @Param id path string true "Manifest ID"
// @Param packages body object{package_ids=[]string} true "Package IDs"
// @Success 200 {object} map[string]interface{}
// @Router /manifests/{id}/packages [post]
func (h *ManifestHandler) AddPackages(c *fiber.Ctx) error {
	var req struct {
		PackageIDs []string `json:"package_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}
	if len(req.PackageIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "package_ids is required"})
	}

	manifest, err := h.manifestService.AddPackages(c.Params("id"), req.PackageIDs)
	if err != nil {
		if errors.Is(err, services.ErrManifestNotOpen) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "manifest not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":  "Packages added to manifest",
		"manifest": manifest,
	})
}

// CloseManifest godoc
// @Summary Close a manifest
// @Description Seal an open manifest
// @Tags Manifests
// @Produce json
// @Param id path string true "Manifest ID"
// @Success 200 {object} map[string]interface{}
// @Router /manifests/{id}/close [post]
func (h *ManifestHandler) CloseManifest(c *fiber.Ctx) error {
	manifest, err := h.manifestService.CloseManifest(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrManifestNotOpen) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "manifest not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":  "Manifest closed",
		"manifest": manifest,
	})
}

// DepartManifest godoc
// @Summary Depart a manifest
// @Description Mark a closed manifest as departed and its packages as shipped
// @Tags Manifests
// @Produce json
// @Param id path string true "Manifest ID"
// @Success 200 {object} map[string]interface{}
// @Router /manifests/{id}/depart [post]
func (h *ManifestHandler) DepartManifest(c *fiber.Ctx) error {
	manifest, err := h.manifestService.DepartManifest(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "manifest not found"})
		}
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":  "Manifest departed",
		"manifest": manifest,
	})
}

// ExportManifest godoc
// @Summary Export a manifest
// @Description Download the manifest package list as an Excel workbook
// @Tags Manifests
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Manifest ID"
// @Success 200 {file} binary
// @Router /manifests/{id}/export [get]
func (h *ManifestHandler) ExportManifest(c *fiber.Ctx) error {
	data, filename, err := h.manifestService.ExportExcel(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "manifest not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
