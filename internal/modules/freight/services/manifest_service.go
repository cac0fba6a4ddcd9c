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

var ErrManifestNotOpen = errors.New("manifest is not open")

type ManifestService struct {
	manifestRepo repositories.ManifestRepo
	packageRepo  repositories.PackageRepo
	exporter     *export.Service
}

func NewManifestService(
	manifestRepo repositories.ManifestRepo,
	packageRepo repositories.PackageRepo,
	exporter *export.Service,
) *ManifestService {
	return &ManifestService{
		manifestRepo: manifestRepo,
		packageRepo:  packageRepo,
		exporter:     exporter,
	}
}

// CreateManifest opens a new shipping manifest for a branch.
func (s *ManifestService) CreateManifest(branch, carrier, notes string) (*models.Manifest, error) {
	manifest := &models.Manifest{
		ManifestNumber: s.generateManifestNumber(),
		Branch:         branch,
		Carrier:        carrier,
		Status:         models.ManifestStatusOpen,
		Notes:          notes,
	}

	if err := s.manifestRepo.Create(manifest); err != nil {
		return nil, fmt.Errorf("failed to create manifest: %w", err)
	}

	log.Printf("📦 Manifest opened: %s (Branch: %s, Carrier: %s)", manifest.ManifestNumber, branch, carrier)
	return manifest, nil
}

// AddPackages attaches packages to an open manifest and moves them to
// the ready_to_ship status.
func (s *ManifestService) AddPackages(manifestID string, packageIDs []string) (*models.Manifest, error) {
	manifest, err := s.manifestRepo.GetByID(manifestID)
	if err != nil {
		return nil, err
	}
	if manifest.Status != models.ManifestStatusOpen {
		return nil, ErrManifestNotOpen
	}
	if len(packageIDs) == 0 {
		return manifest, nil
	}

	if err := s.packageRepo.AssignManifest(packageIDs, manifest.ID); err != nil {
		return nil, fmt.Errorf("failed to assign packages: %w", err)
	}
	for _, packageID := range packageIDs {
		if err := s.packageRepo.UpdateStatus(packageID, models.PackageStatusReadyToShip); err != nil {
			return nil, fmt.Errorf("failed to update package status: %w", err)
		}
	}

	log.Printf("📦 %d packages added to manifest %s", len(packageIDs), manifest.ManifestNumber)
	return manifest, nil
}

// CloseManifest seals an open manifest so no more packages can join it.
func (s *ManifestService) CloseManifest(manifestID string) (*models.Manifest, error) {
	manifest, err := s.manifestRepo.GetByID(manifestID)
	if err != nil {
		return nil, err
	}
	if manifest.Status != models.ManifestStatusOpen {
		return nil, ErrManifestNotOpen
	}

	manifest.Status = models.ManifestStatusClosed
	if err := s.manifestRepo.Update(manifest); err != nil {
		return nil, fmt.Errorf("failed to close manifest: %w", err)
	}
	return manifest, nil
}

// DepartManifest marks a closed manifest as departed and moves its
// packages to shipped.
func (s *ManifestService) DepartManifest(manifestID string) (*models.Manifest, error) {
	manifest, err := s.manifestRepo.GetByID(manifestID)
	if err != nil {
		return nil, err
	}
	if manifest.Status != models.ManifestStatusClosed {
		return nil, fmt.Errorf("manifest %s must be closed before departure", manifest.ManifestNumber)
	}

	pkgs, err := s.packageRepo.GetByManifestID(manifestID)
	if err != nil {
		return nil, err
	}
	for _, pkg := range pkgs {
		if err := s.packageRepo.UpdateStatus(pkg.ID.String(), models.PackageStatusShipped); err != nil {
			return nil, fmt.Errorf("failed to mark package shipped: %w", err)
		}
	}

	manifest.Status = models.ManifestStatusDeparted
	if err := s.manifestRepo.Update(manifest); err != nil {
		return nil, fmt.Errorf("failed to update manifest: %w", err)
	}

	log.Printf("🚚 Manifest departed: %s (%d packages)", manifest.ManifestNumber, len(pkgs))
	return manifest, nil
}

// ExportExcel renders the manifest's package list as an .xlsx workbook.
func (s *ManifestService) ExportExcel(manifestID string) ([]byte, string, error) {
	manifest, err := s.manifestRepo.GetByID(manifestID)
	if err != nil {
		return nil, "", err
	}

	pkgs, err := s.packageRepo.GetByManifestID(manifestID)
	if err != nil {
		return nil, "", err
	}

	var totalWeight, totalValue float64
	rows := make([][]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		rows = append(rows, []string{
			pkg.TrackingNumber,
			pkg.Status,
			pkg.Description,
			fmt.Sprintf("%.2f", pkg.WeightKg),
			fmt.Sprintf("%.2f", pkg.DeclaredValue),
		})
		totalWeight += pkg.WeightKg
		totalValue += pkg.DeclaredValue
	}

	doc := &export.Document{
		Title:       "Manifest " + manifest.ManifestNumber,
		Subtitle:    fmt.Sprintf("Branch: %s | Carrier: %s | Status: %s", manifest.Branch, manifest.Carrier, manifest.Status),
		GeneratedAt: time.Now(),
		Headers:     []string{"Tracking Number", "Status", "Description", "Weight (kg)", "Declared Value"},
		Rows:        rows,
		Summary: []string{
			fmt.Sprintf("Packages: %d", len(pkgs)),
			fmt.Sprintf("Total weight: %.2f kg", totalWeight),
			fmt.Sprintf("Total declared value: %.2f", totalValue),
		},
	}

	data, err := s.exporter.ToExcel(doc)
	if err != nil {
		return nil, "", err
	}
	return data, manifest.ManifestNumber + ".xlsx", nil
}

// generateManifestNumber generates a unique manifest number
func (s *ManifestService) generateManifestNumber() string {
	now := time.Now()
	return fmt.Sprintf("MF-%s-%04d",
		now.Format("20060102"),
		now.UnixNano()%10000,
	)
}
