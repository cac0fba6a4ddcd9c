package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/repositories"
	"gorm.io/datatypes"
)

var ErrInvalidPackageStatus = errors.New("invalid package status")

type PackageService struct {
	packageRepo  repositories.PackageRepo
	customerRepo repositories.CustomerRepo
}

func NewPackageService(packageRepo repositories.PackageRepo, customerRepo repositories.CustomerRepo) *PackageService {
	return &PackageService{
		packageRepo:  packageRepo,
		customerRepo: customerRepo,
	}
}

// RegisterPackageRequest represents the request to register an inbound package
type RegisterPackageRequest struct {
	CustomerID    string         `json:"customer_id"`
	Branch        string         `json:"branch"`
	Description   string         `json:"description"`
	Contents      []string       `json:"contents"`
	WeightKg      float64        `json:"weight_kg"`
	DeclaredValue float64        `json:"declared_value"`
	CustomsData   datatypes.JSON `json:"customs_data,omitempty"`
}

// RegisterPackage records a newly received package and assigns it a tracking number.
func (s *PackageService) RegisterPackage(req *RegisterPackageRequest) (*models.Package, error) {
	customer, err := s.customerRepo.GetByID(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer lookup failed: %w", err)
	}

	pkg := &models.Package{
		TrackingNumber: s.generateTrackingNumber(),
		CustomerID:     customer.ID,
		Status:         models.PackageStatusReceived,
		Branch:         req.Branch,
		Description:    req.Description,
		Contents:       req.Contents,
		WeightKg:       req.WeightKg,
		DeclaredValue:  req.DeclaredValue,
		CustomsData:    req.CustomsData,
	}

	if err := s.packageRepo.Create(pkg); err != nil {
		return nil, fmt.Errorf("failed to register package: %w", err)
	}

	log.Printf("✅ Package registered: %s (Customer: %s, Branch: %s)", pkg.TrackingNumber, customer.Name, pkg.Branch)
	return pkg, nil
}

// UpdateStatus moves a package to a new lifecycle status. Delivered
// packages get their delivery timestamp stamped once.
func (s *PackageService) UpdateStatus(packageID, status string) (*models.Package, error) {
	if !models.ValidPackageStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPackageStatus, status)
	}

	pkg, err := s.packageRepo.GetByID(packageID)
	if err != nil {
		return nil, err
	}

	pkg.Status = status
	if status == models.PackageStatusDelivered && pkg.DeliveredAt == nil {
		now := time.Now()
		pkg.DeliveredAt = &now
	}

	if err := s.packageRepo.Update(pkg); err != nil {
		return nil, fmt.Errorf("failed to update package status: %w", err)
	}
	return pkg, nil
}

// Track resolves a package by its public tracking number.
func (s *PackageService) Track(trackingNumber string) (*models.Package, error) {
	return s.packageRepo.GetByTrackingNumber(trackingNumber)
}

// generateTrackingNumber generates a unique tracking number
func (s *PackageService) generateTrackingNumber() string {
	now := time.Now()
	return fmt.Sprintf("FD-%s-%05d",
		now.Format("20060102"),
		now.UnixNano()%100000,
	)
}
