package repositories

import (
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackageRepo interface {
	Create(pkg *models.Package) error
	GetByID(id string) (*models.Package, error)
	GetByTrackingNumber(trackingNumber string) (*models.Package, error)
	GetByCustomerID(customerID string, limit int) ([]models.Package, error)
	GetByManifestID(manifestID string) ([]models.Package, error)
	List(status, branch string, limit int) ([]models.Package, error)
	UpdateStatus(packageID, status string) error
	AssignManifest(packageIDs []string, manifestID uuid.UUID) error
	Update(pkg *models.Package) error
	Delete(id string) error
}

type packageRepo struct {
	db *gorm.DB
}

func NewPackageRepo(db *gorm.DB) PackageRepo {
	return &packageRepo{db: db}
}

func (r *packageRepo) Create(pkg *models.Package) error {
	return r.db.Create(pkg).Error
}

func (r *packageRepo) GetByID(id string) (*models.Package, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	var pkg models.Package
	err = r.db.First(&pkg, "id = ?", uid).Error
	return &pkg, err
}

func (r *packageRepo) GetByTrackingNumber(trackingNumber string) (*models.Package, error) {
	var pkg models.Package
	err := r.db.Where("tracking_number = ?", trackingNumber).First(&pkg).Error
	return &pkg, err
}

func (r *packageRepo) GetByCustomerID(customerID string, limit int) ([]models.Package, error) {
	var pkgs []models.Package
	query := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&pkgs).Error
	return pkgs, err
}

func (r *packageRepo) GetByManifestID(manifestID string) ([]models.Package, error) {
	var pkgs []models.Package
	err := r.db.Where("manifest_id = ?", manifestID).
		Order("created_at ASC").
		Find(&pkgs).Error
	return pkgs, err
}

func (r *packageRepo) List(status, branch string, limit int) ([]models.Package, error) {
	var pkgs []models.Package
	query := r.db.Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if branch != "" {
		query = query.Where("branch = ?", branch)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&pkgs).Error
	return pkgs, err
}

func (r *packageRepo) UpdateStatus(packageID, status string) error {
	return r.db.Model(&models.Package{}).
		Where("id = ?", packageID).
		Update("status", status).Error
}

func (r *packageRepo) AssignManifest(packageIDs []string, manifestID uuid.UUID) error {
	return r.db.Model(&models.Package{}).
		Where("id IN ?", packageIDs).
		Update("manifest_id", manifestID).Error
}

func (r *packageRepo) Update(pkg *models.Package) error {
	return r.db.Save(pkg).Error
}

func (r *packageRepo) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	return r.db.Delete(&models.Package{}, "id = ?", uid).Error
}
