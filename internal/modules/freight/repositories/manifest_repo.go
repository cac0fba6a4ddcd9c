package repositories

import (
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ManifestRepo interface {
	Create(manifest *models.Manifest) error
	GetByID(id string) (*models.Manifest, error)
	GetByManifestNumber(manifestNumber string) (*models.Manifest, error)
	List(status, branch string, limit int) ([]models.Manifest, error)
	UpdateStatus(manifestID, status string) error
	Update(manifest *models.Manifest) error
}

type manifestRepo struct {
	db *gorm.DB
}

func NewManifestRepo(db *gorm.DB) ManifestRepo {
	return &manifestRepo{db: db}
}

func (r *manifestRepo) Create(manifest *models.Manifest) error {
	return r.db.Create(manifest).Error
}

func (r *manifestRepo) GetByID(id string) (*models.Manifest, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	var manifest models.Manifest
	err = r.db.First(&manifest, "id = ?", uid).Error
	return &manifest, err
}

func (r *manifestRepo) GetByManifestNumber(manifestNumber string) (*models.Manifest, error) {
	var manifest models.Manifest
	err := r.db.Where("manifest_number = ?", manifestNumber).First(&manifest).Error
	return &manifest, err
}

func (r *manifestRepo) List(status, branch string, limit int) ([]models.Manifest, error) {
	var manifests []models.Manifest
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

	err := query.Find(&manifests).Error
	return manifests, err
}

func (r *manifestRepo) UpdateStatus(manifestID, status string) error {
	return r.db.Model(&models.Manifest{}).
		Where("id = ?", manifestID).
		Update("status", status).Error
}

func (r *manifestRepo) Update(manifest *models.Manifest) error {
	return r.db.Save(manifest).Error
}
