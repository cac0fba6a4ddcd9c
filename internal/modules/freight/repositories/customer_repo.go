package repositories

import (
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepo interface {
	Create(customer *models.Customer) error
	GetByID(id string) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	List(role string, limit int) ([]models.Customer, error)
	Update(customer *models.Customer) error
	Delete(id string) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepo {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) GetByID(id string) (*models.Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	var customer models.Customer
	err = r.db.First(&customer, "id = ?", uid).Error
	return &customer, err
}

func (r *customerRepo) GetByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("email = ?", email).First(&customer).Error
	return &customer, err
}

func (r *customerRepo) List(role string, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	query := r.db.Order("created_at DESC")

	if role != "" {
		query = query.Where("role = ?", role)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	return r.db.Delete(&models.Customer{}, "id = ?", uid).Error
}
