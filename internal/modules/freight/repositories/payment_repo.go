package repositories

import (
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepo interface {
	Create(payment *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	GetByInvoiceNumber(invoiceNumber string) (*models.Payment, error)
	GetByCustomerID(customerID string, limit int) ([]models.Payment, error)
	ListByStatus(statuses []string, limit int) ([]models.Payment, error)
	UpdateStatus(paymentID, status string) error
	Update(payment *models.Payment) error
	Delete(id string) error
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepo {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepo) GetByID(id string) (*models.Payment, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	var payment models.Payment
	err = r.db.First(&payment, "id = ?", uid).Error
	return &payment, err
}

func (r *paymentRepo) GetByInvoiceNumber(invoiceNumber string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("invoice_number = ?", invoiceNumber).First(&payment).Error
	return &payment, err
}

func (r *paymentRepo) GetByCustomerID(customerID string, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	query := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListByStatus(statuses []string, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	query := r.db.Order("created_at DESC")

	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) UpdateStatus(paymentID, status string) error {
	return r.db.Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status).Error
}

func (r *paymentRepo) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

func (r *paymentRepo) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	return r.db.Delete(&models.Payment{}, "id = ?", uid).Error
}
