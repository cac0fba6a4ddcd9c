package services

import (
	"errors"
	"fmt"

	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/repositories"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

type CustomerService struct {
	customerRepo repositories.CustomerRepo
	packageRepo  repositories.PackageRepo
	paymentRepo  repositories.PaymentRepo
}

func NewCustomerService(
	customerRepo repositories.CustomerRepo,
	packageRepo repositories.PackageRepo,
	paymentRepo repositories.PaymentRepo,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		packageRepo:  packageRepo,
		paymentRepo:  paymentRepo,
	}
}

// CreateCustomerRequest represents the request to register a customer
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Role    string `json:"role,omitempty"`
}

func (s *CustomerService) CreateCustomer(req *CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}

	if _, err := s.customerRepo.GetByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	customer := &models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Role:    role,
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(id string) (*models.Customer, error) {
	return s.customerRepo.GetByID(id)
}

func (s *CustomerService) ListCustomers(role string, limit int) ([]models.Customer, error) {
	return s.customerRepo.List(role, limit)
}

// CustomerPackages lists the customer's packages, newest first.
func (s *CustomerService) CustomerPackages(customerID string, limit int) ([]models.Package, error) {
	if _, err := s.customerRepo.GetByID(customerID); err != nil {
		return nil, err
	}
	return s.packageRepo.GetByCustomerID(customerID, limit)
}

// CustomerPayments lists the customer's payments, newest first.
func (s *CustomerService) CustomerPayments(customerID string, limit int) ([]models.Payment, error) {
	if _, err := s.customerRepo.GetByID(customerID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByCustomerID(customerID, limit)
}
