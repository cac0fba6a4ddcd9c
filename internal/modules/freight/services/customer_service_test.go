package services

import (
	"testing"

	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerFixture() (*CustomerService, *fakeCustomerRepo) {
	customerRepo := newFakeCustomerRepo()
	svc := NewCustomerService(customerRepo, newFakePackageRepo(), newFakePaymentRepo())
	return svc, customerRepo
}

func TestCreateCustomerDefaultsRole(t *testing.T) {
	svc, _ := newCustomerFixture()

	customer, err := svc.CreateCustomer(&CreateCustomerRequest{
		Name:  "Dana",
		Email: "dana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, customer.Role)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	svc, _ := newCustomerFixture()

	_, err := svc.CreateCustomer(&CreateCustomerRequest{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateCustomer(&CreateCustomerRequest{Name: "Other", Email: "dana@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateCustomerRequiresNameAndEmail(t *testing.T) {
	svc, _ := newCustomerFixture()

	_, err := svc.CreateCustomer(&CreateCustomerRequest{Email: "dana@example.com"})
	assert.Error(t, err)

	_, err = svc.CreateCustomer(&CreateCustomerRequest{Name: "Dana"})
	assert.Error(t, err)
}

func TestCustomerPackagesUnknownCustomer(t *testing.T) {
	svc, _ := newCustomerFixture()

	_, err := svc.CustomerPackages("5f2e0000-0000-0000-0000-000000000000", 0)
	assert.Error(t, err)
}
