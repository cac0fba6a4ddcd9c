package services

import (
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes so service logic can be tested without a
// database.

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*models.Customer)}
}

func (r *fakeCustomerRepo) Create(customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*models.Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	customer, ok := r.customers[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (r *fakeCustomerRepo) GetByEmail(email string) (*models.Customer, error) {
	for _, customer := range r.customers {
		if customer.Email == email {
			return customer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) List(role string, limit int) ([]models.Customer, error) {
	var out []models.Customer
	for _, customer := range r.customers {
		if role != "" && customer.Role != role {
			continue
		}
		out = append(out, *customer)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(customer *models.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(r.customers, uid)
	return nil
}

type fakePackageRepo struct {
	packages map[uuid.UUID]*models.Package
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{packages: make(map[uuid.UUID]*models.Package)}
}

func (r *fakePackageRepo) Create(pkg *models.Package) error {
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	r.packages[pkg.ID] = pkg
	return nil
}

func (r *fakePackageRepo) GetByID(id string) (*models.Package, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	pkg, ok := r.packages[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pkg, nil
}

func (r *fakePackageRepo) GetByTrackingNumber(trackingNumber string) (*models.Package, error) {
	for _, pkg := range r.packages {
		if pkg.TrackingNumber == trackingNumber {
			return pkg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePackageRepo) GetByCustomerID(customerID string, limit int) ([]models.Package, error) {
	uid, err := uuid.Parse(customerID)
	if err != nil {
		return nil, err
	}
	var out []models.Package
	for _, pkg := range r.packages {
		if pkg.CustomerID == uid {
			out = append(out, *pkg)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePackageRepo) GetByManifestID(manifestID string) ([]models.Package, error) {
	uid, err := uuid.Parse(manifestID)
	if err != nil {
		return nil, err
	}
	var out []models.Package
	for _, pkg := range r.packages {
		if pkg.ManifestID != nil && *pkg.ManifestID == uid {
			out = append(out, *pkg)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) List(status, branch string, limit int) ([]models.Package, error) {
	var out []models.Package
	for _, pkg := range r.packages {
		if status != "" && pkg.Status != status {
			continue
		}
		if branch != "" && pkg.Branch != branch {
			continue
		}
		out = append(out, *pkg)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePackageRepo) UpdateStatus(packageID, status string) error {
	uid, err := uuid.Parse(packageID)
	if err != nil {
		return err
	}
	pkg, ok := r.packages[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	pkg.Status = status
	return nil
}

func (r *fakePackageRepo) AssignManifest(packageIDs []string, manifestID uuid.UUID) error {
	for _, id := range packageIDs {
		uid, err := uuid.Parse(id)
		if err != nil {
			return err
		}
		pkg, ok := r.packages[uid]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		mid := manifestID
		pkg.ManifestID = &mid
	}
	return nil
}

func (r *fakePackageRepo) Update(pkg *models.Package) error {
	r.packages[pkg.ID] = pkg
	return nil
}

func (r *fakePackageRepo) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(r.packages, uid)
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*models.Payment)}
}

func (r *fakePaymentRepo) Create(payment *models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*models.Payment, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	payment, ok := r.payments[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return payment, nil
}

func (r *fakePaymentRepo) GetByInvoiceNumber(invoiceNumber string) (*models.Payment, error) {
	for _, payment := range r.payments {
		if payment.InvoiceNumber == invoiceNumber {
			return payment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) GetByCustomerID(customerID string, limit int) ([]models.Payment, error) {
	uid, err := uuid.Parse(customerID)
	if err != nil {
		return nil, err
	}
	var out []models.Payment
	for _, payment := range r.payments {
		if payment.CustomerID == uid {
			out = append(out, *payment)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByStatus(statuses []string, limit int) ([]models.Payment, error) {
	var out []models.Payment
	for _, payment := range r.payments {
		for _, status := range statuses {
			if payment.Status == status {
				out = append(out, *payment)
				break
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdateStatus(paymentID, status string) error {
	uid, err := uuid.Parse(paymentID)
	if err != nil {
		return err
	}
	payment, ok := r.payments[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	payment.Status = status
	return nil
}

func (r *fakePaymentRepo) Update(payment *models.Payment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(r.payments, uid)
	return nil
}

type fakeManifestRepo struct {
	manifests map[uuid.UUID]*models.Manifest
}

func newFakeManifestRepo() *fakeManifestRepo {
	return &fakeManifestRepo{manifests: make(map[uuid.UUID]*models.Manifest)}
}

func (r *fakeManifestRepo) Create(manifest *models.Manifest) error {
	if manifest.ID == uuid.Nil {
		manifest.ID = uuid.New()
	}
	r.manifests[manifest.ID] = manifest
	return nil
}

func (r *fakeManifestRepo) GetByID(id string) (*models.Manifest, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	manifest, ok := r.manifests[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return manifest, nil
}

func (r *fakeManifestRepo) GetByManifestNumber(manifestNumber string) (*models.Manifest, error) {
	for _, manifest := range r.manifests {
		if manifest.ManifestNumber == manifestNumber {
			return manifest, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeManifestRepo) List(status, branch string, limit int) ([]models.Manifest, error) {
	var out []models.Manifest
	for _, manifest := range r.manifests {
		if status != "" && manifest.Status != status {
			continue
		}
		if branch != "" && manifest.Branch != branch {
			continue
		}
		out = append(out, *manifest)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeManifestRepo) UpdateStatus(manifestID, status string) error {
	uid, err := uuid.Parse(manifestID)
	if err != nil {
		return err
	}
	manifest, ok := r.manifests[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	manifest.Status = status
	return nil
}

func (r *fakeManifestRepo) Update(manifest *models.Manifest) error {
	r.manifests[manifest.ID] = manifest
	return nil
}
