package stats

import "time"

// PackageStatus enumerates the lifecycle states of a package.
type PackageStatus string

const (
	PackageReceived       PackageStatus = "received"
	PackageInProcessing   PackageStatus = "in_processing"
	PackageReadyToShip    PackageStatus = "ready_to_ship"
	PackageShipped        PackageStatus = "shipped"
	PackageInTransit      PackageStatus = "in_transit"
	PackageDelivered      PackageStatus = "delivered"
	PackageAtCustoms      PackageStatus = "at_customs"
	PackageFailedDelivery PackageStatus = "failed_delivery"
	PackageReturned       PackageStatus = "returned"
	PackageUnknown        PackageStatus = "unknown"
)

// ParsePackageStatus maps a raw status string to a known status,
// falling back to PackageUnknown so aggregation stays exhaustive.
func ParsePackageStatus(raw string) PackageStatus {
	switch PackageStatus(raw) {
	case PackageReceived, PackageInProcessing, PackageReadyToShip,
		PackageShipped, PackageInTransit, PackageDelivered,
		PackageAtCustoms, PackageFailedDelivery, PackageReturned:
		return PackageStatus(raw)
	case "customs":
		return PackageAtCustoms
	default:
		return PackageUnknown
	}
}

// PaymentStatus enumerates payment settlement states.
type PaymentStatus string

const (
	PaymentCreated    PaymentStatus = "created"
	PaymentInitiated  PaymentStatus = "initiated"
	PaymentPending    PaymentStatus = "pending"
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentCaptured   PaymentStatus = "captured"
	PaymentCompleted  PaymentStatus = "completed"
)

// RevenueStatuses are the payment states that count toward revenue.
var RevenueStatuses = []PaymentStatus{PaymentCaptured, PaymentCompleted}

// OutstandingStatuses are the payment states that count toward outstanding balance.
var OutstandingStatuses = []PaymentStatus{PaymentPending, PaymentAuthorized, PaymentInitiated}

// ActiveStatuses are package states still moving through the pipeline.
var ActiveStatuses = []PackageStatus{
	PackageReceived, PackageInProcessing, PackageReadyToShip,
	PackageShipped, PackageInTransit, PackageAtCustoms,
}

// DeliveryPendingStatuses are package states already handed to a carrier.
var DeliveryPendingStatuses = []PackageStatus{PackageShipped, PackageInTransit}

// PackageRecord is the read-only view of a package used by the engine.
type PackageRecord struct {
	ID             string
	TrackingNumber string
	Status         PackageStatus
	Branch         string
	CustomerID     string
	CreatedAt      time.Time
}

// PaymentRecord is the read-only view of a payment used by the engine.
type PaymentRecord struct {
	ID            string
	InvoiceNumber string
	Status        PaymentStatus
	Amount        float64
	PackageID     string
	CustomerID    string
	CreatedAt     time.Time
}

// CustomerRevenue is one row of the top-customer ranking query.
type CustomerRevenue struct {
	CustomerID   string
	Name         string
	Revenue      float64
	PackageCount int64
}

// PackageFilter narrows package counting queries.
type PackageFilter struct {
	Statuses      []PackageStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// CustomerFilter narrows customer counting queries.
type CustomerFilter struct {
	Role          string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// PaymentFilter narrows payment counting and summing queries.
type PaymentFilter struct {
	Statuses      []PaymentStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// Source is the query capability the engine needs from the data store.
// Implementations must be safe for concurrent use: the engine issues
// independent sub-aggregation queries in parallel.
type Source interface {
	CountPackages(f PackageFilter) (int64, error)
	CountCustomers(f CustomerFilter) (int64, error)
	CountPayments(f PaymentFilter) (int64, error)
	SumPayments(f PaymentFilter) (float64, error)
	PackagesByStatus() (map[PackageStatus]int64, error)
	PackagesByBranch() (map[string]int64, error)
	PaymentsBetween(statuses []PaymentStatus, from, to time.Time) ([]PaymentRecord, error)
	TopCustomersByRevenue(statuses []PaymentStatus, limit int) ([]CustomerRevenue, error)
	RecentPackages(limit int) ([]PackageRecord, error)
	RecentPayments(statuses []PaymentStatus, limit int) ([]PaymentRecord, error)
}

// Overview holds the headline dashboard metrics.
type Overview struct {
	TotalRevenue          float64 `json:"total_revenue"`
	RevenueGrowthPct      int     `json:"revenue_growth_pct"`
	TotalPackages         int64   `json:"total_packages"`
	PackagesGrowthPct     int     `json:"packages_growth_pct"`
	TotalCustomers        int64   `json:"total_customers"`
	CustomersGrowthPct    int     `json:"customers_growth_pct"`
	AverageOrderValue     float64 `json:"average_order_value"`
	ActivePackages        int64   `json:"active_packages"`
	PendingDeliveries     int64   `json:"pending_deliveries"`
	NewCustomersThisMonth int64   `json:"new_customers_this_month"`
	OutstandingPayments   float64 `json:"outstanding_payments"`
	PackagesInCustoms     int64   `json:"packages_in_customs"`
}

// StatusCount is one slice of the status breakdown.
type StatusCount struct {
	Status     PackageStatus `json:"status"`
	Count      int64         `json:"count"`
	Percentage string        `json:"percentage"` // "60.0%"
}

// MonthRevenue is one bucket of the trailing-6-month revenue series.
type MonthRevenue struct {
	Month        string  `json:"month"` // "Jan 2025"
	Revenue      float64 `json:"revenue"`
	PaymentCount int     `json:"payment_count"`
}

// TopCustomer is one row of the customer ranking.
type TopCustomer struct {
	CustomerID   string  `json:"customer_id"`
	Name         string  `json:"name"`
	Revenue      float64 `json:"revenue"`
	PackageCount int64   `json:"package_count"`
}

// BranchCount is one row of the per-branch breakdown.
type BranchCount struct {
	Branch string `json:"branch"`
	Count  int64  `json:"count"`
}

// Activity is a single recent-activity feed entry. Category is a tag
// for the caller's icon selection; the engine does not render anything.
type Activity struct {
	Category    string    `json:"category"` // "package" or "payment"
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Alert is a threshold-triggered operational notice.
type Alert struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Count       int64  `json:"count"`
	Severity    string `json:"severity"` // "high", "medium", "low"
}

// Report is the full dashboard payload. Every field is always populated:
// lists default to empty, numbers to zero, so callers never null-check.
type Report struct {
	Overview         Overview       `json:"overview"`
	PackagesByStatus []StatusCount  `json:"packages_by_status"`
	RevenueByMonth   []MonthRevenue `json:"revenue_by_month"`
	TopCustomers     []TopCustomer  `json:"top_customers"`
	PackagesByBranch []BranchCount  `json:"packages_by_branch"`
	RecentActivity   []Activity     `json:"recent_activity"`
	Alerts           []Alert        `json:"alerts"`
	GeneratedAt      time.Time      `json:"generated_at"`
}
