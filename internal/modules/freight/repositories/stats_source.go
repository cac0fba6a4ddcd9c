package repositories

import (
	"fmt"
	"time"

	"github.com/freightdesk/freightdesk-be/internal/core/analytics"
	"github.com/freightdesk/freightdesk-be/internal/core/stats"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/models"
	"gorm.io/gorm"
)

// statsSource implements stats.Source on top of the generic aggregator.
type statsSource struct {
	db  *gorm.DB
	agg *analytics.Aggregator
}

func NewStatsSource(db *gorm.DB) stats.Source {
	return &statsSource{db: db, agg: analytics.NewAggregator(db)}
}

func (s *statsSource) CountPackages(f stats.PackageFilter) (int64, error) {
	return s.agg.Count(models.Package{}.TableName(), packageFilters(f))
}

func (s *statsSource) CountCustomers(f stats.CustomerFilter) (int64, error) {
	filters := map[string]interface{}{}
	if f.Role != "" {
		filters["role"] = f.Role
	}
	if f.CreatedAfter != nil {
		filters["created_at >= ?"] = *f.CreatedAfter
	}
	if f.CreatedBefore != nil {
		filters["created_at < ?"] = *f.CreatedBefore
	}
	return s.agg.Count(models.Customer{}.TableName(), filters)
}

func (s *statsSource) CountPayments(f stats.PaymentFilter) (int64, error) {
	return s.agg.Count(models.Payment{}.TableName(), paymentFilters(f))
}

func (s *statsSource) SumPayments(f stats.PaymentFilter) (float64, error) {
	return s.agg.Sum(models.Payment{}.TableName(), "amount", paymentFilters(f))
}

func (s *statsSource) PackagesByStatus() (map[stats.PackageStatus]int64, error) {
	rows, err := s.agg.Aggregate(analytics.AggregateQuery{
		Table:      models.Package{}.TableName(),
		GroupBy:    []string{"status"},
		Aggregates: map[string]string{"total": "COUNT(*)"},
	})
	if err != nil {
		return nil, err
	}

	out := make(map[stats.PackageStatus]int64, len(rows))
	for _, row := range rows {
		n, err := analytics.ToInt64(row["total"])
		if err != nil {
			return nil, err
		}
		out[stats.ParsePackageStatus(toString(row["status"]))] += n
	}
	return out, nil
}

func (s *statsSource) PackagesByBranch() (map[string]int64, error) {
	rows, err := s.agg.Aggregate(analytics.AggregateQuery{
		Table:      models.Package{}.TableName(),
		GroupBy:    []string{"branch"},
		Aggregates: map[string]string{"total": "COUNT(*)"},
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		n, err := analytics.ToInt64(row["total"])
		if err != nil {
			return nil, err
		}
		out[toString(row["branch"])] += n
	}
	return out, nil
}

func (s *statsSource) PaymentsBetween(statuses []stats.PaymentStatus, from, to time.Time) ([]stats.PaymentRecord, error) {
	var payments []models.Payment
	err := s.db.
		Where("status IN ?", paymentStatusStrings(statuses)).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	out := make([]stats.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentRecord(p))
	}
	return out, nil
}

func (s *statsSource) TopCustomersByRevenue(statuses []stats.PaymentStatus, limit int) ([]stats.CustomerRevenue, error) {
	rows, err := s.agg.Aggregate(analytics.AggregateQuery{
		Table:   "payments JOIN customers ON customers.id = payments.customer_id",
		GroupBy: []string{"payments.customer_id", "customers.name"},
		Aggregates: map[string]string{
			"revenue":       "SUM(payments.amount)",
			"package_count": "COUNT(DISTINCT payments.package_id)",
		},
		Filters: map[string]interface{}{"payments.status IN ?": paymentStatusStrings(statuses)},
		OrderBy: []string{"revenue DESC", "payments.customer_id ASC"},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]stats.CustomerRevenue, 0, len(rows))
	for _, row := range rows {
		revenue, err := analytics.ToFloat64(row["revenue"])
		if err != nil {
			return nil, err
		}
		count, err := analytics.ToInt64(row["package_count"])
		if err != nil {
			return nil, err
		}
		out = append(out, stats.CustomerRevenue{
			CustomerID:   toString(row["customer_id"]),
			Name:         toString(row["name"]),
			Revenue:      revenue,
			PackageCount: count,
		})
	}
	return out, nil
}

func (s *statsSource) RecentPackages(limit int) ([]stats.PackageRecord, error) {
	var pkgs []models.Package
	err := s.db.Order("created_at DESC").Limit(limit).Find(&pkgs).Error
	if err != nil {
		return nil, err
	}

	out := make([]stats.PackageRecord, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, stats.PackageRecord{
			ID:             p.ID.String(),
			TrackingNumber: p.TrackingNumber,
			Status:         stats.ParsePackageStatus(p.Status),
			Branch:         p.Branch,
			CustomerID:     p.CustomerID.String(),
			CreatedAt:      p.CreatedAt,
		})
	}
	return out, nil
}

func (s *statsSource) RecentPayments(statuses []stats.PaymentStatus, limit int) ([]stats.PaymentRecord, error) {
	var payments []models.Payment
	err := s.db.
		Where("status IN ?", paymentStatusStrings(statuses)).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	out := make([]stats.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentRecord(p))
	}
	return out, nil
}

func packageFilters(f stats.PackageFilter) map[string]interface{} {
	filters := map[string]interface{}{}
	if len(f.Statuses) > 0 {
		filters["status IN ?"] = packageStatusStrings(f.Statuses)
	}
	if f.CreatedAfter != nil {
		filters["created_at >= ?"] = *f.CreatedAfter
	}
	if f.CreatedBefore != nil {
		filters["created_at < ?"] = *f.CreatedBefore
	}
	return filters
}

func paymentFilters(f stats.PaymentFilter) map[string]interface{} {
	filters := map[string]interface{}{}
	if len(f.Statuses) > 0 {
		filters["status IN ?"] = paymentStatusStrings(f.Statuses)
	}
	if f.CreatedAfter != nil {
		filters["created_at >= ?"] = *f.CreatedAfter
	}
	if f.CreatedBefore != nil {
		filters["created_at < ?"] = *f.CreatedBefore
	}
	return filters
}

func packageStatusStrings(statuses []stats.PackageStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func paymentStatusStrings(statuses []stats.PaymentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func paymentRecord(p models.Payment) stats.PaymentRecord {
	record := stats.PaymentRecord{
		ID:            p.ID.String(),
		InvoiceNumber: p.InvoiceNumber,
		Status:        stats.PaymentStatus(p.Status),
		Amount:        p.Amount,
		CustomerID:    p.CustomerID.String(),
		CreatedAt:     p.CreatedAt,
	}
	if p.PackageID != nil {
		record.PackageID = p.PackageID.String()
	}
	return record
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
