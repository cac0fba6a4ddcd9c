package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/freightdesk/freightdesk-be/internal/shared/utils"
)

// trailingMonthCount is the span of the revenue-by-month series.
const trailingMonthCount = 6

// ErrInvalidTime is returned when Compute is called with a zero timestamp.
// That is a bug at the call site, not a data problem, so it fails fast.
var ErrInvalidTime = errors.New("stats: compute called with zero timestamp")

// unknownLabel stands in for missing branch and customer names.
const unknownLabel = "Unknown"

// Options tunes report sizing. Zero values fall back to defaults.
type Options struct {
	TopCustomersLimit   int
	RecentActivityLimit int
}

// Engine computes dashboard reports from a read-only Source.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	source      Source
	topLimit    int
	recentLimit int
}

func NewEngine(source Source, opts Options) *Engine {
	if opts.TopCustomersLimit <= 0 {
		opts.TopCustomersLimit = 5
	}
	if opts.RecentActivityLimit <= 0 {
		opts.RecentActivityLimit = 10
	}
	return &Engine{
		source:      source,
		topLimit:    opts.TopCustomersLimit,
		recentLimit: opts.RecentActivityLimit,
	}
}

// Compute builds a point-in-time Report as of now. Sub-aggregations run
// concurrently and degrade independently: a failing section is logged and
// left at its zero/empty default, so the report is always structurally
// complete and renderable.
func (e *Engine) Compute(now time.Time) (*Report, error) {
	if now.IsZero() {
		return nil, ErrInvalidTime
	}

	report := &Report{
		PackagesByStatus: []StatusCount{},
		RevenueByMonth:   []MonthRevenue{},
		TopCustomers:     []TopCustomer{},
		PackagesByBranch: []BranchCount{},
		RecentActivity:   []Activity{},
		Alerts:           []Alert{},
		GeneratedAt:      now,
	}

	var wg sync.WaitGroup
	run := func(section string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				utils.LogWarn("dashboard section degraded to default", map[string]interface{}{
					"section": section,
					"error":   err.Error(),
				})
			}
		}()
	}

	run("overview", func() error {
		report.Overview = e.overview(now)
		return nil
	})
	run("packages_by_status", func() error {
		out, err := e.statusBreakdown()
		if err != nil {
			return err
		}
		report.PackagesByStatus = out
		return nil
	})
	run("revenue_by_month", func() error {
		out, err := e.revenueByMonth(now)
		if err != nil {
			return err
		}
		report.RevenueByMonth = out
		return nil
	})
	run("top_customers", func() error {
		out, err := e.topCustomers()
		if err != nil {
			return err
		}
		report.TopCustomers = out
		return nil
	})
	run("packages_by_branch", func() error {
		out, err := e.branchBreakdown()
		if err != nil {
			return err
		}
		report.PackagesByBranch = out
		return nil
	})
	run("recent_activity", func() error {
		report.RecentActivity = e.recentActivity()
		return nil
	})
	run("alerts", func() error {
		report.Alerts = e.alerts(now)
		return nil
	})

	wg.Wait()
	return report, nil
}

// overview gathers the headline metrics. Each underlying query degrades
// to zero on its own so one unreachable table does not blank the card row.
func (e *Engine) overview(now time.Time) Overview {
	cur := currentWindow(now)
	prev := previousWindow(now)
	monthStart := startOfMonth(now)

	o := Overview{
		TotalRevenue:   e.sumOrZero("total_revenue", PaymentFilter{Statuses: RevenueStatuses}),
		TotalPackages:  e.countPackagesOrZero("total_packages", PackageFilter{}),
		TotalCustomers: e.countCustomersOrZero("total_customers", CustomerFilter{Role: "customer"}),
		ActivePackages: e.countPackagesOrZero("active_packages", PackageFilter{Statuses: ActiveStatuses}),
		PendingDeliveries: e.countPackagesOrZero("pending_deliveries",
			PackageFilter{Statuses: DeliveryPendingStatuses}),
		NewCustomersThisMonth: e.countCustomersOrZero("new_customers_this_month",
			CustomerFilter{Role: "customer", CreatedAfter: &monthStart, CreatedBefore: &now}),
		OutstandingPayments: e.sumOrZero("outstanding_payments",
			PaymentFilter{Statuses: OutstandingStatuses}),
		PackagesInCustoms: e.countPackagesOrZero("packages_in_customs",
			PackageFilter{Statuses: []PackageStatus{PackageAtCustoms}}),
	}

	revenueCur := e.sumOrZero("revenue_window_current",
		PaymentFilter{Statuses: RevenueStatuses, CreatedAfter: &cur.Start, CreatedBefore: &cur.End})
	revenuePrev := e.sumOrZero("revenue_window_previous",
		PaymentFilter{Statuses: RevenueStatuses, CreatedAfter: &prev.Start, CreatedBefore: &prev.End})
	o.RevenueGrowthPct = growthPct(revenueCur, revenuePrev)

	pkgCur := e.countPackagesOrZero("packages_window_current",
		PackageFilter{CreatedAfter: &cur.Start, CreatedBefore: &cur.End})
	pkgPrev := e.countPackagesOrZero("packages_window_previous",
		PackageFilter{CreatedAfter: &prev.Start, CreatedBefore: &prev.End})
	o.PackagesGrowthPct = growthPct(float64(pkgCur), float64(pkgPrev))

	custCur := e.countCustomersOrZero("customers_window_current",
		CustomerFilter{Role: "customer", CreatedAfter: &cur.Start, CreatedBefore: &cur.End})
	custPrev := e.countCustomersOrZero("customers_window_previous",
		CustomerFilter{Role: "customer", CreatedAfter: &prev.Start, CreatedBefore: &prev.End})
	o.CustomersGrowthPct = growthPct(float64(custCur), float64(custPrev))

	if o.TotalPackages > 0 {
		o.AverageOrderValue = o.TotalRevenue / float64(o.TotalPackages)
	}

	return o
}

func (e *Engine) statusBreakdown() ([]StatusCount, error) {
	counts, err := e.source.PackagesByStatus()
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return []StatusCount{}, nil
	}

	out := make([]StatusCount, 0, len(counts))
	for status, n := range counts {
		if n == 0 {
			continue
		}
		pct := float64(n) / float64(total) * 100
		out = append(out, StatusCount{
			Status:     status,
			Count:      n,
			Percentage: fmt.Sprintf("%.1f%%", pct),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out, nil
}

func (e *Engine) revenueByMonth(now time.Time) ([]MonthRevenue, error) {
	from := trailingMonthsStart(now, trailingMonthCount)
	payments, err := e.source.PaymentsBetween(RevenueStatuses, from, now)
	if err != nil {
		return nil, err
	}

	buckets := map[time.Time]*MonthRevenue{}
	for _, p := range payments {
		// Records without a timestamp are excluded from time-bucketed series.
		if p.CreatedAt.IsZero() {
			continue
		}
		if p.CreatedAt.Before(from) || p.CreatedAt.After(now) {
			continue
		}
		m := startOfMonth(p.CreatedAt)
		b, ok := buckets[m]
		if !ok {
			b = &MonthRevenue{Month: monthKey(m)}
			buckets[m] = b
		}
		b.Revenue += p.Amount
		b.PaymentCount++
	}

	months := make([]time.Time, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	// Ascending by the underlying date, not the label.
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	if len(months) > trailingMonthCount {
		months = months[len(months)-trailingMonthCount:]
	}

	out := make([]MonthRevenue, 0, len(months))
	for _, m := range months {
		out = append(out, *buckets[m])
	}
	return out, nil
}

func (e *Engine) topCustomers() ([]TopCustomer, error) {
	rows, err := e.source.TopCustomersByRevenue(RevenueStatuses, e.topLimit)
	if err != nil {
		return nil, err
	}

	out := make([]TopCustomer, 0, len(rows))
	for _, r := range rows {
		if r.Revenue <= 0 {
			continue
		}
		name := r.Name
		if name == "" {
			name = unknownLabel
		}
		out = append(out, TopCustomer{
			CustomerID:   r.CustomerID,
			Name:         name,
			Revenue:      r.Revenue,
			PackageCount: r.PackageCount,
		})
	}

	// Stable so ties keep the source order across identical calls.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if len(out) > e.topLimit {
		out = out[:e.topLimit]
	}
	return out, nil
}

func (e *Engine) branchBreakdown() ([]BranchCount, error) {
	counts, err := e.source.PackagesByBranch()
	if err != nil {
		return nil, err
	}

	merged := map[string]int64{}
	for branch, n := range counts {
		if branch == "" {
			branch = unknownLabel
		}
		merged[branch] += n
	}

	out := make([]BranchCount, 0, len(merged))
	for branch, n := range merged {
		out = append(out, BranchCount{Branch: branch, Count: n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Branch < out[j].Branch
	})
	return out, nil
}

// recentActivity merges the newest package registrations and captured
// payments into one feed. The two lookups degrade independently.
func (e *Engine) recentActivity() []Activity {
	entries := []Activity{}

	pkgs, err := e.source.RecentPackages(e.recentLimit)
	if err != nil {
		utils.LogWarn("recent packages lookup degraded", map[string]interface{}{"error": err.Error()})
	} else {
		for _, p := range pkgs {
			if p.CreatedAt.IsZero() {
				continue
			}
			branch := p.Branch
			if branch == "" {
				branch = unknownLabel
			}
			entries = append(entries, Activity{
				Category:    "package",
				Title:       "Package received",
				Description: fmt.Sprintf("Package %s registered at %s branch", p.TrackingNumber, branch),
				Timestamp:   p.CreatedAt,
			})
		}
	}

	pays, err := e.source.RecentPayments(RevenueStatuses, e.recentLimit)
	if err != nil {
		utils.LogWarn("recent payments lookup degraded", map[string]interface{}{"error": err.Error()})
	} else {
		for _, p := range pays {
			if p.CreatedAt.IsZero() {
				continue
			}
			entries = append(entries, Activity{
				Category:    "payment",
				Title:       "Payment captured",
				Description: fmt.Sprintf("Payment %s of %.2f captured", p.InvoiceNumber, p.Amount),
				Timestamp:   p.CreatedAt,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	if len(entries) > e.recentLimit {
		entries = entries[:e.recentLimit]
	}
	return entries
}

// countPackagesOrZero runs a package count, degrading to zero on error.
func (e *Engine) countPackagesOrZero(metric string, f PackageFilter) int64 {
	n, err := e.source.CountPackages(f)
	if err != nil {
		utils.LogWarn("dashboard metric degraded to zero", map[string]interface{}{
			"metric": metric, "error": err.Error(),
		})
		return 0
	}
	return n
}

func (e *Engine) countCustomersOrZero(metric string, f CustomerFilter) int64 {
	n, err := e.source.CountCustomers(f)
	if err != nil {
		utils.LogWarn("dashboard metric degraded to zero", map[string]interface{}{
			"metric": metric, "error": err.Error(),
		})
		return 0
	}
	return n
}

func (e *Engine) sumOrZero(metric string, f PaymentFilter) float64 {
	total, err := e.source.SumPayments(f)
	if err != nil {
		utils.LogWarn("dashboard metric degraded to zero", map[string]interface{}{
			"metric": metric, "error": err.Error(),
		})
		return 0
	}
	return total
}

// growthPct is the relative change between the trailing window and the
// one before it, rounded half away from zero. A zero baseline maps to
// 100 when there is current volume and 0 when there is none.
func growthPct(current, previous float64) int {
	if previous > 0 {
		return int(math.Round((current - previous) / previous * 100))
	}
	if current > 0 {
		return 100
	}
	return 0
}
