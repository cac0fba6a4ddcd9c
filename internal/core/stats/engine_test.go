package stats

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource is an in-memory Source backed by plain slices.
type memSource struct {
	packages  []PackageRecord
	customers []memCustomer
	payments  []PaymentRecord
	names     map[string]string // customer id -> display name
}

type memCustomer struct {
	ID        string
	Role      string
	CreatedAt time.Time
}

func hasPackageStatus(statuses []PackageStatus, s PackageStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

func hasPaymentStatus(statuses []PaymentStatus, s PaymentStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

func inRange(t time.Time, after, before *time.Time) bool {
	if after != nil && t.Before(*after) {
		return false
	}
	if before != nil && !t.Before(*before) {
		return false
	}
	return true
}

func (m *memSource) CountPackages(f PackageFilter) (int64, error) {
	var n int64
	for _, p := range m.packages {
		if hasPackageStatus(f.Statuses, p.Status) && inRange(p.CreatedAt, f.CreatedAfter, f.CreatedBefore) {
			n++
		}
	}
	return n, nil
}

func (m *memSource) CountCustomers(f CustomerFilter) (int64, error) {
	var n int64
	for _, c := range m.customers {
		if f.Role != "" && c.Role != f.Role {
			continue
		}
		if inRange(c.CreatedAt, f.CreatedAfter, f.CreatedBefore) {
			n++
		}
	}
	return n, nil
}

func (m *memSource) CountPayments(f PaymentFilter) (int64, error) {
	var n int64
	for _, p := range m.payments {
		if hasPaymentStatus(f.Statuses, p.Status) && inRange(p.CreatedAt, f.CreatedAfter, f.CreatedBefore) {
			n++
		}
	}
	return n, nil
}

func (m *memSource) SumPayments(f PaymentFilter) (float64, error) {
	var total float64
	for _, p := range m.payments {
		if hasPaymentStatus(f.Statuses, p.Status) && inRange(p.CreatedAt, f.CreatedAfter, f.CreatedBefore) {
			total += p.Amount
		}
	}
	return total, nil
}

func (m *memSource) PackagesByStatus() (map[PackageStatus]int64, error) {
	out := map[PackageStatus]int64{}
	for _, p := range m.packages {
		out[p.Status]++
	}
	return out, nil
}

func (m *memSource) PackagesByBranch() (map[string]int64, error) {
	out := map[string]int64{}
	for _, p := range m.packages {
		out[p.Branch]++
	}
	return out, nil
}

func (m *memSource) PaymentsBetween(statuses []PaymentStatus, from, to time.Time) ([]PaymentRecord, error) {
	out := []PaymentRecord{}
	for _, p := range m.payments {
		if hasPaymentStatus(statuses, p.Status) && !p.CreatedAt.Before(from) && !p.CreatedAt.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memSource) TopCustomersByRevenue(statuses []PaymentStatus, limit int) ([]CustomerRevenue, error) {
	revenue := map[string]*CustomerRevenue{}
	seen := map[string]map[string]bool{}
	for _, p := range m.payments {
		if !hasPaymentStatus(statuses, p.Status) || p.CustomerID == "" {
			continue
		}
		r, ok := revenue[p.CustomerID]
		if !ok {
			r = &CustomerRevenue{CustomerID: p.CustomerID, Name: m.names[p.CustomerID]}
			revenue[p.CustomerID] = r
			seen[p.CustomerID] = map[string]bool{}
		}
		r.Revenue += p.Amount
		if p.PackageID != "" && !seen[p.CustomerID][p.PackageID] {
			seen[p.CustomerID][p.PackageID] = true
			r.PackageCount++
		}
	}

	out := make([]CustomerRevenue, 0, len(revenue))
	for _, r := range revenue {
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memSource) RecentPackages(limit int) ([]PackageRecord, error) {
	out := append([]PackageRecord{}, m.packages...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memSource) RecentPayments(statuses []PaymentStatus, limit int) ([]PaymentRecord, error) {
	out := []PaymentRecord{}
	for _, p := range m.payments {
		if hasPaymentStatus(statuses, p.Status) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// failingSource degrades selected queries to errors.
type failingSource struct {
	*memSource
	failStatus bool
	failSum    bool
}

func (f *failingSource) PackagesByStatus() (map[PackageStatus]int64, error) {
	if f.failStatus {
		return nil, errors.New("connection refused")
	}
	return f.memSource.PackagesByStatus()
}

func (f *failingSource) SumPayments(filter PaymentFilter) (float64, error) {
	if f.failSum {
		return 0, errors.New("connection refused")
	}
	return f.memSource.SumPayments(filter)
}

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func TestComputeRejectsZeroTimestamp(t *testing.T) {
	engine := NewEngine(&memSource{}, Options{})

	_, err := engine.Compute(time.Time{})
	require.ErrorIs(t, err, ErrInvalidTime)
}

func TestStatusBreakdown(t *testing.T) {
	src := &memSource{}
	for i := 0; i < 6; i++ {
		src.packages = append(src.packages, PackageRecord{Status: PackageDelivered, CreatedAt: daysAgo(i + 1)})
	}
	for i := 0; i < 4; i++ {
		src.packages = append(src.packages, PackageRecord{Status: PackageInTransit, CreatedAt: daysAgo(i + 1)})
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	require.Equal(t, []StatusCount{
		{Status: PackageDelivered, Count: 6, Percentage: "60.0%"},
		{Status: PackageInTransit, Count: 4, Percentage: "40.0%"},
	}, report.PackagesByStatus)
}

func TestStatusPercentagesSumTo100(t *testing.T) {
	src := &memSource{}
	statuses := []PackageStatus{
		PackageReceived, PackageReceived, PackageReceived,
		PackageInTransit, PackageInTransit,
		PackageDelivered, PackageAtCustoms,
	}
	for _, s := range statuses {
		src.packages = append(src.packages, PackageRecord{Status: s, CreatedAt: daysAgo(2)})
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	var sum float64
	for _, sc := range report.PackagesByStatus {
		pct, perr := strconv.ParseFloat(strings.TrimSuffix(sc.Percentage, "%"), 64)
		require.NoError(t, perr)
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 1.0)
}

func TestStatusBreakdownEmptyWhenNoPackages(t *testing.T) {
	report, err := NewEngine(&memSource{}, Options{}).Compute(testNow)
	require.NoError(t, err)
	assert.Empty(t, report.PackagesByStatus)
	assert.Zero(t, report.Overview.TotalPackages)
}

func TestGrowthPct(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     int
	}{
		{"both zero", 0, 0, 0},
		{"zero baseline", 500, 0, 100},
		{"doubled", 200, 100, 100},
		{"halved", 50, 100, -50},
		{"rounds half away from zero", 1025, 1000, 3}, // 2.5 -> 3
		{"negative rounds away", 975, 1000, -3},       // -2.5 -> -3
		{"unchanged", 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, growthPct(tt.current, tt.previous))
		})
	}
}

func TestOverviewGrowthWindows(t *testing.T) {
	src := &memSource{}
	// Two captured payments in the trailing 30 days, one in the 30 before that.
	src.payments = []PaymentRecord{
		{ID: "p1", InvoiceNumber: "INV-1", Status: PaymentCaptured, Amount: 150, CustomerID: "c1", CreatedAt: daysAgo(5)},
		{ID: "p2", InvoiceNumber: "INV-2", Status: PaymentCaptured, Amount: 50, CustomerID: "c1", CreatedAt: daysAgo(20)},
		{ID: "p3", InvoiceNumber: "INV-3", Status: PaymentCompleted, Amount: 100, CustomerID: "c1", CreatedAt: daysAgo(45)},
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	assert.Equal(t, 300.0, report.Overview.TotalRevenue)
	// (200 - 100) / 100 * 100 = 100
	assert.Equal(t, 100, report.Overview.RevenueGrowthPct)
}

func TestOverviewNoPayments(t *testing.T) {
	src := &memSource{
		packages: []PackageRecord{{Status: PackageReceived, CreatedAt: daysAgo(3)}},
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	assert.Zero(t, report.Overview.TotalRevenue)
	assert.Zero(t, report.Overview.AverageOrderValue)
	assert.Empty(t, report.RevenueByMonth)
	assert.Empty(t, report.TopCustomers)
}

func TestAverageOrderValue(t *testing.T) {
	src := &memSource{}
	for i := 0; i < 4; i++ {
		src.packages = append(src.packages, PackageRecord{Status: PackageDelivered, CreatedAt: daysAgo(i + 1)})
	}
	src.payments = []PaymentRecord{
		{Status: PaymentCaptured, Amount: 100, CustomerID: "c1", CreatedAt: daysAgo(2)},
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	// Revenue divided by package count, not payment count.
	assert.Equal(t, 25.0, report.Overview.AverageOrderValue)
}

func TestRevenueByMonth(t *testing.T) {
	src := &memSource{}
	src.payments = []PaymentRecord{
		{Status: PaymentCaptured, Amount: 100, CreatedAt: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{Status: PaymentCaptured, Amount: 40, CreatedAt: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)},
		{Status: PaymentCompleted, Amount: 75, CreatedAt: time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)},
		// Pending never counts toward revenue.
		{Status: PaymentPending, Amount: 999, CreatedAt: time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC)},
		// Older than the trailing 6 calendar months.
		{Status: PaymentCaptured, Amount: 500, CreatedAt: time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)},
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	require.Equal(t, []MonthRevenue{
		{Month: "Jan 2025", Revenue: 75, PaymentCount: 1},
		{Month: "Mar 2025", Revenue: 140, PaymentCount: 2},
	}, report.RevenueByMonth)
}

func TestRevenueByMonthCapsAtSix(t *testing.T) {
	src := &memSource{}
	for i := 0; i < 9; i++ {
		src.payments = append(src.payments, PaymentRecord{
			Status:    PaymentCaptured,
			Amount:    10,
			CreatedAt: testNow.AddDate(0, -i, 0),
		})
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	require.Len(t, report.RevenueByMonth, 6)
	// Strictly ascending by underlying date.
	assert.Equal(t, "Oct 2024", report.RevenueByMonth[0].Month)
	assert.Equal(t, "Mar 2025", report.RevenueByMonth[5].Month)
}

func TestTopCustomers(t *testing.T) {
	src := &memSource{
		names: map[string]string{"c1": "Alice Freight", "c2": "Bob Cargo", "c3": "Carol Ltd"},
	}
	src.payments = []PaymentRecord{
		{Status: PaymentCaptured, Amount: 200, CustomerID: "c2", PackageID: "pk1", CreatedAt: daysAgo(3)},
		{Status: PaymentCaptured, Amount: 50, CustomerID: "c1", PackageID: "pk2", CreatedAt: daysAgo(4)},
		{Status: PaymentCompleted, Amount: 120, CustomerID: "c1", PackageID: "pk3", CreatedAt: daysAgo(5)},
		// Pending revenue does not rank.
		{Status: PaymentPending, Amount: 900, CustomerID: "c3", PackageID: "pk4", CreatedAt: daysAgo(1)},
	}

	report, err := NewEngine(src, Options{TopCustomersLimit: 2}).Compute(testNow)
	require.NoError(t, err)

	require.Len(t, report.TopCustomers, 2)
	assert.Equal(t, "Bob Cargo", report.TopCustomers[0].Name)
	assert.Equal(t, 200.0, report.TopCustomers[0].Revenue)
	assert.Equal(t, "Alice Freight", report.TopCustomers[1].Name)
	assert.Equal(t, 170.0, report.TopCustomers[1].Revenue)
	for _, tc := range report.TopCustomers {
		assert.Greater(t, tc.Revenue, 0.0)
	}
}

func TestBranchBreakdownUnknownFallback(t *testing.T) {
	src := &memSource{}
	src.packages = []PackageRecord{
		{Status: PackageReceived, Branch: "Miami", CreatedAt: daysAgo(1)},
		{Status: PackageReceived, Branch: "Miami", CreatedAt: daysAgo(2)},
		{Status: PackageReceived, Branch: "", CreatedAt: daysAgo(3)},
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	require.Equal(t, []BranchCount{
		{Branch: "Miami", Count: 2},
		{Branch: "Unknown", Count: 1},
	}, report.PackagesByBranch)
}

func TestRecentActivityMergeAndCap(t *testing.T) {
	src := &memSource{}
	src.packages = []PackageRecord{
		{TrackingNumber: "FD-1", Status: PackageReceived, Branch: "Miami", CreatedAt: daysAgo(1)},
		{TrackingNumber: "FD-2", Status: PackageReceived, CreatedAt: daysAgo(3)},
	}
	src.payments = []PaymentRecord{
		{InvoiceNumber: "INV-1", Status: PaymentCaptured, Amount: 42.5, CreatedAt: daysAgo(2)},
		{InvoiceNumber: "INV-2", Status: PaymentPending, Amount: 10, CreatedAt: daysAgo(1)},
	}

	report, err := NewEngine(src, Options{RecentActivityLimit: 2}).Compute(testNow)
	require.NoError(t, err)

	require.Len(t, report.RecentActivity, 2)
	assert.Equal(t, "package", report.RecentActivity[0].Category)
	assert.Contains(t, report.RecentActivity[0].Description, "FD-1")
	assert.Equal(t, "payment", report.RecentActivity[1].Category)
	assert.Contains(t, report.RecentActivity[1].Description, "INV-1")
	assert.True(t, report.RecentActivity[0].Timestamp.After(report.RecentActivity[1].Timestamp))
}

func TestOverduePaymentAlert(t *testing.T) {
	src := &memSource{}
	src.payments = []PaymentRecord{
		{InvoiceNumber: "INV-1", Status: PaymentPending, Amount: 30, CreatedAt: daysAgo(10)},
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	require.Len(t, report.Alerts, 1)
	alert := report.Alerts[0]
	assert.Equal(t, AlertOverduePayment, alert.Type)
	assert.Equal(t, int64(1), alert.Count)
	assert.Equal(t, SeverityHigh, alert.Severity)
	assert.Contains(t, alert.Description, "1 payment(s)")
}

func TestDelayedDeliveryAlertCountsOnlyOldPackages(t *testing.T) {
	src := &memSource{}
	src.packages = []PackageRecord{
		{Status: PackageInTransit, CreatedAt: daysAgo(20)},
		{Status: PackageInTransit, CreatedAt: daysAgo(1)},
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	require.Len(t, report.Alerts, 1)
	assert.Equal(t, AlertDelayedDelivery, report.Alerts[0].Type)
	assert.Equal(t, int64(1), report.Alerts[0].Count)
}

func TestNoCustomsAlertWithoutOldCustomsPackages(t *testing.T) {
	src := &memSource{}
	src.packages = []PackageRecord{
		{Status: PackageAtCustoms, CreatedAt: daysAgo(5)}, // under the 10-day threshold
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	for _, alert := range report.Alerts {
		assert.NotEqual(t, AlertCustomsIssue, alert.Type)
	}
}

func TestFailedDeliveryAlertAnyAge(t *testing.T) {
	src := &memSource{}
	src.packages = []PackageRecord{
		{Status: PackageFailedDelivery, CreatedAt: daysAgo(0)},
	}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	require.Len(t, report.Alerts, 1)
	assert.Equal(t, AlertFailedDelivery, report.Alerts[0].Type)
	assert.Equal(t, SeverityHigh, report.Alerts[0].Severity)
}

func TestComputeIsIdempotent(t *testing.T) {
	src := &memSource{names: map[string]string{"c1": "Alice Freight"}}
	src.packages = []PackageRecord{
		{TrackingNumber: "FD-1", Status: PackageDelivered, Branch: "Miami", CustomerID: "c1", CreatedAt: daysAgo(3)},
		{TrackingNumber: "FD-2", Status: PackageInTransit, Branch: "Kingston", CustomerID: "c1", CreatedAt: daysAgo(20)},
	}
	src.customers = []memCustomer{{ID: "c1", Role: "customer", CreatedAt: daysAgo(40)}}
	src.payments = []PaymentRecord{
		{InvoiceNumber: "INV-1", Status: PaymentCaptured, Amount: 80, CustomerID: "c1", PackageID: "pk1", CreatedAt: daysAgo(3)},
		{InvoiceNumber: "INV-2", Status: PaymentPending, Amount: 20, CustomerID: "c1", CreatedAt: daysAgo(9)},
	}

	engine := NewEngine(src, Options{})
	first, err := engine.Compute(testNow)
	require.NoError(t, err)
	second, err := engine.Compute(testNow)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestComputeDegradesGracefully(t *testing.T) {
	mem := &memSource{}
	mem.packages = []PackageRecord{
		{TrackingNumber: "FD-1", Status: PackageReceived, Branch: "Miami", CreatedAt: daysAgo(2)},
	}
	mem.payments = []PaymentRecord{
		{InvoiceNumber: "INV-1", Status: PaymentCaptured, Amount: 60, CustomerID: "c1", CreatedAt: daysAgo(2)},
	}
	src := &failingSource{memSource: mem, failStatus: true, failSum: true}

	report, err := NewEngine(src, Options{}).Compute(testNow)
	require.NoError(t, err)

	// Failed sections fall back to their empty defaults.
	assert.Empty(t, report.PackagesByStatus)
	assert.Zero(t, report.Overview.TotalRevenue)

	// Untouched sections still populate.
	assert.Equal(t, int64(1), report.Overview.TotalPackages)
	require.Len(t, report.PackagesByBranch, 1)
	assert.Equal(t, "Miami", report.PackagesByBranch[0].Branch)
	assert.NotEmpty(t, report.RecentActivity)
}
