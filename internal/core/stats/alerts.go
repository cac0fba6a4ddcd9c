package stats

import (
	"fmt"
	"time"

	"github.com/freightdesk/freightdesk-be/internal/shared/utils"
)

// Alert severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Alert types.
const (
	AlertOverduePayment  = "overdue_payment"
	AlertDelayedDelivery = "delayed_delivery"
	AlertCustomsIssue    = "customs_issue"
	AlertStorageFeeDue   = "storage_fee_due"
	AlertFailedDelivery  = "failed_delivery"
)

type alertRule struct {
	id       string
	title    string
	severity string
	count    func() (int64, error)
	describe func(n int64) string
}

// alerts evaluates every threshold rule against now. A rule is included
// only when its matching count is positive; a failing rule degrades to
// absent rather than aborting the rest.
func (e *Engine) alerts(now time.Time) []Alert {
	out := []Alert{}
	for _, rule := range e.alertRules(now) {
		n, err := rule.count()
		if err != nil {
			utils.LogWarn("alert rule degraded", map[string]interface{}{
				"alert": rule.id,
				"error": err.Error(),
			})
			continue
		}
		if n <= 0 {
			continue
		}
		out = append(out, Alert{
			ID:          rule.id,
			Type:        rule.id,
			Title:       rule.title,
			Description: rule.describe(n),
			Count:       n,
			Severity:    rule.severity,
		})
	}
	return out
}

// Alerts evaluates the alert rules on their own, for callers that do
// not need the full report (e.g. a scheduled digest).
func (e *Engine) Alerts(now time.Time) []Alert {
	return e.alerts(now)
}

func (e *Engine) alertRules(now time.Time) []alertRule {
	overdueCutoff := now.AddDate(0, 0, -7)
	transitCutoff := now.AddDate(0, 0, -14)
	customsCutoff := now.AddDate(0, 0, -10)
	storageCutoff := now.AddDate(0, 0, -30)

	return []alertRule{
		{
			id:       AlertOverduePayment,
			title:    "Overdue payments",
			severity: SeverityHigh,
			count: func() (int64, error) {
				return e.source.CountPayments(PaymentFilter{
					Statuses:      []PaymentStatus{PaymentPending, PaymentCreated, PaymentInitiated},
					CreatedBefore: &overdueCutoff,
				})
			},
			describe: func(n int64) string {
				return fmt.Sprintf("%d payment(s) unpaid for more than 7 days", n)
			},
		},
		{
			id:       AlertDelayedDelivery,
			title:    "Delayed deliveries",
			severity: SeverityMedium,
			count: func() (int64, error) {
				return e.source.CountPackages(PackageFilter{
					Statuses:      []PackageStatus{PackageInTransit},
					CreatedBefore: &transitCutoff,
				})
			},
			describe: func(n int64) string {
				return fmt.Sprintf("%d package(s) in transit for more than 14 days", n)
			},
		},
		{
			id:       AlertCustomsIssue,
			title:    "Customs issues",
			severity: SeverityMedium,
			count: func() (int64, error) {
				return e.source.CountPackages(PackageFilter{
					Statuses:      []PackageStatus{PackageAtCustoms},
					CreatedBefore: &customsCutoff,
				})
			},
			describe: func(n int64) string {
				return fmt.Sprintf("%d package(s) held at customs for more than 10 days", n)
			},
		},
		{
			id:       AlertStorageFeeDue,
			title:    "Storage fees due",
			severity: SeverityLow,
			count: func() (int64, error) {
				return e.source.CountPackages(PackageFilter{
					Statuses:      []PackageStatus{PackageReceived, PackageAtCustoms},
					CreatedBefore: &storageCutoff,
				})
			},
			describe: func(n int64) string {
				return fmt.Sprintf("%d package(s) in storage for more than 30 days", n)
			},
		},
		{
			id:       AlertFailedDelivery,
			title:    "Failed deliveries",
			severity: SeverityHigh,
			count: func() (int64, error) {
				return e.source.CountPackages(PackageFilter{
					Statuses: []PackageStatus{PackageFailedDelivery},
				})
			},
			describe: func(n int64) string {
				return fmt.Sprintf("%d delivery attempt(s) failed and need follow-up", n)
			},
		},
	}
}
