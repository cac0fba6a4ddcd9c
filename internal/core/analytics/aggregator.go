package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DateRange filters a query to records whose Field falls in [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
	Field string // defaults to "created_at"
}

// AggregateQuery describes a grouped aggregation over a table.
type AggregateQuery struct {
	Table      string                 // table name or JOIN clause
	GroupBy    []string               // GROUP BY columns
	Aggregates map[string]string      // alias -> SQL aggregate, e.g. {"total": "SUM(amount)"}
	Filters    map[string]interface{} // WHERE conditions
	DateRange  *DateRange
	OrderBy    []string
	Limit      int // 0 = no limit
}

// Aggregator provides generic aggregation helpers over a GORM connection.
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Aggregate runs the query and returns one row per group.
func (a *Aggregator) Aggregate(query AggregateQuery) ([]map[string]interface{}, error) {
	selectParts := append([]string{}, query.GroupBy...)
	for alias, agg := range query.Aggregates {
		selectParts = append(selectParts, fmt.Sprintf("%s AS %s", agg, alias))
	}

	db := a.db.Table(query.Table).Select(strings.Join(selectParts, ", "))
	db = applyFilters(db, query.Filters)

	if query.DateRange != nil {
		field := query.DateRange.Field
		if field == "" {
			field = "created_at"
		}
		db = db.Where(fmt.Sprintf("%s >= ? AND %s < ?", field, field),
			query.DateRange.Start, query.DateRange.End)
	}

	if len(query.GroupBy) > 0 {
		db = db.Group(strings.Join(query.GroupBy, ", "))
	}
	for _, order := range query.OrderBy {
		db = db.Order(order)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var results []map[string]interface{}
	if err := db.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("aggregate query failed: %w", err)
	}
	return results, nil
}

// Count runs a filtered COUNT over a table.
func (a *Aggregator) Count(table string, filters map[string]interface{}) (int64, error) {
	db := applyFilters(a.db.Table(table), filters)

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

// Sum runs a filtered SUM over a column. A NULL sum (no rows) yields zero.
func (a *Aggregator) Sum(table, column string, filters map[string]interface{}) (float64, error) {
	results, err := a.Aggregate(AggregateQuery{
		Table:      table,
		Aggregates: map[string]string{"total": fmt.Sprintf("COALESCE(SUM(%s), 0)", column)},
		Filters:    filters,
	})
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return ToFloat64(results[0]["total"])
}

// applyFilters adds WHERE clauses. Keys containing a placeholder are used
// as-is ("created_at < ?"); plain keys become equality checks.
func applyFilters(db *gorm.DB, filters map[string]interface{}) *gorm.DB {
	for condition, value := range filters {
		if strings.Contains(condition, "?") {
			db = db.Where(condition, value)
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", condition), value)
		}
	}
	return db
}

// ToFloat64 coerces the numeric types drivers hand back for aggregates.
func ToFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case []byte:
		// NUMERIC columns arrive as raw bytes from the postgres driver.
		return strconv.ParseFloat(string(v), 64)
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unexpected aggregate result type: %T", value)
	}
}

// ToInt64 coerces grouped COUNT results.
func ToInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected count result type: %T", value)
	}
}
