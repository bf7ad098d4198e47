package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC (the default).
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, otherwise defaultField.
func ValidateSortField(sortField string, allowed []string, defaultField string) string {
	f := strings.TrimSpace(sortField)
	if lo.Contains(allowed, f) {
		return f
	}
	return defaultField
}

var baseSortFields = []string{"created_at", "updated_at"}

// Sort whitelists per table
var (
	userSortFields        = append([]string{"name", "email", "role", "last_login_at"}, baseSortFields...)
	regionSortFields      = append([]string{"name", "code"}, baseSortFields...)
	partySortFields       = append([]string{"name", "type", "credit_limit"}, baseSortFields...)
	distributorSortFields = append([]string{"name", "commission_rate"}, baseSortFields...)
	salesmanSortFields    = append([]string{"name", "employee_code"}, baseSortFields...)
	productSortFields     = append([]string{"name", "model_number", "price", "stock"}, baseSortFields...)
	orderSortFields       = append([]string{"order_number", "order_date", "status", "total"}, baseSortFields...)
	expenseSortFields     = append([]string{"expense_date", "amount", "status", "expense_type"}, baseSortFields...)
	eventSortFields       = append([]string{"title", "start_date", "end_date"}, baseSortFields...)
)

// page applies ordering and limit/offset. Column names are qualified with
// table so joins stay unambiguous.
func page(q *gorm.DB, table string, filter shared.Filter, allowed []string, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	return q.Order(table + "." + field + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}

// search adds a case-insensitive substring match over columns. LOWER/LIKE
// instead of ILIKE keeps it portable across drivers.
func search(q *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(escapeLike(term)) + "%"
	conds := lo.Map(columns, func(c string, _ int) string { return "LOWER(" + c + ") LIKE ? ESCAPE '!'" })
	args := lo.Map(columns, func(string, int) any { return pattern })
	return q.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// escapeLike escapes LIKE wildcards; pair it with ESCAPE '!'
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// whereUUID filters column by filters[key] when it holds a uuid
func whereUUID(q *gorm.DB, filters map[string]any, key, column string) *gorm.DB {
	switch v := filters[key].(type) {
	case uuid.UUID:
		return q.Where(column+" = ?", v)
	case *uuid.UUID:
		if v != nil {
			return q.Where(column+" = ?", *v)
		}
	}
	return q
}

// whereBool filters column by filters[key] when it holds a bool
func whereBool(q *gorm.DB, filters map[string]any, key, column string) *gorm.DB {
	if v, ok := filters[key].(bool); ok {
		return q.Where(column+" = ?", v)
	}
	return q
}

// whereString filters column by filters[key] when it holds a non-empty string
// or a string-kinded value.
func whereString(q *gorm.DB, filters map[string]any, key, column string) *gorm.DB {
	if v, ok := filters[key]; ok && v != nil {
		if s, isStr := v.(string); isStr && s == "" {
			return q
		}
		return q.Where(column+" = ?", v)
	}
	return q
}

// whereDateRange applies from_date / to_date (inclusive) on column
func whereDateRange(q *gorm.DB, filters map[string]any, column string) *gorm.DB {
	if from, ok := filters["from_date"].(time.Time); ok && !from.IsZero() {
		q = q.Where(column+" >= ?", from)
	}
	if to, ok := filters["to_date"].(time.Time); ok && !to.IsZero() {
		q = q.Where(column+" < ?", to.AddDate(0, 0, 1))
	}
	return q
}

// whereLocation applies the four geography filters
func whereLocation(q *gorm.DB, filters map[string]any, table string) *gorm.DB {
	for _, col := range []string{"country_id", "state_id", "city_id", "zone_id"} {
		q = whereUUID(q, filters, col, table+"."+col)
	}
	return q
}

// findPage counts matching rows, then loads one page of them into dest.
func findPage(q *gorm.DB, pageQ func(*gorm.DB) *gorm.DB, dest any) (int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := pageQ(q.Session(&gorm.Session{})).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// exists reports whether any row of model matches the conditions
func exists(ctx context.Context, db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Where(query, args...).Limit(1).Count(&n).Error
	return n > 0, err
}

// updateVersioned writes every column of model (whose Version must already
// be the new value) when the stored version still equals prev.
func updateVersioned(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, prev int) error {
	res := db.WithContext(ctx).Model(model).
		Where("version = ?", prev).
		Select("*").
		Omit("id", "created_at", "user_id", clause.Associations).
		Updates(model)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		found, err := exists(ctx, db, model, "id = ?", id)
		if err != nil {
			return err
		}
		if !found {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// deleteByID removes one row and reports ErrNotFound when nothing matched
func deleteByID(q *gorm.DB, model any, id uuid.UUID) error {
	res := q.Delete(model, "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
