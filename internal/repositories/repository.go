package repositories

import (
	"context"
	"fmt"
	"strings"

	"hospital-maintenance/pkg/types"

	sq "github.com/Masterminds/squirrel"
)

// ListParams describes a filtered list query over one table, optionally with
// joins. Filtering is exact-match equality on allow-listed columns only.
type ListParams struct {
	Table          string
	Columns        string
	Joins          []string
	Filter         map[string]interface{}
	AllowedFilters []string
	Where          []sq.Sqlizer
	DefaultOrder   string
	AllowedSorts   []string
	Sort           map[string]string
	Limit          int
	Offset         int
}

func contains(list []string, item string) bool {
	for _, val := range list {
		if strings.EqualFold(val, item) {
			return true
		}
	}
	return false
}

func applyConditions(builder sq.SelectBuilder, params ListParams) sq.SelectBuilder {
	for key, val := range params.Filter {
		if contains(params.AllowedFilters, key) {
			builder = builder.Where(sq.Eq{key: val})
		}
	}
	for _, cond := range params.Where {
		builder = builder.Where(cond)
	}
	return builder
}

// BuildListQuery renders the data query for params. Ordering defaults to
// creation time descending unless the caller provides a domain-specific order.
func BuildListQuery(params ListParams) (string, []interface{}, error) {
	if params.Table == "" {
		return "", nil, fmt.Errorf("list query: table cannot be empty")
	}

	builder := sq.Select(params.Columns).From(params.Table).PlaceholderFormat(sq.Dollar)
	for _, join := range params.Joins {
		builder = builder.LeftJoin(join)
	}
	builder = applyConditions(builder, params)

	ordered := false
	for field, direction := range params.Sort {
		if contains(params.AllowedSorts, field) && (direction == "asc" || direction == "desc") {
			builder = builder.OrderBy(fmt.Sprintf("%s %s", field, strings.ToUpper(direction)))
			ordered = true
		}
	}
	if !ordered {
		order := params.DefaultOrder
		if order == "" {
			order = params.Table + ".created_at DESC"
		}
		builder = builder.OrderBy(order)
	}

	if params.Limit > 0 {
		builder = builder.Limit(uint64(params.Limit)).Offset(uint64(params.Offset))
	}

	return builder.ToSql()
}

// FetchCount runs the matching COUNT(*) query for params.
func FetchCount(ctx context.Context, db querier, params ListParams) (uint64, error) {
	builder := sq.Select("COUNT(*)").From(params.Table).PlaceholderFormat(sq.Dollar)
	for _, join := range params.Joins {
		builder = builder.LeftJoin(join)
	}
	builder = applyConditions(builder, params)

	countSQL, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("count ToSql: %w", err)
	}

	var total uint64
	if err := db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	return total, nil
}

// filterFromRequest narrows a request filter to string values the repository
// layer understands.
func filterFromRequest(filter types.Filter) map[string]interface{} {
	out := make(map[string]interface{}, len(filter.Filter))
	for k, v := range filter.Filter {
		out[k] = v
	}
	return out
}
