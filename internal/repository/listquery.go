package repository

import (
	"fmt"
	"strings"

	"taskboard/internal/models"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ListParams carries the pagination and filter parameters shared by every
// list endpoint.
type ListParams struct {
	Page     int
	PageSize int
	Query    string
}

// Normalize clamps out-of-range values to the defaults and returns the
// PageInfo echoed back to the client.
func (p ListParams) Normalize() (ListParams, models.PageInfo) {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	return p, models.PageInfo{Page: p.Page, PageSize: p.PageSize, Query: p.Query}
}

// searchableFields whitelists the text column a substring filter may target,
// per table. Anything outside this map cannot be filtered on.
var searchableFields = map[string]string{
	"tasks":      "task_name",
	"categories": "category_name",
}

// listQuery assembles a parameterized SELECT with an optional substring
// filter and LIMIT/OFFSET pagination. Tables and columns come from
// compile-time constants plus the whitelist above, never from request input.
type listQuery struct {
	table string
	conds []string
	args  []interface{}
}

func newListQuery(table string) *listQuery {
	return &listQuery{table: table}
}

func (q *listQuery) search(query string) *listQuery {
	if query == "" {
		return q
	}
	field, ok := searchableFields[q.table]
	if !ok {
		return q
	}
	q.args = append(q.args, "%"+query+"%")
	q.conds = append(q.conds, fmt.Sprintf("%s ILIKE $%d", field, len(q.args)))
	return q
}

func (q *listQuery) build(p ListParams) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(q.table)
	if len(q.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.conds, " AND "))
	}
	args := q.args
	sb.WriteString(fmt.Sprintf(" ORDER BY 1 LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, p.PageSize, (p.Page-1)*p.PageSize)
	return sb.String(), args
}
