package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"registro-backend/internal/schema"
	"registro-backend/internal/store"
)

const defaultQueryLimit = 500

// FilterRequest is the body of POST /query and POST /export.
type FilterRequest struct {
	Table         string         `json:"table"`
	DateFrom      string         `json:"date_from"`
	DateTo        string         `json:"date_to"`
	ColumnFilters map[string]any `json:"column_filters"`
	Limit         int            `json:"limit"`
}

type filterKind int

const (
	// exactBool compares the column against a boolean literal.
	exactBool filterKind = iota
	// containsText does a case-insensitive substring match against the
	// column's textual representation.
	containsText
)

// ColumnFilter is one per-column predicate. Its kind is decided once at
// construction from the raw value, never re-derived per row.
type ColumnFilter struct {
	Field string
	Kind  filterKind
	Bool  bool
	Text  string
}

// BuildColumnFilters turns the raw filter map into typed predicates.
// Keys that are not columns of the table are skipped. A raw value that
// case-insensitively equals a boolean token becomes an exact match;
// everything else becomes a contains match.
func BuildColumnFilters(t *schema.Table, raw map[string]any) []ColumnFilter {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var filters []ColumnFilter
	for _, key := range keys {
		if !t.HasField(key) {
			continue
		}
		txt := strings.TrimSpace(fmt.Sprintf("%v", raw[key]))
		switch strings.ToLower(txt) {
		case "true":
			filters = append(filters, ColumnFilter{Field: key, Kind: exactBool, Bool: true})
		case "false":
			filters = append(filters, ColumnFilter{Field: key, Kind: exactBool, Bool: false})
		default:
			filters = append(filters, ColumnFilter{Field: key, Kind: containsText, Text: txt})
		}
	}
	return filters
}

// BuildFilterWhere renders the conjunctive predicate set for a filter
// request: inclusive date bounds on fecha plus the per-column filters.
func BuildFilterWhere(t *schema.Table, req FilterRequest, pb *paramBuilder) []string {
	var where []string

	if t.HasField("fecha") {
		if df := strings.TrimSpace(req.DateFrom); df != "" {
			where = append(where, fmt.Sprintf("fecha >= %s", pb.Add(df)))
		}
		if dt := strings.TrimSpace(req.DateTo); dt != "" {
			where = append(where, fmt.Sprintf("fecha <= %s", pb.Add(dt)))
		}
	}

	for _, f := range BuildColumnFilters(t, req.ColumnFilters) {
		switch f.Kind {
		case exactBool:
			where = append(where, fmt.Sprintf("%s = %s", f.Field, pb.Add(f.Bool)))
		case containsText:
			where = append(where, fmt.Sprintf("CAST(%s AS TEXT) ILIKE %s", f.Field, pb.Add("%"+f.Text+"%")))
		}
	}

	return where
}

// queryFiltered runs a filter request against one table, newest id
// first. A limit of zero or less means uncapped (export path).
func (h *Handler) queryFiltered(ctx context.Context, t *schema.Table, req FilterRequest, limit int) ([]map[string]any, error) {
	pb := &paramBuilder{}
	where := BuildFilterWhere(t, req, pb)

	sql := fmt.Sprintf("SELECT %s FROM %s", joinColumns(t.FieldNames()), t.Name)
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY id DESC"
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT %s", pb.Add(limit))
	}

	return store.QueryRows(ctx, h.store.Pool, sql, pb.params...)
}

// Query handles POST /query
func (h *Handler) Query(c *fiber.Ctx) error {
	var req FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return NewAppError("INVALID_PAYLOAD", 400, "Invalid JSON body")
	}

	table := h.registry.Lookup(req.Table)
	if table == nil {
		return UnknownTableError(req.Table)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	rows, err := h.queryFiltered(c.Context(), table, req, limit)
	if err != nil {
		return fmt.Errorf("query %s: %w", table.Name, err)
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, transportRecord(table, row))
	}
	return c.JSON(out)
}
