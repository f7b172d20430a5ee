package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"registro-backend/internal/schema"
	"registro-backend/internal/store"
)

type paramBuilder struct {
	params []any
	n      int
}

func (p *paramBuilder) Add(v any) string {
	p.n++
	p.params = append(p.params, v)
	return fmt.Sprintf("$%d", p.n)
}

// BuildInsertSQL builds a parameterized INSERT returning the full row.
// Field iteration is sorted so generated SQL is deterministic.
func BuildInsertSQL(t *schema.Table, fields map[string]any) (string, []any) {
	returning := joinColumns(t.FieldNames())
	if len(fields) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", t.Name, returning), nil
	}

	pb := &paramBuilder{}
	cols := sortedKeys(fields)
	placeholders := make([]string, len(cols))
	for i, col := range cols {
		placeholders[i] = pb.Add(fields[col])
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.Name, joinColumns(cols), strings.Join(placeholders, ", "), returning)
	return sql, pb.params
}

// BuildUpdateSQL builds a parameterized sparse UPDATE returning the full
// row. Tables with an auto-update timestamp get it stamped server-side.
func BuildUpdateSQL(t *schema.Table, id any, fields map[string]any) (string, []any) {
	pb := &paramBuilder{}
	var sets []string
	for _, col := range sortedKeys(fields) {
		sets = append(sets, fmt.Sprintf("%s = %s", col, pb.Add(fields[col])))
	}
	if auto := t.AutoUpdateField(); auto != nil {
		sets = append(sets, fmt.Sprintf("%s = NOW()", auto.Name))
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s RETURNING %s",
		t.Name, strings.Join(sets, ", "), pb.Add(id), joinColumns(t.FieldNames()))
	return sql, pb.params
}

func fetchRecord(ctx context.Context, q store.Querier, t *schema.Table, id any) (map[string]any, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", joinColumns(t.FieldNames()), t.Name)
	return store.QueryRow(ctx, q, sql, id)
}

// transportRecord renders a stored row in canonical wire form: dates as
// YYYY-MM-DD, timestamps as RFC3339. Times and decimals are already
// normalized by the store layer.
func transportRecord(t *schema.Table, row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		field := t.GetField(k)
		if field == nil || v == nil {
			out[k] = v
			continue
		}
		switch field.Type {
		case schema.TypeDate:
			if d, ok := v.(time.Time); ok {
				out[k] = d.Format("2006-01-02")
				continue
			}
		case schema.TypeTimestamp:
			if ts, ok := v.(time.Time); ok {
				out[k] = ts.Format(time.RFC3339)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
