package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"registro-backend/internal/schema"
)

// truthyTokens are the string values accepted as boolean true. Anything
// else parses as false: the boolean parse is permissive and never fails.
var truthyTokens = map[string]bool{
	"true": true, "1": true, "si": true, "sí": true, "t": true, "yes": true,
}

// CoercePayload restricts the payload to the table's writable columns
// and converts every value to its declared semantic type. Unknown keys
// are dropped silently; malformed numeric, date or time literals come
// back as validation errors. The same coercion runs for create and for
// sparse update, which only ever sees the keys the caller sent.
func CoercePayload(t *schema.Table, payload map[string]any) (map[string]any, []ErrorDetail) {
	out := make(map[string]any, len(payload))
	var errs []ErrorDetail

	for key, raw := range payload {
		field := t.GetField(key)
		if field == nil || field.IsAuto() {
			continue
		}

		// Empty string and explicit null clear the column regardless of type.
		if raw == nil || raw == "" {
			out[key] = nil
			continue
		}

		val, err := coerceValue(*field, raw)
		if err != nil {
			errs = append(errs, ErrorDetail{
				Field:   key,
				Rule:    "type",
				Message: err.Error(),
			})
			continue
		}
		out[key] = val
	}

	return out, errs
}

func coerceValue(field schema.Field, raw any) (any, error) {
	switch field.Type {
	case schema.TypeBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
		return truthyTokens[strings.ToLower(fmt.Sprintf("%v", raw))], nil

	case schema.TypeInt:
		switch v := raw.(type) {
		case float64: // JSON numbers
			return int64(v), nil
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		default:
			n, err := strconv.ParseInt(strings.TrimSpace(fmt.Sprintf("%v", raw)), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("expected an integer, got %q", raw)
			}
			return n, nil
		}

	case schema.TypeDecimal:
		switch v := raw.(type) {
		case float64:
			return v, nil
		default:
			f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprintf("%v", v)), 64)
			if err != nil {
				return nil, fmt.Errorf("expected a number, got %q", raw)
			}
			return f, nil
		}

	case schema.TypeDate:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected a YYYY-MM-DD date, got %v", raw)
		}
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("expected a YYYY-MM-DD date, got %q", s)
		}
		return d, nil

	case schema.TypeTime:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected an HH:MM time, got %v", raw)
		}
		if len(s) <= 5 {
			s += ":00"
		}
		if _, err := time.Parse("15:04:05", s); err != nil {
			return nil, fmt.Errorf("expected an HH:MM or HH:MM:SS time, got %q", raw)
		}
		return s, nil

	default:
		return raw, nil
	}
}
