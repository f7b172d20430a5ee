package engine

import (
	"testing"
	"time"

	"registro-backend/internal/schema"
)

func coerceTable() *schema.Table {
	return &schema.Table{
		Name: "tbl_prueba",
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeInt},
			{Name: "fecha", Type: schema.TypeDate},
			{Name: "hora", Type: schema.TypeTime},
			{Name: "cantidad", Type: schema.TypeInt},
			{Name: "temperatura", Type: schema.TypeDecimal},
			{Name: "aceptado", Type: schema.TypeBool},
			{Name: "responsable", Type: schema.TypeText},
			{Name: "observaciones", Type: schema.TypeLongText, Nullable: true},
			{Name: "actualizado", Type: schema.TypeTimestamp, Auto: "update"},
		},
	}
}

func TestCoercePayload_TypeConversions(t *testing.T) {
	tbl := coerceTable()
	out, errs := CoercePayload(tbl, map[string]any{
		"fecha":       "2026-08-31",
		"hora":        "14:30",
		"cantidad":    "42",
		"temperatura": "3.5",
		"aceptado":    "sí",
		"responsable": "Ana",
	})
	if len(errs) > 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}

	d, ok := out["fecha"].(time.Time)
	if !ok || d.Format("2006-01-02") != "2026-08-31" {
		t.Fatalf("expected parsed date, got %v", out["fecha"])
	}
	if out["hora"] != "14:30:00" {
		t.Fatalf("expected HH:MM to gain seconds, got %v", out["hora"])
	}
	if out["cantidad"] != int64(42) {
		t.Fatalf("expected int64 42, got %T %v", out["cantidad"], out["cantidad"])
	}
	if out["temperatura"] != 3.5 {
		t.Fatalf("expected 3.5, got %v", out["temperatura"])
	}
	if out["aceptado"] != true {
		t.Fatalf("expected true for sí, got %v", out["aceptado"])
	}
	if out["responsable"] != "Ana" {
		t.Fatalf("text must pass through, got %v", out["responsable"])
	}
}

func TestCoercePayload_BooleanTokens(t *testing.T) {
	tbl := coerceTable()

	for _, raw := range []any{"true", "1", "si", "sí", "t", "yes", "TRUE", "Sí", true} {
		out, errs := CoercePayload(tbl, map[string]any{"aceptado": raw})
		if len(errs) > 0 {
			t.Fatalf("boolean parse must never fail, got %v for %v", errs, raw)
		}
		if out["aceptado"] != true {
			t.Errorf("expected %v to parse as true", raw)
		}
	}

	for _, raw := range []any{"false", "0", "no", "cualquier cosa", false} {
		out, errs := CoercePayload(tbl, map[string]any{"aceptado": raw})
		if len(errs) > 0 {
			t.Fatalf("boolean parse must never fail, got %v for %v", errs, raw)
		}
		if out["aceptado"] != false {
			t.Errorf("expected %v to parse as false", raw)
		}
	}
}

func TestCoercePayload_EmptyAndNullClearTheColumn(t *testing.T) {
	tbl := coerceTable()
	out, errs := CoercePayload(tbl, map[string]any{
		"fecha":         "",
		"cantidad":      nil,
		"aceptado":      "",
		"observaciones": "",
	})
	if len(errs) > 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	for _, key := range []string{"fecha", "cantidad", "aceptado", "observaciones"} {
		v, ok := out[key]
		if !ok {
			t.Errorf("%s must be present as an explicit nil", key)
		}
		if v != nil {
			t.Errorf("%s: expected nil, got %v", key, v)
		}
	}
}

func TestCoercePayload_DropsUnknownAndManagedKeys(t *testing.T) {
	tbl := coerceTable()
	out, errs := CoercePayload(tbl, map[string]any{
		"columna_falsa": "x",
		"actualizado":   "2026-01-01T00:00:00Z",
		"responsable":   "Luis",
	})
	if len(errs) > 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if _, ok := out["columna_falsa"]; ok {
		t.Fatal("unknown keys must be dropped silently")
	}
	if _, ok := out["actualizado"]; ok {
		t.Fatal("auto-managed columns must not be client-writable")
	}
	if out["responsable"] != "Luis" {
		t.Fatal("valid keys must survive alongside dropped ones")
	}
}

func TestCoercePayload_MalformedValues(t *testing.T) {
	tbl := coerceTable()

	cases := map[string]any{
		"cantidad":    "doce",
		"temperatura": "frío",
		"fecha":       "31/08/2026",
		"hora":        "mediodía",
	}
	for field, raw := range cases {
		_, errs := CoercePayload(tbl, map[string]any{field: raw})
		if len(errs) != 1 {
			t.Errorf("%s=%v: expected one validation error, got %v", field, raw, errs)
			continue
		}
		if errs[0].Field != field || errs[0].Rule != "type" {
			t.Errorf("%s: expected a type error on the field, got %+v", field, errs[0])
		}
	}
}

func TestCoercePayload_SparseUpdateKeepsOnlySentKeys(t *testing.T) {
	tbl := coerceTable()
	out, errs := CoercePayload(tbl, map[string]any{"responsable": "Eva"})
	if len(errs) > 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if len(out) != 1 {
		t.Fatalf("sparse patch must not invent keys, got %v", out)
	}
}
