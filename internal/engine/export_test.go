package engine

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"registro-backend/internal/schema"
)

func TestExportColumns_HiddenFieldsAndDisplayOrder(t *testing.T) {
	reg := schema.NewRegistry()

	cols := ExportColumns(reg.Lookup("tbl_temp_equipos"))
	want := []string{"fecha", "tipo_de_equipo", "num_equipo", "tipo_toma", "temperatura", "responsable", "observaciones"}
	if !reflect.DeepEqual(cols, want) {
		t.Fatalf("expected display order %v, got %v", want, cols)
	}
	for _, col := range cols {
		if hiddenExportFields[col] {
			t.Fatalf("hidden column %s leaked into the export", col)
		}
	}

	// The account table hides credentials and foreign keys; with no
	// display order the declaration order applies.
	cols = ExportColumns(reg.Lookup("tbl_usuario"))
	want = []string{"nom_usuario", "activo"}
	if !reflect.DeepEqual(cols, want) {
		t.Fatalf("expected %v for tbl_usuario, got %v", want, cols)
	}
}

func TestExportColumns_AutoColumnsExcluded(t *testing.T) {
	reg := schema.NewRegistry()
	for _, col := range ExportColumns(reg.Lookup("conf_parametro_operativo")) {
		if col == "actualizado" {
			t.Fatal("auto-managed columns must not be exported")
		}
	}
}

func TestFilterSummaryLines(t *testing.T) {
	reg := schema.NewRegistry()
	tbl := reg.Lookup("tbl_recepcion_materias_primas")

	lines := FilterSummaryLines(tbl, FilterRequest{
		DateFrom: "2026-08-01",
		DateTo:   "2026-08-31",
		ColumnFilters: map[string]any{
			"aceptado":  "true",
			"proveedor": "Avícola",
		},
	})

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", lines)
	}
	if lines[0] != "Rango de fechas: 2026-08-01 — 2026-08-31" {
		t.Fatalf("unexpected range line: %q", lines[0])
	}
	// Column lines follow the table's display order: proveedor before aceptado.
	if lines[1] != `Proveedor: contiene "Avícola"` {
		t.Fatalf("unexpected contains line: %q", lines[1])
	}
	if lines[2] != "Aceptado: Sí" {
		t.Fatalf("unexpected boolean line: %q", lines[2])
	}
}

func TestFilterSummaryLines_SingleBound(t *testing.T) {
	reg := schema.NewRegistry()
	tbl := reg.Lookup("tbl_bpm")

	lines := FilterSummaryLines(tbl, FilterRequest{DateFrom: "2026-08-01"})
	if len(lines) != 1 || lines[0] != "Fecha desde: 2026-08-01" {
		t.Fatalf("unexpected lines: %v", lines)
	}

	lines = FilterSummaryLines(tbl, FilterRequest{DateTo: "2026-08-31"})
	if len(lines) != 1 || lines[0] != "Fecha hasta: 2026-08-31" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestPrettyBool(t *testing.T) {
	for _, raw := range []string{"true", "1", "si", "Sí", "YES", " t "} {
		if got, ok := prettyBool(raw); !ok || got != "Sí" {
			t.Errorf("%q: expected Sí, got %q ok=%v", raw, got, ok)
		}
	}
	for _, raw := range []string{"false", "0", "No", "f"} {
		if got, ok := prettyBool(raw); !ok || got != "No" {
			t.Errorf("%q: expected No, got %q ok=%v", raw, got, ok)
		}
	}
	if _, ok := prettyBool("Avícola"); ok {
		t.Fatal("free text must not render as a boolean token")
	}
}

func TestBuildExportWorkbook(t *testing.T) {
	reg := schema.NewRegistry()
	tbl := reg.Lookup("tbl_aceite_quemado")

	req := FilterRequest{
		Table:         tbl.Name,
		DateFrom:      "2026-08-01",
		ColumnFilters: map[string]any{"filtracion": "true"},
	}
	rows := []map[string]any{
		{"id": int64(7), "fecha": nil, "num_freidora": int64(2), "filtracion": true,
			"cambio_de_aceite": false, "responsable": "Ana", "observaciones": nil, "usuario": "admin"},
	}

	f, err := BuildExportWorkbook(tbl, req, rows)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(exportSheet, ref)
		if err != nil {
			t.Fatalf("read %s: %v", ref, err)
		}
		return v
	}

	if got := cell("A1"); got != "Exportación: Aceite Quemado" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := cell("A2"); got != "Filtro: Fecha desde: 2026-08-01" {
		t.Fatalf("unexpected first filter line: %q", got)
	}
	if got := cell("A3"); got != "Filtro: Filtración: Sí" {
		t.Fatalf("unexpected second filter line: %q", got)
	}

	// Header row sits below the two filter lines.
	headerRow := 4
	wantHeader := []string{"Fecha", "Nº freidora", "Filtración", "Cambio de aceite", "Responsable", "Observaciones"}
	for i, label := range wantHeader {
		ref := fmt.Sprintf("%c%d", 'A'+i, headerRow)
		if got := cell(ref); got != label {
			t.Fatalf("header %s: expected %q, got %q", ref, label, got)
		}
	}

	// First data row: booleans as Sí/No, nil as empty.
	dataRow := headerRow + 1
	if got := cell(fmt.Sprintf("A%d", dataRow)); got != "" {
		t.Fatalf("nil date must render empty, got %q", got)
	}
	if got := cell(fmt.Sprintf("C%d", dataRow)); got != "Sí" {
		t.Fatalf("true must render Sí, got %q", got)
	}
	if got := cell(fmt.Sprintf("D%d", dataRow)); got != "No" {
		t.Fatalf("false must render No, got %q", got)
	}
	if got := cell(fmt.Sprintf("E%d", dataRow)); got != "Ana" {
		t.Fatalf("unexpected responsable cell: %q", got)
	}

	// The hidden usuario column must not appear anywhere in the header.
	rowsOut, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	for _, c := range rowsOut[headerRow-1] {
		if strings.EqualFold(c, "usuario") {
			t.Fatal("usuario column leaked into the export")
		}
	}
}
