package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"registro-backend/internal/schema"
)

const exportSheet = "Datos"

// Columns never rendered in exports: identity, credentials, the
// submitting-account tag and foreign keys.
var hiddenExportFields = map[string]bool{
	"id":              true,
	"password_hash":   true,
	"usuario":         true,
	"id_razon_social": true,
	"id_rol":          true,
	"id_restaurante":  true,
}

// ExportColumns returns the visible columns of a table in display
// order, falling back to schema declaration order.
func ExportColumns(t *schema.Table) []string {
	visible := make(map[string]bool)
	var base []string
	for _, name := range t.FieldNames() {
		if f := t.GetField(name); f.IsAuto() {
			continue
		}
		if !hiddenExportFields[name] {
			visible[name] = true
			base = append(base, name)
		}
	}

	var cols []string
	for _, name := range t.DisplayOrder {
		if visible[name] {
			cols = append(cols, name)
		}
	}
	if len(cols) == 0 {
		return base
	}
	return cols
}

// prettyBool maps boolean-ish filter text to its localized token.
// The second return is false when the text is not boolean-ish.
func prettyBool(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "t", "si", "sí", "yes":
		return "Sí", true
	case "false", "0", "f", "no":
		return "No", true
	}
	return "", false
}

// FilterSummaryLines renders a human-readable line per active filter,
// column filters ordered by the table's display order.
func FilterSummaryLines(t *schema.Table, req FilterRequest) []string {
	var lines []string

	df := strings.TrimSpace(req.DateFrom)
	dt := strings.TrimSpace(req.DateTo)
	switch {
	case df != "" && dt != "":
		lines = append(lines, fmt.Sprintf("Rango de fechas: %s — %s", df, dt))
	case df != "":
		lines = append(lines, fmt.Sprintf("Fecha desde: %s", df))
	case dt != "":
		lines = append(lines, fmt.Sprintf("Fecha hasta: %s", dt))
	}

	for _, key := range orderedFilterKeys(t, req.ColumnFilters) {
		raw := strings.TrimSpace(fmt.Sprintf("%v", req.ColumnFilters[key]))
		label := schema.Label(key)
		if token, ok := prettyBool(raw); ok {
			lines = append(lines, fmt.Sprintf("%s: %s", label, token))
		} else if raw != "" {
			lines = append(lines, fmt.Sprintf("%s: contiene %q", label, raw))
		}
	}

	return lines
}

func orderedFilterKeys(t *schema.Table, raw map[string]any) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, name := range t.DisplayOrder {
		if _, ok := raw[name]; ok {
			keys = append(keys, name)
			seen[name] = true
		}
	}
	// Filters on columns outside the display order still get a line.
	var rest []string
	for k := range raw {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	if len(rest) > 0 {
		sort.Strings(rest)
		keys = append(keys, rest...)
	}
	return keys
}

// Export handles POST /export
func (h *Handler) Export(c *fiber.Ctx) error {
	var req FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return NewAppError("INVALID_PAYLOAD", 400, "Invalid JSON body")
	}

	table := h.registry.Lookup(req.Table)
	if table == nil {
		return UnknownTableError(req.Table)
	}

	rows, err := h.queryFiltered(c.Context(), table, req, 0)
	if err != nil {
		return fmt.Errorf("export query %s: %w", table.Name, err)
	}

	f, err := BuildExportWorkbook(table, req, rows)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="export_%s.xlsx"`, table.Name))
	return c.Send(buf.Bytes())
}

// BuildExportWorkbook renders the filtered rows into a styled sheet:
// merged title, one italic line per active filter, a bold header using
// display labels, Sí/No booleans, auto-filter, frozen header panes and
// content-sized column widths.
func BuildExportWorkbook(t *schema.Table, req FilterRequest, rows []map[string]any) (*excelize.File, error) {
	cols := ExportColumns(t)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	italicStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		f.Close()
		return nil, err
	}

	// Title row, merged across all data columns.
	if err := f.MergeCell(exportSheet, "A1", fmt.Sprintf("%s1", lastCol)); err != nil {
		f.Close()
		return nil, err
	}
	title := fmt.Sprintf("Exportación: %s", t.FormalName)
	if err := f.SetCellValue(exportSheet, "A1", title); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "A1", titleStyle); err != nil {
		f.Close()
		return nil, err
	}

	// One italic line per active filter.
	rowIdx := 2
	for _, line := range FilterSummaryLines(t, req) {
		start := fmt.Sprintf("A%d", rowIdx)
		if err := f.MergeCell(exportSheet, start, fmt.Sprintf("%s%d", lastCol, rowIdx)); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, start, fmt.Sprintf("Filtro: %s", line)); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(exportSheet, start, start, italicStyle); err != nil {
			f.Close()
			return nil, err
		}
		rowIdx++
	}

	// Header row with display labels.
	headerRow := rowIdx
	widths := make([]int, len(cols))
	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			f.Close()
			return nil, err
		}
		label := schema.Label(col)
		if err := f.SetCellValue(exportSheet, cell, label); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(exportSheet, cell, cell, boldStyle); err != nil {
			f.Close()
			return nil, err
		}
		widths[i] = len([]rune(label))
	}

	// Data rows: booleans become Sí/No, everything else its canonical
	// transport form.
	for rIdx, row := range rows {
		rec := transportRecord(t, row)
		for cIdx, col := range cols {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, headerRow+1+rIdx)
			if err != nil {
				f.Close()
				return nil, err
			}
			val := exportCellValue(rec[col])
			if err := f.SetCellValue(exportSheet, cell, val); err != nil {
				f.Close()
				return nil, err
			}
			if n := len([]rune(fmt.Sprintf("%v", val))); n > widths[cIdx] {
				widths[cIdx] = n
			}
		}
	}

	// Auto-filter on the header, panes frozen above the first data row.
	filterRef := fmt.Sprintf("A%d:%s%d", headerRow, lastCol, headerRow+max(len(rows), 1))
	if err := f.AutoFilter(exportSheet, filterRef, nil); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, err
	}

	// Column widths sized to content, clamped to [10, 50] characters.
	for i := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, name, name, clampWidth(widths[i])); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func exportCellValue(v any) any {
	switch b := v.(type) {
	case bool:
		if b {
			return "Sí"
		}
		return "No"
	case nil:
		return ""
	default:
		return v
	}
}

func clampWidth(contentLen int) float64 {
	w := contentLen + 2
	if w < 10 {
		w = 10
	}
	if w > 50 {
		w = 50
	}
	return float64(w)
}
