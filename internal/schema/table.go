package schema

// FieldType is the semantic type of a column as seen by payload
// coercion and export rendering.
type FieldType string

const (
	TypeText      FieldType = "text"
	TypeLongText  FieldType = "longtext"
	TypeInt       FieldType = "int"
	TypeDecimal   FieldType = "decimal"
	TypeBool      FieldType = "boolean"
	TypeDate      FieldType = "date"
	TypeTime      FieldType = "time"
	TypeTimestamp FieldType = "timestamp"
)

type Field struct {
	Name     string
	Type     FieldType
	Nullable bool
	Auto     string // "create" or "update": managed by the engine, never client-writable
}

// IsAuto returns true if the field is auto-managed by the engine.
func (f Field) IsAuto() bool {
	return f.Auto == "create" || f.Auto == "update"
}

// Table describes one table of the fixed catalog: its columns in
// declaration order, the column order used for UI and exports, and
// its human-readable display name.
type Table struct {
	Name         string // SQL table name, doubles as the wire identifier
	FormalName   string
	Fields       []Field
	DisplayOrder []string
	Operational  bool // daily checklist table (vs catalog/config table)
}

// GetField returns a pointer to the field with the given name, or nil.
func (t *Table) GetField(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// HasField returns true if the table has a column with the given name.
func (t *Table) HasField(name string) bool {
	return t.GetField(name) != nil
}

// FieldNames returns all column names in declaration order.
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// WritableFields returns fields that can be set by the client.
// Excludes the serial primary key and auto-timestamp fields.
func (t *Table) WritableFields() []Field {
	var fields []Field
	for _, f := range t.Fields {
		if f.Name == "id" {
			continue
		}
		if f.IsAuto() {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// AutoUpdateField returns the engine-stamped update timestamp column, if any.
func (t *Table) AutoUpdateField() *Field {
	for i := range t.Fields {
		if t.Fields[i].Auto == "update" {
			return &t.Fields[i]
		}
	}
	return nil
}
