package schema

// Registry holds the closed table catalog, built once at startup.
// Lookups by table name are the only string-keyed entry point; an
// unknown name returns nil and must be mapped to a 404 by the caller
// before any storage access happens.
type Registry struct {
	tables map[string]*Table
	order  []string
}

func NewRegistry() *Registry {
	r := &Registry{tables: make(map[string]*Table)}
	for _, t := range catalogTables() {
		r.add(t)
	}
	for _, t := range operationalTables() {
		r.add(t)
	}
	return r
}

func (r *Registry) add(t *Table) {
	r.tables[t.Name] = t
	r.order = append(r.order, t.Name)
}

// Lookup returns the table with the given name, or nil.
func (r *Registry) Lookup(name string) *Table {
	return r.tables[name]
}

// AllTables returns every table in declaration order.
func (r *Registry) AllTables() []*Table {
	tables := make([]*Table, 0, len(r.order))
	for _, name := range r.order {
		tables = append(tables, r.tables[name])
	}
	return tables
}

// OperationalTables returns the daily checklist tables in declaration order.
func (r *Registry) OperationalTables() []*Table {
	var tables []*Table
	for _, t := range r.AllTables() {
		if t.Operational {
			tables = append(tables, t)
		}
	}
	return tables
}
