package schema

import "sort"

// Tab identifiers gate visibility of one UI section per role. Table
// tabs share the table name; the two utility tabs are fixed keys.
const (
	TabReports     = "tab_reportes"
	TabPermissions = "tab_permisos_roles"
)

const RoleAdmin = "Admin"

// DefaultRoles seeds the role catalog on first boot.
var DefaultRoles = []string{"Admin", "Supervisor", "Operativo"}

// AllTabKeys returns every known tab identifier: catalog tables,
// operational tables, and the utility tabs.
func (r *Registry) AllTabKeys() []string {
	var keys []string
	for _, t := range r.AllTables() {
		keys = append(keys, t.Name)
	}
	return append(keys, TabReports, TabPermissions)
}

// OperationalTabKeys returns the tab identifiers of the daily
// checklist tables.
func (r *Registry) OperationalTabKeys() []string {
	var keys []string
	for _, t := range r.OperationalTables() {
		keys = append(keys, t.Name)
	}
	return keys
}

// DefaultTabsForRole computes the tab set a role gets when no
// persisted override exists. Admin sees everything including the
// permission-management tab; every other role sees the operational
// tables plus reports.
func (r *Registry) DefaultTabsForRole(role string) []string {
	var tabs []string
	if role == RoleAdmin {
		tabs = r.AllTabKeys()
	} else {
		tabs = append(r.OperationalTabKeys(), TabReports)
	}
	sort.Strings(tabs)
	return tabs
}
