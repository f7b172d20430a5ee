package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"

	"registro-backend/internal/schema"
	"registro-backend/internal/store"
)

// BuildMatrix resolves the tab set for every role: a persisted
// non-empty override wins, otherwise the computed default applies.
// Admin always keeps the permission-management tab, whatever the
// override says.
func BuildMatrix(reg *schema.Registry, roles []string, saved map[string][]string) map[string][]string {
	matrix := make(map[string][]string, len(roles))
	for _, role := range roles {
		var tabs []string
		if override, ok := saved[role]; ok && len(override) > 0 {
			tabs = append(tabs, override...)
		} else {
			tabs = reg.DefaultTabsForRole(role)
		}
		if role == schema.RoleAdmin {
			tabs = ensureTab(tabs, schema.TabPermissions)
		}
		sort.Strings(tabs)
		matrix[role] = dedupe(tabs)
	}
	return matrix
}

// SanitizeTabs filters a submitted tab set down to known identifiers,
// sorted and deduplicated, re-adding the permission-management tab for
// Admin.
func SanitizeTabs(reg *schema.Registry, role string, tabs []string) []string {
	valid := make(map[string]bool)
	for _, key := range reg.AllTabKeys() {
		valid[key] = true
	}

	var clean []string
	for _, tab := range tabs {
		if valid[tab] {
			clean = append(clean, tab)
		}
	}
	if role == schema.RoleAdmin {
		clean = ensureTab(clean, schema.TabPermissions)
	}
	sort.Strings(clean)
	return dedupe(clean)
}

// ResolveTabs returns the visible tab set for one role.
func (h *Handler) ResolveTabs(ctx context.Context, role string) ([]string, error) {
	saved, err := loadSavedTabs(ctx, h.store.Pool)
	if err != nil {
		return nil, err
	}
	matrix := BuildMatrix(h.registry, []string{role}, saved)
	return matrix[role], nil
}

// GetPermissions handles GET /permissions (Admin only, gated by middleware).
func (h *Handler) GetPermissions(c *fiber.Ctx) error {
	roles, err := roleNames(c.Context(), h.store.Pool)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	saved, err := loadSavedTabs(c.Context(), h.store.Pool)
	if err != nil {
		return fmt.Errorf("load saved tabs: %w", err)
	}
	return c.JSON(BuildMatrix(h.registry, roles, saved))
}

// SetPermissions handles POST /permissions (Admin only, gated by
// middleware). Unknown roles are skipped and unknown tab identifiers
// dropped, neither is an error.
func (h *Handler) SetPermissions(c *fiber.Ctx) error {
	var payload map[string][]string
	if err := c.BodyParser(&payload); err != nil {
		return NewAppError("INVALID_PAYLOAD", 400, "Invalid JSON body")
	}

	roles, err := roleNames(c.Context(), h.store.Pool)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	known := make(map[string]bool, len(roles))
	for _, r := range roles {
		known[r] = true
	}

	for role, tabs := range payload {
		if !known[role] {
			continue
		}
		clean := SanitizeTabs(h.registry, role, tabs)
		encoded, err := json.Marshal(clean)
		if err != nil {
			return fmt.Errorf("encode tabs: %w", err)
		}
		_, err = store.Exec(c.Context(), h.store.Pool, `
			INSERT INTO conf_permisos_rol (rol, tabs_json) VALUES ($1, $2)
			ON CONFLICT (rol) DO UPDATE SET tabs_json = EXCLUDED.tabs_json`,
			role, string(encoded))
		if err != nil {
			return fmt.Errorf("save tabs for %s: %w", role, err)
		}
	}

	return c.JSON(fiber.Map{"ok": true})
}

func roleNames(ctx context.Context, q store.Querier) ([]string, error) {
	rows, err := store.QueryRows(ctx, q, "SELECT nom_rol FROM tbl_roles ORDER BY nom_rol")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row["nom_rol"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func loadSavedTabs(ctx context.Context, q store.Querier) (map[string][]string, error) {
	rows, err := store.QueryRows(ctx, q, "SELECT rol, tabs_json FROM conf_permisos_rol")
	if err != nil {
		return nil, err
	}
	saved := make(map[string][]string, len(rows))
	for _, row := range rows {
		role, _ := row["rol"].(string)
		encoded, _ := row["tabs_json"].(string)
		var tabs []string
		if encoded != "" {
			if err := json.Unmarshal([]byte(encoded), &tabs); err != nil {
				continue // a corrupt row falls back to defaults
			}
		}
		saved[role] = tabs
	}
	return saved, nil
}

func ensureTab(tabs []string, key string) []string {
	for _, t := range tabs {
		if t == key {
			return tabs
		}
	}
	return append(tabs, key)
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	var prev string
	for i, t := range sorted {
		if i == 0 || t != prev {
			out = append(out, t)
		}
		prev = t
	}
	return out
}
