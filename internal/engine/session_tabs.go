package engine

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"registro-backend/internal/schema"
)

// SessionTabs handles GET /session/tabs — the resolved tab set for the
// calling session's role plus the display names the UI needs to render
// them.
func (h *Handler) SessionTabs(c *fiber.Ctx) error {
	sess := getSession(c)
	if sess == nil {
		return UnauthorizedError("Authentication required")
	}

	tabs, err := h.ResolveTabs(c.Context(), sess.Role)
	if err != nil {
		return fmt.Errorf("resolve tabs for %s: %w", sess.Role, err)
	}

	formal := make(map[string]string)
	orders := make(map[string][]string)
	labels := make(map[string]string)
	for _, t := range h.registry.AllTables() {
		formal[t.Name] = t.FormalName
		if len(t.DisplayOrder) > 0 {
			orders[t.Name] = t.DisplayOrder
		}
		for _, name := range t.FieldNames() {
			labels[name] = schema.Label(name)
		}
	}

	return c.JSON(fiber.Map{
		"role":          sess.Role,
		"tabs":          tabs,
		"formal_names":  formal,
		"display_order": orders,
		"labels":        labels,
	})
}
