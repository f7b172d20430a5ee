package engine

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"registro-backend/internal/store"
)

// Advisory handles GET /advisory/:table — the active operator notice
// for a table, if any. When several rows are marked active for the same
// table the most recently updated one wins.
func (h *Handler) Advisory(c *fiber.Ctx) error {
	table, err := h.resolveTable(c)
	if err != nil {
		return err
	}

	row, err := store.QueryRow(c.Context(), h.store.Pool, `
		SELECT texto_html FROM conf_parametro_operativo
		WHERE tabla = $1 AND activo
		ORDER BY actualizado DESC LIMIT 1`, table.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(fiber.Map{"active": false})
		}
		return fmt.Errorf("advisory %s: %w", table.Name, err)
	}

	return c.JSON(fiber.Map{"active": true, "html": row["texto_html"]})
}
