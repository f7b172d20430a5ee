package engine

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the generic record CRUD, reporting and
// permission endpoints. All routes require an authenticated session;
// the permission pair additionally requires the Admin role.
func RegisterRoutes(app *fiber.App, h *Handler, authMW, adminMW fiber.Handler) {
	records := app.Group("/records", authMW)
	records.Get("/:table", h.List)
	records.Post("/:table", h.Create)
	records.Put("/:table/:id", h.Update)
	records.Delete("/:table/:id", h.Delete)

	app.Post("/query", authMW, h.Query)
	app.Post("/export", authMW, h.Export)
	app.Get("/advisory/:table", authMW, h.Advisory)
	app.Get("/session/tabs", authMW, h.SessionTabs)

	app.Get("/permissions", authMW, adminMW, h.GetPermissions)
	app.Post("/permissions", authMW, adminMW, h.SetPermissions)
}
