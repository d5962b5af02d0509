package http

import "github.com/gofiber/fiber/v2"

// Register wires the document routes onto app.
func Register(app *fiber.App, h *Handler) {
	app.Get("/health", h.Health)

	d := app.Group("/documents")
	d.Post("/", h.CreateDocument)
	d.Get("/:id", h.GetDocument)
	d.Delete("/:id", h.DeleteDocument)
	d.Get("/:id/kinds", h.AvailableKinds)
	d.Put("/:id/template", h.SetTemplate)
	d.Get("/:id/preview", h.Preview)
	d.Get("/:id/export.pdf", h.Export)

	s := d.Group("/:id/sections")
	s.Post("/", h.AddSection)
	s.Delete("/:sid", h.DeleteSection)
	s.Post("/:sid/move", h.MoveSection)
	s.Post("/:sid/visibility", h.ToggleSectionVisibility)
	s.Post("/:sid/visibility/:target", h.ToggleEntryVisibility)
	s.Put("/:sid/title", h.UpdateSectionTitle)
	s.Post("/:sid/reorder", h.ReorderEntries)
	s.Post("/:sid/drop", h.Drop)

	s.Post("/:sid/entries", h.AddEntry)
	s.Put("/:sid/entries/:eid", h.UpdateEntry)
	s.Post("/:sid/entries/:eid/paste", h.Paste)
	s.Delete("/:sid/entries/:eid", h.DeleteEntry)
	s.Delete("/:sid/groups/:prefix", h.DeleteGroup)
}
