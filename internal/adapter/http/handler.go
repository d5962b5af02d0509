package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/editor"
	"resume-builder/internal/logger"
	"resume-builder/internal/usecase"
)

// Handler exposes the document service over HTTP. Structural operations the
// builder refuses answer 200 with the unchanged document.
type Handler struct {
	svc *usecase.DocumentService
}

func NewHandler(svc *usecase.DocumentService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) CreateDocument(c *fiber.Ctx) error {
	rec, err := h.svc.Create(c.UserContext(), c.Body())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *Handler) GetDocument(c *fiber.Ctx) error {
	id, ok := documentID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid document id")
	}
	rec, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rec)
}

func (h *Handler) DeleteDocument(c *fiber.Ctx) error {
	id, ok := documentID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid document id")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type kindOption struct {
	Kind        domain.Kind `json:"kind"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// AvailableKinds lists what the add-section picker offers.
func (h *Handler) AvailableKinds(c *fiber.Ctx) error {
	id, ok := documentID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid document id")
	}
	rec, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	var opts []kindOption
	for _, k := range domain.AvailableKinds(rec.Document) {
		opts = append(opts, kindOption{Kind: k, Title: domain.DefaultTitle(k), Description: domain.Description(k)})
	}
	return c.JSON(fiber.Map{"kinds": opts, "allAdded": domain.AllKindsAdded(rec.Document)})
}

type templateReq struct {
	Template string `json:"template"`
}

func (h *Handler) SetTemplate(c *fiber.Ctx) error {
	var req templateReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid payload")
	}
	t := domain.Template(req.Template)
	if !t.Valid() {
		return respondError(c, fiber.StatusBadRequest, "unknown template")
	}
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().SetTemplate(d, t)
	})
}

type addSectionReq struct {
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
}

func (h *Handler) AddSection(c *fiber.Ctx) error {
	var req addSectionReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid payload")
	}
	k, ok := domain.ParseKind(req.Kind)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "unknown section kind")
	}
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().AddSection(d, k, req.Title)
	})
}

func (h *Handler) DeleteSection(c *fiber.Ctx) error {
	sid := c.Params("sid")
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().DeleteSection(d, sid)
	})
}

type moveReq struct {
	Direction string `json:"direction"`
}

func (h *Handler) MoveSection(c *fiber.Ctx) error {
	var req moveReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid payload")
	}
	dir, ok := usecase.ParseDirection(req.Direction)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "direction must be up or down")
	}
	sid := c.Params("sid")
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().MoveSection(d, sid, dir)
	})
}

func (h *Handler) ToggleSectionVisibility(c *fiber.Ctx) error {
	sid := c.Params("sid")
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().ToggleSectionVisibility(d, sid)
	})
}

// ToggleEntryVisibility flips one entry, or a whole group when target is a
// group prefix.
func (h *Handler) ToggleEntryVisibility(c *fiber.Ctx) error {
	sid, target := c.Params("sid"), c.Params("target")
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().ToggleEntryVisibility(d, sid, target)
	})
}

type titleReq struct {
	Title string `json:"title"`
}

func (h *Handler) UpdateSectionTitle(c *fiber.Ctx) error {
	var req titleReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid payload")
	}
	sid := c.Params("sid")
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().UpdateSectionTitle(d, sid, req.Title)
	})
}

type reorderReq struct {
	Order   []string `json:"order"`
	Grouped bool     `json:"grouped"`
}

func (h *Handler) ReorderEntries(c *fiber.Ctx) error {
	var req reorderReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid payload")
	}
	sid := c.Params("sid")
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().ReorderEntries(d, sid, req.Order, req.Grouped)
	})
}

type dropReq struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Grouped bool   `json:"grouped"`
}

// Drop completes a drag gesture: source is released onto target.
func (h *Handler) Drop(c *fiber.Ctx) error {
	id, ok := documentID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid document id")
	}
	var req dropReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid payload")
	}
	rec, err := h.svc.Drop(c.UserContext(), id, c.Params("sid"), req.Source, req.Target, req.Grouped)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rec)
}

func (h *Handler) AddEntry(c *fiber.Ctx) error {
	sid := c.Params("sid")
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().AddEntry(d, sid)
	})
}

type contentReq struct {
	Content string `json:"content"`
}

// UpdateEntry stores new content through the entry's field rules.
func (h *Handler) UpdateEntry(c *fiber.Ctx) error {
	id, ok := documentID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid document id")
	}
	var req contentReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid payload")
	}
	rec, err := h.svc.UpdateEntry(c.UserContext(), id, c.Params("sid"), c.Params("eid"), req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rec)
}

type pasteReq struct {
	editor.ClipboardData
	// At is the character offset of the caret; the end when absent.
	At *int `json:"at,omitempty"`
}

func (h *Handler) Paste(c *fiber.Ctx) error {
	id, ok := documentID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid document id")
	}
	var req pasteReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid payload")
	}
	at := -1
	if req.At != nil && *req.At >= 0 {
		at = *req.At
	}
	rec, err := h.svc.Paste(c.UserContext(), id, c.Params("sid"), c.Params("eid"), req.ClipboardData, at)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rec)
}

func (h *Handler) DeleteEntry(c *fiber.Ctx) error {
	sid, eid := c.Params("sid"), c.Params("eid")
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().DeleteEntry(d, sid, eid)
	})
}

func (h *Handler) DeleteGroup(c *fiber.Ctx) error {
	sid, prefix := c.Params("sid"), c.Params("prefix")
	return h.mutate(c, func(d domain.Document) domain.Document {
		return h.svc.Builder().DeleteGroup(d, sid, prefix)
	})
}

// Preview returns the print view as HTML.
func (h *Handler) Preview(c *fiber.Ctx) error {
	id, ok := documentID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid document id")
	}
	page, err := h.svc.Preview(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}

// Export prints the document to PDF.
func (h *Handler) Export(c *fiber.Ctx) error {
	id, ok := documentID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid document id")
	}
	pdf, err := h.svc.Export(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	logger.Info().Str("document", id.String()).Int("bytes", len(pdf)).Msg("document exported")
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume.pdf"`)
	return c.Send(pdf)
}

func (h *Handler) mutate(c *fiber.Ctx, op func(domain.Document) domain.Document) error {
	id, ok := documentID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid document id")
	}
	rec, err := h.svc.Mutate(c.UserContext(), id, op)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rec)
}

func documentID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}
