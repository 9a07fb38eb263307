package controller

import (
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/pkg/mirror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IWidgetController serves the denormalized widget mirror. It reads from
// the mirror store only, never from the notes database, so it stays
// usable even when the main store is down.
type IWidgetController interface {
	RegisterRoutes(r fiber.Router)
	ListNotes(ctx *fiber.Ctx) error
	ShowSelected(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
}

type widgetController struct {
	store mirror.Store
}

func NewWidgetController(store mirror.Store) IWidgetController {
	return &widgetController{
		store: store,
	}
}

func (c *widgetController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/widget/v1")
	h.Use(serverutils.AuthMiddleware())
	h.Get("notes", c.ListNotes)
	h.Get("selected", c.ShowSelected)
	h.Put("selected/:id", c.Select)
}

func (c *widgetController) ListNotes(ctx *fiber.Ctx) error {
	entries, err := c.store.List(ctx.Context())
	if err != nil {
		return err
	}

	res := make([]dto.WidgetNoteResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, dto.WidgetNoteResponse{Id: e.Id, Content: e.Content})
	}
	return ctx.JSON(serverutils.SuccessResponse("Widget notes", res))
}

func (c *widgetController) ShowSelected(ctx *fiber.Ctx) error {
	id, ok, err := c.store.Selected(ctx.Context())
	if err != nil {
		return err
	}
	if !ok {
		// A missing or dangling selection is not an error; the widget
		// falls back to its placeholder state.
		return ctx.JSON(serverutils.SuccessResponse("No selection", dto.WidgetSelectedResponse{Exists: false}))
	}

	content, ok, err := c.store.ContentFor(ctx.Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return ctx.JSON(serverutils.SuccessResponse("No selection", dto.WidgetSelectedResponse{Exists: false}))
	}

	return ctx.JSON(serverutils.SuccessResponse("Selected note", dto.WidgetSelectedResponse{
		Id:      id,
		Content: content,
		Exists:  true,
	}))
}

func (c *widgetController) Select(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	if _, err := uuid.Parse(idParam); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid note id"))
	}

	if err := c.store.Select(ctx.Context(), idParam); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Selection updated", nil))
}
