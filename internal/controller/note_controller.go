package controller

import (
	"context"
	"time"

	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/service"
	"quicknotes-be/pkg/search"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// snippetMaxLen bounds the preview text returned in list responses.
const snippetMaxLen = 120

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListArchived(ctx *fiber.Ctx) error
	ListTrash(ctx *fiber.Ctx) error
	PurgeTrash(ctx *fiber.Ctx) error
	EmptyTrash(ctx *fiber.Ctx) error
	ListEvents(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
	Unarchive(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
	Trash(ctx *fiber.Ctx) error
	HardDelete(ctx *fiber.Ctx) error
	SetPin(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.AuthMiddleware())
	// Static segments before the :id wildcard.
	h.Get("archived", c.ListArchived)
	h.Get("events", c.ListEvents)
	h.Get("trash", c.ListTrash)
	h.Post("trash/purge", c.PurgeTrash)
	h.Delete("trash", c.EmptyTrash)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Put(":id/pin", c.SetPin)
	h.Post(":id/archive", c.Archive)
	h.Post(":id/unarchive", c.Unarchive)
	h.Post(":id/restore", c.Restore)
	h.Delete(":id", c.Trash)
	h.Delete(":id/hard", c.HardDelete)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	note, err := c.noteService.Create(ctx.Context(), req.Content)
	if err != nil {
		return err
	}
	if note == nil {
		// Blank content is silently dropped, matching editor semantics.
		return ctx.JSON(serverutils.SuccessResponse[any]("Empty note discarded", nil))
	}

	res := toNoteResponse(note, false, "")
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Note created", res))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	q := ctx.Query("q", "")

	notes, err := c.noteService.ListActive(ctx.Context(), q)
	if err != nil {
		return err
	}

	res := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, toNoteResponse(n.Note, n.Pinned, q))
	}
	return ctx.JSON(serverutils.SuccessResponse("Active notes", res))
}

func (c *noteController) ListArchived(ctx *fiber.Ctx) error {
	notes, err := c.noteService.ListArchived(ctx.Context())
	if err != nil {
		return err
	}

	res := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, toNoteResponse(n, false, ""))
	}
	return ctx.JSON(serverutils.SuccessResponse("Archived notes", res))
}

func (c *noteController) ListTrash(ctx *fiber.Ctx) error {
	notes, err := c.noteService.ListTrash(ctx.Context(), time.Now())
	if err != nil {
		return err
	}

	res := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, toNoteResponse(n, false, ""))
	}
	return ctx.JSON(serverutils.SuccessResponse("Trashed notes", res))
}

func (c *noteController) PurgeTrash(ctx *fiber.Ctx) error {
	purged, err := c.noteService.PurgeExpiredTrash(ctx.Context(), time.Now())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Trash purged", dto.PurgeResponse{Purged: purged}))
}

func (c *noteController) EmptyTrash(ctx *fiber.Ctx) error {
	purged, err := c.noteService.EmptyTrash(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Trash emptied", dto.PurgeResponse{Purged: purged}))
}

func (c *noteController) ListEvents(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)

	events, err := c.noteService.ListRecentEvents(ctx.Context(), limit)
	if err != nil {
		return err
	}

	res := make([]dto.NoteEventResponse, 0, len(events))
	for _, e := range events {
		res = append(res, dto.NoteEventResponse{
			Id:         e.Id,
			Type:       e.Type,
			Payload:    e.Payload,
			OccurredAt: e.OccurredAt,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Recent events", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid note id"))
	}

	note, err := c.noteService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	if note == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Note not found"))
	}

	pinned, err := c.noteService.IsPinned(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note", toNoteResponse(note, pinned, "")))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid note id"))
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	outcome, err := c.noteService.Update(ctx.Context(), id, req.Content)
	if err != nil {
		return err
	}

	switch outcome {
	case service.UpdateOutcomeNotFound:
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Note not found"))
	case service.UpdateOutcomeDeleted:
		return ctx.JSON(serverutils.SuccessResponse("Note deleted", dto.UpdateNoteResponse{Outcome: string(outcome)}))
	}

	note, err := c.noteService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	if note == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Note not found"))
	}
	pinned, err := c.noteService.IsPinned(ctx.Context(), id)
	if err != nil {
		return err
	}
	res := toNoteResponse(note, pinned, "")
	return ctx.JSON(serverutils.SuccessResponse("Note updated", dto.UpdateNoteResponse{Outcome: string(outcome), Note: &res}))
}

func (c *noteController) Archive(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, c.noteService.Archive, "Note archived")
}

func (c *noteController) Unarchive(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, c.noteService.Unarchive, "Note unarchived")
}

func (c *noteController) Restore(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, c.noteService.Restore, "Note restored")
}

func (c *noteController) Trash(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, c.noteService.Trash, "Note moved to trash")
}

func (c *noteController) HardDelete(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, c.noteService.HardDelete, "Note permanently deleted")
}

func (c *noteController) lifecycle(ctx *fiber.Ctx, op func(context.Context, uuid.UUID) (bool, error), message string) error {
	id, err := parseId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid note id"))
	}

	found, err := op(ctx.Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Note not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any](message, nil))
}

func (c *noteController) SetPin(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid note id"))
	}

	var req dto.PinRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	found, err := c.noteService.SetPinned(ctx.Context(), id, *req.Pinned)
	if err != nil {
		return err
	}
	if !found {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Note not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Pin updated", nil))
}

func parseId(ctx *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(ctx.Params("id"))
}

func toNoteResponse(note *entity.Note, pinned bool, query string) dto.NoteResponse {
	res := dto.NoteResponse{
		Id:         note.Id,
		Content:    note.Content,
		Snippet:    search.Snippet(note.Content, query, snippetMaxLen),
		Pinned:     pinned,
		IsArchived: note.IsArchived,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
		DeletedAt:  note.DeletedAt,
	}
	if query != "" {
		res.Highlights = search.Highlights(note.Content, query)
	}
	return res
}
