package controller_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"quicknotes-be/internal/controller"
	"quicknotes-be/internal/model"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/internal/service"
	"quicknotes-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, service.INoteService) {
	t.Helper()
	t.Setenv("API_TOKEN", "")

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := service.NewPublisherService("MIRROR_SYNC_TEST", pubSub)
	mirrorSync := service.NewMirrorSyncService(uowFactory, publisher, log)
	noteService := service.NewNoteService(uowFactory, mirrorSync, nil, log, 30)

	app := fiber.New()
	controller.NewNoteController(noteService).RegisterRoutes(app.Group("/api"))
	return app, noteService
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()
	return res.StatusCode
}

func TestSetPinRejectsMissingPinnedField(t *testing.T) {
	app, svc := newTestApp(t)

	note, err := svc.Create(context.Background(), "pin target")
	require.NoError(t, err)

	status := doJSON(t, app, "PUT", "/api/note/v1/"+note.Id.String()+"/pin", `{}`)
	require.Equal(t, fiber.StatusBadRequest, status)

	pinned, err := svc.IsPinned(context.Background(), note.Id)
	require.NoError(t, err)
	require.False(t, pinned)
}

func TestSetPinAcceptsExplicitFalse(t *testing.T) {
	app, svc := newTestApp(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, "pin target")
	require.NoError(t, err)
	_, err = svc.SetPinned(ctx, note.Id, true)
	require.NoError(t, err)

	// An explicit false is a valid unpin, not a missing field.
	status := doJSON(t, app, "PUT", "/api/note/v1/"+note.Id.String()+"/pin", `{"pinned": false}`)
	require.Equal(t, fiber.StatusOK, status)

	pinned, err := svc.IsPinned(ctx, note.Id)
	require.NoError(t, err)
	require.False(t, pinned)

	status = doJSON(t, app, "PUT", "/api/note/v1/"+note.Id.String()+"/pin", `{"pinned": true}`)
	require.Equal(t, fiber.StatusOK, status)

	pinned, err = svc.IsPinned(ctx, note.Id)
	require.NoError(t, err)
	require.True(t, pinned)
}

func TestCreateRejectsOversizedContent(t *testing.T) {
	app, svc := newTestApp(t)

	body := `{"content":"` + strings.Repeat("a", 100001) + `"}`
	status := doJSON(t, app, "POST", "/api/note/v1", body)
	require.Equal(t, fiber.StatusBadRequest, status)

	active, err := svc.ListActive(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestUpdateRejectsOversizedContent(t *testing.T) {
	app, svc := newTestApp(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, "short")
	require.NoError(t, err)

	body := `{"content":"` + strings.Repeat("b", 100001) + `"}`
	status := doJSON(t, app, "PUT", "/api/note/v1/"+note.Id.String(), body)
	require.Equal(t, fiber.StatusBadRequest, status)

	got, err := svc.Get(ctx, note.Id)
	require.NoError(t, err)
	require.Equal(t, "short", got.Content)
}
