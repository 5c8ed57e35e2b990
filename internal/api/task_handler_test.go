package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownbots/ablemate/internal/api"
	"github.com/brownbots/ablemate/internal/jwt"
	"github.com/brownbots/ablemate/internal/model"
	"github.com/brownbots/ablemate/internal/service"
)

type stubTaskService struct {
	createFn func(ctx context.Context, input service.CreateTaskInput, ownerID int64) (*model.TaskDetails, error)
	getFn    func(ctx context.Context, taskID int64) (*model.TaskDetails, error)
	updateFn func(ctx context.Context, taskID int64, newStatus string, actorID int64) (*model.TaskDetails, error)
	deleteFn func(ctx context.Context, taskID int64, actorID int64, actorRole string) error
}

func (s *stubTaskService) CreateTask(ctx context.Context, input service.CreateTaskInput, ownerID int64) (*model.TaskDetails, error) {
	return s.createFn(ctx, input, ownerID)
}

func (s *stubTaskService) ListTasks(context.Context, int, int) ([]model.TaskDetails, error) {
	return []model.TaskDetails{}, nil
}

func (s *stubTaskService) ListOwnedTasks(context.Context, int64) ([]model.TaskDetails, error) {
	return []model.TaskDetails{}, nil
}

func (s *stubTaskService) GetTask(ctx context.Context, taskID int64) (*model.TaskDetails, error) {
	return s.getFn(ctx, taskID)
}

func (s *stubTaskService) UpdateTaskStatus(ctx context.Context, taskID int64, newStatus string, actorID int64) (*model.TaskDetails, error) {
	return s.updateFn(ctx, taskID, newStatus, actorID)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, taskID int64, actorID int64, actorRole string) error {
	return s.deleteFn(ctx, taskID, actorID, actorRole)
}

func newTestApp(svc service.TaskService) *fiber.App {
	handler := api.NewTaskHandler(svc)

	app := fiber.New()
	tasks := app.Group("/api/tasks")
	tasks.Post("/", api.OptionalAuthMiddleware(), handler.CreateTask)
	tasks.Get("/:id", handler.GetTask)
	tasks.Put("/:id/status", api.OptionalAuthMiddleware(), handler.UpdateTaskStatus)
	tasks.Delete("/:id", api.AuthMiddleware(), handler.DeleteTask)
	return app
}

func TestGetTask_NotFound(t *testing.T) {
	svc := &stubTaskService{
		getFn: func(context.Context, int64) (*model.TaskDetails, error) {
			return nil, service.ErrTaskNotFound
		},
	}
	app := newTestApp(svc)

	req, _ := http.NewRequest(http.MethodGet, "/api/tasks/99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateTaskStatus_InvalidStatus(t *testing.T) {
	svc := &stubTaskService{
		updateFn: func(context.Context, int64, string, int64) (*model.TaskDetails, error) {
			return nil, service.ErrInvalidStatus
		},
	}
	app := newTestApp(svc)

	body := strings.NewReader(`{"new_status":"archived"}`)
	req, _ := http.NewRequest(http.MethodPut, "/api/tasks/1/status", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteTask_RequiresBearer(t *testing.T) {
	svc := &stubTaskService{
		deleteFn: func(context.Context, int64, int64, string) error {
			t.Errorf("service must not be reached without credentials")
			return nil
		},
	}
	app := newTestApp(svc)

	req, _ := http.NewRequest(http.MethodDelete, "/api/tasks/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteTask_ForbiddenForNonOwner(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := &stubTaskService{
		deleteFn: func(_ context.Context, _ int64, actorID int64, actorRole string) error {
			assert.Equal(t, int64(42), actorID)
			assert.Equal(t, model.RoleVolunteer, actorRole)
			return service.ErrNotTaskOwner
		},
	}
	app := newTestApp(svc)

	token, err := jwt.GenerateToken(&model.User{ID: 42, Email: "v@example.com", Role: model.RoleVolunteer})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodDelete, "/api/tasks/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCreateTask_AnonymousPassesZeroOwner(t *testing.T) {
	svc := &stubTaskService{
		createFn: func(_ context.Context, input service.CreateTaskInput, ownerID int64) (*model.TaskDetails, error) {
			assert.Equal(t, int64(0), ownerID)
			return &model.TaskDetails{
				Task:      model.Task{ID: 1, Title: input.Title, Status: model.StatusPending},
				OwnerName: "AbleMate System",
			}, nil
		},
	}
	app := newTestApp(svc)

	body := strings.NewReader(`{"title":"Grocery run","description":"Weekly shop","priority":"HIGH","task_type":"errand"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/tasks/", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "pending", decoded["status"])
}

func TestCreateTask_MissingTitle(t *testing.T) {
	svc := &stubTaskService{
		createFn: func(context.Context, service.CreateTaskInput, int64) (*model.TaskDetails, error) {
			t.Errorf("service must not be reached with invalid input")
			return nil, nil
		},
	}
	app := newTestApp(svc)

	body := strings.NewReader(`{"description":"Weekly shop","priority":"high","task_type":"errand"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/tasks/", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
