package api

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brownbots/ablemate/internal/service"
)

type TaskHandler struct {
	taskService service.TaskService
	validate    *validator.Validate
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validate:    validator.New(),
	}
}

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=1000"`
	Priority    string `json:"priority" validate:"required"`
	TaskType    string `json:"task_type" validate:"required"`
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var request CreateTaskRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	// Anonymous on the open route; the service falls back to the system user.
	ownerID, _ := GetUserIDFromClaims(c)

	task, err := h.taskService.CreateTask(c.Context(), service.CreateTaskInput{
		Title:       request.Title,
		Description: request.Description,
		Priority:    request.Priority,
		TaskType:    request.TaskType,
	}, ownerID)

	if err != nil {
		if errors.Is(err, service.ErrInvalidPriority) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		slog.ErrorContext(c.UserContext(), "Error creating task", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create task"})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 0)

	tasks, err := h.taskService.ListTasks(c.Context(), skip, limit)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing tasks", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list tasks"})
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *TaskHandler) ListMyTasks(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	tasks, err := h.taskService.ListOwnedTasks(c.Context(), userID)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing owned tasks", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list tasks"})
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID format"})
	}

	task, err := h.taskService.GetTask(c.Context(), taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not get task"})
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

type UpdateTaskStatusRequest struct {
	NewStatus string `json:"new_status" validate:"required"`
}

func (h *TaskHandler) UpdateTaskStatus(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID format"})
	}

	var request UpdateTaskStatusRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	// Bearer is optional here; without it the transition is anonymous and no
	// volunteer gets recorded on accept.
	actorID, _ := GetUserIDFromClaims(c)

	task, err := h.taskService.UpdateTaskStatus(c.Context(), taskID, request.NewStatus, actorID)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		slog.ErrorContext(c.UserContext(), "Error updating task status", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update task status"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Task status updated",
		"task":    task,
	})
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID format"})
	}

	actorID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}
	actorRole := GetRoleFromClaims(c)

	err = h.taskService.DeleteTask(c.Context(), taskID, actorID, actorRole)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		case errors.Is(err, service.ErrNotTaskOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}

		slog.ErrorContext(c.UserContext(), "Error deleting task", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete task"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Task deleted"})
}

func parseTaskID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
