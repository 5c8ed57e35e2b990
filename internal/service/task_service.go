package service

import (
	"context"
	"errors"
	"strings"

	"github.com/brownbots/ablemate/internal/events"
	"github.com/brownbots/ablemate/internal/model"
	"github.com/brownbots/ablemate/internal/repository"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidPriority   = errors.New("priority must be low, medium or high")
	ErrInvalidStatus     = errors.New("status must be pending, accepted, in_progress, completed or cancelled")
	ErrInvalidTransition = errors.New("status transition is not allowed")
	ErrNotTaskOwner      = errors.New("only the task owner or an admin can delete a task")
)

// statusTransitions is the allowed lifecycle graph. completed and cancelled
// are terminal.
var statusTransitions = map[string][]string{
	model.StatusPending:    {model.StatusAccepted, model.StatusCancelled},
	model.StatusAccepted:   {model.StatusInProgress, model.StatusCancelled},
	model.StatusInProgress: {model.StatusCompleted, model.StatusCancelled},
}

func canTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	TaskType    string
}

type TaskService interface {
	// CreateTask persists a new pending task. ownerID 0 means the caller was
	// anonymous; the task is then attributed to the reserved system user.
	CreateTask(ctx context.Context, input CreateTaskInput, ownerID int64) (*model.TaskDetails, error)
	ListTasks(ctx context.Context, skip int, limit int) ([]model.TaskDetails, error)
	ListOwnedTasks(ctx context.Context, ownerID int64) ([]model.TaskDetails, error)
	GetTask(ctx context.Context, taskID int64) (*model.TaskDetails, error)
	// UpdateTaskStatus moves a task through its lifecycle. actorID 0 means no
	// authenticated actor; accepting with an actor records the volunteer.
	UpdateTaskStatus(ctx context.Context, taskID int64, newStatus string, actorID int64) (*model.TaskDetails, error)
	DeleteTask(ctx context.Context, taskID int64, actorID int64, actorRole string) error
}

type taskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	publisher events.EventPublisher
}

func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, pub events.EventPublisher) TaskService {
	return &taskService{taskRepo: taskRepo, userRepo: userRepo, publisher: pub}
}

func (s *taskService) CreateTask(ctx context.Context, input CreateTaskInput, ownerID int64) (*model.TaskDetails, error) {
	priority := strings.ToLower(input.Priority)
	if !model.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	if ownerID == 0 {
		systemUser, err := s.userRepo.FindByEmail(ctx, model.SystemUserEmail)
		if err != nil {
			return nil, err
		}
		if systemUser == nil {
			return nil, ErrUserNotFound
		}
		ownerID = systemUser.ID
	}

	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		TaskType:    input.TaskType,
		Status:      model.StatusPending,
		UserID:      ownerID,
	}

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	go s.publisher.PublishTaskCreated(created)

	return s.taskRepo.FindByID(ctx, created.ID)
}

func (s *taskService) ListTasks(ctx context.Context, skip int, limit int) ([]model.TaskDetails, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return s.taskRepo.List(ctx, limit, skip)
}

func (s *taskService) ListOwnedTasks(ctx context.Context, ownerID int64) ([]model.TaskDetails, error) {
	return s.taskRepo.ListByOwner(ctx, ownerID)
}

func (s *taskService) GetTask(ctx context.Context, taskID int64) (*model.TaskDetails, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, taskID int64, newStatus string, actorID int64) (*model.TaskDetails, error) {
	newStatus = strings.ToLower(newStatus)
	if !model.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	if !canTransition(task.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	var volunteerID *int64
	if newStatus == model.StatusAccepted && actorID != 0 {
		volunteerID = &actorID
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, newStatus, volunteerID); err != nil {
		return nil, err
	}

	go s.publisher.PublishTaskStatusChanged(taskID, task.Status, newStatus, volunteerID)

	return s.taskRepo.FindByID(ctx, taskID)
}

func (s *taskService) DeleteTask(ctx context.Context, taskID int64, actorID int64, actorRole string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}

	if task.UserID != actorID && actorRole != model.RoleAdmin {
		return ErrNotTaskOwner
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	go s.publisher.PublishTaskDeleted(taskID, task.UserID)

	return nil
}
