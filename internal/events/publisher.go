package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/brownbots/ablemate/internal/model"
)

type EventPublisher interface {
	PublishTaskCreated(task *model.Task) error
	PublishTaskStatusChanged(taskID int64, oldStatus, newStatus string, volunteerID *int64) error
	PublishTaskDeleted(taskID int64, ownerID int64) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type TaskCreatedEvent struct {
	EventType string    `json:"event_type"`
	TaskID    int64     `json:"task_id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	TaskType  string    `json:"task_type"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskStatusChangedEvent struct {
	EventType   string    `json:"event_type"`
	TaskID      int64     `json:"task_id"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	VolunteerID *int64    `json:"volunteer_id,omitempty"`
	ChangedAt   time.Time `json:"changed_at"`
}

type TaskDeletedEvent struct {
	EventType string    `json:"event_type"`
	TaskID    int64     `json:"task_id"`
	OwnerID   int64     `json:"owner_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (p *NatsPublisher) PublishTaskCreated(task *model.Task) error {
	event := TaskCreatedEvent{
		EventType: "task.created",
		TaskID:    task.ID,
		OwnerID:   task.UserID,
		Title:     task.Title,
		Priority:  task.Priority,
		TaskType:  task.TaskType,
		CreatedAt: task.CreatedAt,
	}

	return p.publish("task.created", event)
}

func (p *NatsPublisher) PublishTaskStatusChanged(taskID int64, oldStatus, newStatus string, volunteerID *int64) error {
	event := TaskStatusChangedEvent{
		EventType:   "task.status_changed",
		TaskID:      taskID,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		VolunteerID: volunteerID,
		ChangedAt:   time.Now(),
	}

	return p.publish("task.status_changed", event)
}

func (p *NatsPublisher) PublishTaskDeleted(taskID int64, ownerID int64) error {
	event := TaskDeletedEvent{
		EventType: "task.deleted",
		TaskID:    taskID,
		OwnerID:   ownerID,
		DeletedAt: time.Now(),
	}

	return p.publish("task.deleted", event)
}

func (p *NatsPublisher) publish(subject string, event any) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	log.Printf("Published event to NATS on subject '%s'", subject)

	return nil
}
