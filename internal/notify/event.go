package notify

import (
	"fmt"
	"strings"
	"time"
)

// TaskEvent is the registry change notification read from Kafka.
// The shape must match internal/registry/kafka.go.
type TaskEvent struct {
	Action      string    `json:"action"`
	TaskID      string    `json:"taskId"`
	WorkspaceID string    `json:"workspaceId"`
	SerialNo    int64     `json:"serialNo"`
	Status      string    `json:"status"`
	Actor       string    `json:"actor"`
	Timestamp   time.Time `json:"timestamp"`
}

// Notification is one message for the operations feed.
type Notification struct {
	Type        string
	TaskID      string
	WorkspaceID string
	SerialNo    int64
	Message     string
	CreatedAt   time.Time
}

// NeedsAttention reports whether an event should reach the operations
// feed: a ticket reverted to Pending or a permanent deletion. Routine
// creations and completions stay quiet.
func (e TaskEvent) NeedsAttention() bool {
	switch e.Action {
	case "deleted":
		return true
	case "status_changed":
		return strings.EqualFold(e.Status, "Pending")
	default:
		return false
	}
}

// NewNotificationFromEvent builds the feed entry for an event.
func NewNotificationFromEvent(event TaskEvent) Notification {
	var message string
	switch event.Action {
	case "deleted":
		message = fmt.Sprintf("Ticket #%d was permanently deleted by %s", event.SerialNo, event.Actor)
	default:
		message = fmt.Sprintf("Ticket #%d was reverted to Pending by %s", event.SerialNo, event.Actor)
	}

	return Notification{
		Type:        "task_" + event.Action,
		TaskID:      event.TaskID,
		WorkspaceID: event.WorkspaceID,
		SerialNo:    event.SerialNo,
		Message:     message,
		CreatedAt:   time.Now(),
	}
}
