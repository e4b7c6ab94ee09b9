package notify

import (
	"context"
	"errors"
)

var (
	ErrEmptyTaskID      = errors.New("taskId is required")
	ErrEmptyWorkspaceID = errors.New("workspaceId is required")
)

type eventHandler struct {
	notifier Notifier
}

func NewEventHandler(notifier Notifier) EventHandler {
	return &eventHandler{notifier: notifier}
}

func (h *eventHandler) HandleEvent(ctx context.Context, event TaskEvent) error {
	if event.TaskID == "" {
		return ErrEmptyTaskID
	}
	if event.WorkspaceID == "" {
		return ErrEmptyWorkspaceID
	}

	if !event.NeedsAttention() {
		return nil
	}

	return h.notifier.SendNotification(ctx, NewNotificationFromEvent(event))
}
