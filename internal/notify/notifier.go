package notify

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Notifier delivers notifications to the operations feed.
type Notifier interface {
	SendNotification(ctx context.Context, notification Notification) error
}

type logNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) SendNotification(ctx context.Context, notification Notification) error {
	entry := fmt.Sprintf(
		"[NOTIFICATION] type=%s workspace=%s task=%s serial=%d message=%q at=%s",
		notification.Type,
		notification.WorkspaceID,
		notification.TaskID,
		notification.SerialNo,
		notification.Message,
		notification.CreatedAt.Format(time.RFC3339),
	)
	n.logger.Println(entry)
	return nil
}
