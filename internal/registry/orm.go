package registry

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusComplete Status = "Complete"
)

var ErrInvalidStatus = errors.New("invalid status: must be Pending or Complete")

// ParseStatus normalizes a raw status string at the API boundary.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending, nil
	case "complete":
		return StatusComplete, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Task is one service ticket. Once created, everything except Status (and
// the CompletedBy field it drives) is immutable: there is no edit path.
type Task struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	SerialNo    int64     `json:"serial_no" gorm:"not null;uniqueIndex:idx_tasks_workspace_serial"`
	Date        time.Time `json:"date" gorm:"type:date;not null"`
	CustomerID  string    `json:"customer_id" gorm:"not null"`
	TaskType    string    `json:"task_type" gorm:"not null"`
	Area        string    `json:"area" gorm:"not null"`
	Status      Status    `json:"status" gorm:"type:text;not null;default:'Pending';check:status IN ('Pending', 'Complete')"`
	Month       string    `json:"month" gorm:"not null"`
	CreatedBy   string    `json:"created_by" gorm:"not null"`
	CompletedBy *string   `json:"completed_by,omitempty"`
	Remarks     *string   `json:"remarks,omitempty" gorm:"type:text"`
	WorkspaceID uuid.UUID `json:"workspace_id" gorm:"type:uuid;not null;uniqueIndex:idx_tasks_workspace_serial;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:now()"`
}

// MonthName derives the calendar month label stored on a ticket. It is
// computed once at creation and never recomputed.
func MonthName(date time.Time) string {
	return date.Month().String()
}
