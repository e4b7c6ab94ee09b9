package registry

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
)

var (
	ErrCustomerRequired = errors.New("customer id is required")
	ErrTaskTypeRequired = errors.New("task type is required")
	ErrAreaRequired     = errors.New("area is required")
)

// TaskInput carries the creator-supplied fields of a new ticket. TaskType
// and Area are free text: membership in the workspace vocabulary is not
// checked, so values removed from the lists later stay valid on old rows.
type TaskInput struct {
	Date       time.Time
	CustomerID string
	TaskType   string
	Area       string
	Status     Status
	Remarks    *string
}

type TaskService interface {
	List(ctx context.Context, p *auth.Principal) ([]Task, error)
	Add(ctx context.Context, p *auth.Principal, in TaskInput) (Task, error)
	SetStatus(ctx context.Context, p *auth.Principal, taskID uuid.UUID, status Status) (Task, error)
	Delete(ctx context.Context, p *auth.Principal, taskID uuid.UUID) error
}

type taskService struct {
	repo     TaskRepository
	producer EventProducer
}

func NewTaskService(repo TaskRepository, producer EventProducer) TaskService {
	return &taskService{
		repo:     repo,
		producer: producer,
	}
}

func (s *taskService) List(ctx context.Context, p *auth.Principal) ([]Task, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}

	tasks, err := s.repo.ListTasks(ctx, p.WorkspaceID)
	if err != nil {
		return nil, storeError(err)
	}
	return tasks, nil
}

func (s *taskService) Add(ctx context.Context, p *auth.Principal, in TaskInput) (Task, error) {
	if p == nil {
		return Task{}, ErrUnauthenticated
	}
	if in.CustomerID == "" {
		return Task{}, ErrCustomerRequired
	}
	if in.TaskType == "" {
		return Task{}, ErrTaskTypeRequired
	}
	if in.Area == "" {
		return Task{}, ErrAreaRequired
	}

	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if status != StatusPending && status != StatusComplete {
		return Task{}, ErrInvalidStatus
	}

	task := Task{
		ID:          uuid.New(),
		Date:        in.Date,
		CustomerID:  in.CustomerID,
		TaskType:    in.TaskType,
		Area:        in.Area,
		Status:      status,
		Month:       MonthName(in.Date),
		CreatedBy:   p.Username,
		Remarks:     in.Remarks,
		WorkspaceID: p.WorkspaceID,
		CreatedAt:   time.Now(),
	}
	if status == StatusComplete {
		completedBy := p.Username
		task.CompletedBy = &completedBy
	}

	created, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return Task{}, storeError(err)
	}

	s.publish(TaskEvent{
		Action:      ActionCreated,
		TaskID:      created.ID.String(),
		WorkspaceID: created.WorkspaceID.String(),
		SerialNo:    created.SerialNo,
		Status:      string(created.Status),
		Actor:       p.Username,
		Timestamp:   time.Now(),
	})

	return created, nil
}

// SetStatus is idempotent: repeating it with the same status leaves the row
// in the same final state, and the last principal to mark a ticket complete
// wins the CompletedBy stamp.
func (s *taskService) SetStatus(ctx context.Context, p *auth.Principal, taskID uuid.UUID, status Status) (Task, error) {
	if p == nil {
		return Task{}, ErrUnauthenticated
	}
	if status != StatusPending && status != StatusComplete {
		return Task{}, ErrInvalidStatus
	}

	var completedBy *string
	if status == StatusComplete {
		username := p.Username
		completedBy = &username
	}

	if err := s.repo.UpdateStatus(ctx, p.WorkspaceID, taskID, status, completedBy); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, storeError(err)
	}

	// Re-read so the caller only ever sees store-confirmed state.
	task, err := s.repo.GetTask(ctx, p.WorkspaceID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, storeError(err)
	}

	s.publish(TaskEvent{
		Action:      ActionStatusChanged,
		TaskID:      task.ID.String(),
		WorkspaceID: task.WorkspaceID.String(),
		SerialNo:    task.SerialNo,
		Status:      string(task.Status),
		Actor:       p.Username,
		Timestamp:   time.Now(),
	})

	return task, nil
}

// Delete removes a ticket permanently. The check is enforced here, on the
// server, for every call: administrators may delete anything in their
// workspace, everyone else only their own records. Serial numbers of the
// remaining tickets are never renumbered and the freed number is never
// reassigned.
func (s *taskService) Delete(ctx context.Context, p *auth.Principal, taskID uuid.UUID) error {
	if p == nil {
		return ErrUnauthenticated
	}

	task, err := s.repo.GetTask(ctx, p.WorkspaceID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return storeError(err)
	}

	if !p.IsAdmin() && p.Username != task.CreatedBy {
		return ErrPermissionDenied
	}

	if err := s.repo.DeleteTask(ctx, p.WorkspaceID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return storeError(err)
	}

	s.publish(TaskEvent{
		Action:      ActionDeleted,
		TaskID:      task.ID.String(),
		WorkspaceID: task.WorkspaceID.String(),
		SerialNo:    task.SerialNo,
		Status:      string(task.Status),
		Actor:       p.Username,
		Timestamp:   time.Now(),
	})

	return nil
}

// publish sends the change event without blocking the mutation. Event
// delivery is advisory; failures are logged and dropped.
func (s *taskService) publish(event TaskEvent) {
	if s.producer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.producer.SendTaskEvent(ctx, event); err != nil {
			log.Printf("failed to send task event: %v", err)
		}
	}()
}
