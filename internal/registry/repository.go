package registry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository interface {
	// CreateTask assigns the next workspace serial and inserts the row in a
	// single transaction.
	CreateTask(ctx context.Context, t Task) (Task, error)
	ListTasks(ctx context.Context, workspaceID uuid.UUID) ([]Task, error)
	GetTask(ctx context.Context, workspaceID, id uuid.UUID) (Task, error)
	UpdateStatus(ctx context.Context, workspaceID, id uuid.UUID, status Status, completedBy *string) error
	DeleteTask(ctx context.Context, workspaceID, id uuid.UUID) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// nextSerialSQL advances the workspace counter and returns the new value in
// one atomic statement, closing the read-then-write race between concurrent
// inserts. GREATEST re-derives the counter from the tickets table in case
// the workspace row ever lags behind legacy data: the serial handed out is
// always above every serial ever stored, so deleted numbers never come back.
const nextSerialSQL = `
UPDATE workspaces
SET last_serial = GREATEST(
        last_serial,
        COALESCE((SELECT MAX(serial_no) FROM tasks WHERE workspace_id = ?), 0)
    ) + 1
WHERE id = ?
RETURNING last_serial`

func (r *taskRepository) CreateTask(ctx context.Context, t Task) (Task, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var serial int64
		res := tx.Raw(nextSerialSQL, t.WorkspaceID, t.WorkspaceID).Scan(&serial)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		t.SerialNo = serial
		return tx.Create(&t).Error
	})
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (r *taskRepository) ListTasks(ctx context.Context, workspaceID uuid.UUID) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("serial_no DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetTask(ctx context.Context, workspaceID, id uuid.UUID) (Task, error) {
	var task Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&task).Error
	return task, err
}

func (r *taskRepository) UpdateStatus(ctx context.Context, workspaceID, id uuid.UUID, status Status, completedBy *string) error {
	// Map update for exact control over the touched columns: status and
	// completed_by change together, nothing else ever does.
	updates := map[string]interface{}{
		"status":       status,
		"completed_by": completedBy,
	}

	res := r.db.WithContext(ctx).Model(&Task{}).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskRepository) DeleteTask(ctx context.Context, workspaceID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Delete(&Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
