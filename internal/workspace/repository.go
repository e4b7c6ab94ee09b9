package workspace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository interface {
	CreateWorkspace(ctx context.Context, ws Workspace, seed []VocabEntry) error
	GetWorkspaceByName(ctx context.Context, name string) (Workspace, error)
	GetWorkspaceByID(ctx context.Context, id uuid.UUID) (Workspace, error)
	ListVocab(ctx context.Context, workspaceID uuid.UUID, kind VocabKind) ([]string, error)
	AddVocab(ctx context.Context, entry VocabEntry) error
	RemoveVocab(ctx context.Context, workspaceID uuid.UUID, kind VocabKind, value string) (int64, error)
}

type workspaceRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepository{db: db}
}

// CreateWorkspace inserts the workspace row and its default vocabulary in
// one transaction so a half-seeded tenant is never visible.
func (r *workspaceRepository) CreateWorkspace(ctx context.Context, ws Workspace, seed []VocabEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ws).Error; err != nil {
			return err
		}
		if len(seed) == 0 {
			return nil
		}
		return tx.Create(&seed).Error
	})
}

func (r *workspaceRepository) GetWorkspaceByName(ctx context.Context, name string) (Workspace, error) {
	var ws Workspace
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&ws).Error
	return ws, err
}

func (r *workspaceRepository) GetWorkspaceByID(ctx context.Context, id uuid.UUID) (Workspace, error) {
	var ws Workspace
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ws).Error
	return ws, err
}

func (r *workspaceRepository) ListVocab(ctx context.Context, workspaceID uuid.UUID, kind VocabKind) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).Model(&VocabEntry{}).
		Where("workspace_id = ? AND kind = ?", workspaceID, kind).
		Order("created_at ASC").
		Pluck("value", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *workspaceRepository) AddVocab(ctx context.Context, entry VocabEntry) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *workspaceRepository) RemoveVocab(ctx context.Context, workspaceID uuid.UUID, kind VocabKind, value string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("workspace_id = ? AND kind = ? AND value = ?", workspaceID, kind, value).
		Delete(&VocabEntry{})
	return res.RowsAffected, res.Error
}

// NewSeedEntries builds the default vocabulary rows for a fresh workspace.
func NewSeedEntries(workspaceID uuid.UUID) []VocabEntry {
	now := time.Now()
	entries := make([]VocabEntry, 0, len(DefaultTaskTypes)+len(DefaultAreas))
	for _, v := range DefaultTaskTypes {
		entries = append(entries, VocabEntry{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			Kind:        KindTaskType,
			Value:       v,
			CreatedAt:   now,
		})
		// Keep seed ordering stable under the created_at sort
		now = now.Add(time.Microsecond)
	}
	for _, v := range DefaultAreas {
		entries = append(entries, VocabEntry{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			Kind:        KindArea,
			Value:       v,
			CreatedAt:   now,
		})
		now = now.Add(time.Microsecond)
	}
	return entries
}
