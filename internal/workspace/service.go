package workspace

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrEmptyValue        = errors.New("value is required")
	ErrValueNotFound     = errors.New("value not found in vocabulary")
	ErrDuplicateValue    = errors.New("value already exists")
)

// Vocabulary is the read model consumed by the presentation layer.
type Vocabulary struct {
	TaskTypes []string `json:"task_types"`
	Areas     []string `json:"areas"`
}

type WorkspaceService interface {
	// auth.WorkspaceDirectory
	EnsureWorkspace(ctx context.Context, name string) (uuid.UUID, error)
	LookupWorkspace(ctx context.Context, name string) (uuid.UUID, error)

	GetVocabulary(ctx context.Context, p auth.Principal) (Vocabulary, error)
	AddValue(ctx context.Context, p auth.Principal, kind VocabKind, value string) error
	RemoveValue(ctx context.Context, p auth.Principal, kind VocabKind, value string) error
}

type workspaceService struct {
	repo WorkspaceRepository
}

func NewWorkspaceService(repo WorkspaceRepository) WorkspaceService {
	return &workspaceService{repo: repo}
}

var _ auth.WorkspaceDirectory = WorkspaceService(nil)

func (s *workspaceService) EnsureWorkspace(ctx context.Context, name string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	ws, err := s.repo.GetWorkspaceByName(ctx, name)
	if err == nil {
		return ws.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	ws = Workspace{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateWorkspace(ctx, ws, NewSeedEntries(ws.ID)); err != nil {
		// Concurrent registration into the same workspace name: the unique
		// index wins, re-read the row the other writer created.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := s.repo.GetWorkspaceByName(ctx, name)
			if lookupErr != nil {
				return uuid.Nil, lookupErr
			}
			return existing.ID, nil
		}
		return uuid.Nil, err
	}
	return ws.ID, nil
}

func (s *workspaceService) LookupWorkspace(ctx context.Context, name string) (uuid.UUID, error) {
	ws, err := s.repo.GetWorkspaceByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrWorkspaceNotFound
		}
		return uuid.Nil, err
	}
	return ws.ID, nil
}

func (s *workspaceService) GetVocabulary(ctx context.Context, p auth.Principal) (Vocabulary, error) {
	taskTypes, err := s.repo.ListVocab(ctx, p.WorkspaceID, KindTaskType)
	if err != nil {
		return Vocabulary{}, err
	}
	areas, err := s.repo.ListVocab(ctx, p.WorkspaceID, KindArea)
	if err != nil {
		return Vocabulary{}, err
	}
	return Vocabulary{TaskTypes: taskTypes, Areas: areas}, nil
}

func (s *workspaceService) AddValue(ctx context.Context, p auth.Principal, kind VocabKind, value string) error {
	if !p.IsAdmin() {
		return auth.ErrAdminRequired
	}
	value = auth.SanitizeString(value)
	if value == "" {
		return ErrEmptyValue
	}

	entry := VocabEntry{
		ID:          uuid.New(),
		WorkspaceID: p.WorkspaceID,
		Kind:        kind,
		Value:       value,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.AddVocab(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateValue
		}
		return err
	}
	return nil
}

// RemoveValue deletes a vocabulary entry. Existing tickets keep the value
// as free text.
func (s *workspaceService) RemoveValue(ctx context.Context, p auth.Principal, kind VocabKind, value string) error {
	if !p.IsAdmin() {
		return auth.ErrAdminRequired
	}

	affected, err := s.repo.RemoveVocab(ctx, p.WorkspaceID, kind, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrValueNotFound
	}
	return nil
}
