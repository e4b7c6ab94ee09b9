package workspace

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
)

type fakeWorkspaceRepo struct {
	workspaces map[uuid.UUID]Workspace
	vocab      []VocabEntry
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: make(map[uuid.UUID]Workspace)}
}

func (r *fakeWorkspaceRepo) CreateWorkspace(_ context.Context, ws Workspace, seed []VocabEntry) error {
	for _, existing := range r.workspaces {
		if existing.Name == ws.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	r.workspaces[ws.ID] = ws
	r.vocab = append(r.vocab, seed...)
	return nil
}

func (r *fakeWorkspaceRepo) GetWorkspaceByName(_ context.Context, name string) (Workspace, error) {
	for _, ws := range r.workspaces {
		if ws.Name == name {
			return ws, nil
		}
	}
	return Workspace{}, gorm.ErrRecordNotFound
}

func (r *fakeWorkspaceRepo) GetWorkspaceByID(_ context.Context, id uuid.UUID) (Workspace, error) {
	ws, ok := r.workspaces[id]
	if !ok {
		return Workspace{}, gorm.ErrRecordNotFound
	}
	return ws, nil
}

func (r *fakeWorkspaceRepo) ListVocab(_ context.Context, workspaceID uuid.UUID, kind VocabKind) ([]string, error) {
	var entries []VocabEntry
	for _, e := range r.vocab {
		if e.WorkspaceID == workspaceID && e.Kind == kind {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })

	values := make([]string, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Value)
	}
	return values, nil
}

func (r *fakeWorkspaceRepo) AddVocab(_ context.Context, entry VocabEntry) error {
	for _, e := range r.vocab {
		if e.WorkspaceID == entry.WorkspaceID && e.Kind == entry.Kind && e.Value == entry.Value {
			return gorm.ErrDuplicatedKey
		}
	}
	r.vocab = append(r.vocab, entry)
	return nil
}

func (r *fakeWorkspaceRepo) RemoveVocab(_ context.Context, workspaceID uuid.UUID, kind VocabKind, value string) (int64, error) {
	for i, e := range r.vocab {
		if e.WorkspaceID == workspaceID && e.Kind == kind && e.Value == value {
			r.vocab = append(r.vocab[:i], r.vocab[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func adminOf(workspaceID uuid.UUID) auth.Principal {
	return auth.Principal{ID: uuid.New(), Username: "amy", Role: auth.RoleAdmin, WorkspaceID: workspaceID}
}

func TestEnsureWorkspaceSeedsDefaults(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())

	id, err := svc.EnsureWorkspace(context.Background(), " acme-isp ")
	require.NoError(t, err)

	vocab, err := svc.GetVocabulary(context.Background(), adminOf(id))
	require.NoError(t, err)
	assert.Equal(t, DefaultTaskTypes, vocab.TaskTypes)
	assert.Equal(t, DefaultAreas, vocab.Areas)
}

func TestEnsureWorkspaceIsIdempotent(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())

	first, err := svc.EnsureWorkspace(context.Background(), "acme-isp")
	require.NoError(t, err)
	second, err := svc.EnsureWorkspace(context.Background(), "acme-isp")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLookupWorkspace(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())

	id, err := svc.EnsureWorkspace(context.Background(), "acme-isp")
	require.NoError(t, err)

	found, err := svc.LookupWorkspace(context.Background(), "acme-isp")
	require.NoError(t, err)
	assert.Equal(t, id, found)

	_, err = svc.LookupWorkspace(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
}

func TestAddValueRequiresAdmin(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	id, err := svc.EnsureWorkspace(context.Background(), "acme-isp")
	require.NoError(t, err)

	member := auth.Principal{ID: uuid.New(), Username: "bob", Role: auth.RoleUser, WorkspaceID: id}
	err = svc.AddValue(context.Background(), member, KindArea, "Mirpur")
	assert.ErrorIs(t, err, auth.ErrAdminRequired)
	err = svc.RemoveValue(context.Background(), member, KindArea, "Rampura")
	assert.ErrorIs(t, err, auth.ErrAdminRequired)
}

func TestAddAndRemoveValue(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	id, err := svc.EnsureWorkspace(context.Background(), "acme-isp")
	require.NoError(t, err)
	admin := adminOf(id)

	require.NoError(t, svc.AddValue(context.Background(), admin, KindArea, " Mirpur "))
	vocab, err := svc.GetVocabulary(context.Background(), admin)
	require.NoError(t, err)
	assert.Contains(t, vocab.Areas, "Mirpur")

	err = svc.AddValue(context.Background(), admin, KindArea, "Mirpur")
	assert.ErrorIs(t, err, ErrDuplicateValue)
	err = svc.AddValue(context.Background(), admin, KindArea, "   ")
	assert.ErrorIs(t, err, ErrEmptyValue)

	require.NoError(t, svc.RemoveValue(context.Background(), admin, KindArea, "Mirpur"))
	err = svc.RemoveValue(context.Background(), admin, KindArea, "Mirpur")
	assert.ErrorIs(t, err, ErrValueNotFound)
}

func TestVocabularyIsScopedPerKindAndWorkspace(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	a, err := svc.EnsureWorkspace(context.Background(), "acme-isp")
	require.NoError(t, err)
	b, err := svc.EnsureWorkspace(context.Background(), "other-isp")
	require.NoError(t, err)

	// The same value may live in both kinds and both workspaces.
	require.NoError(t, svc.AddValue(context.Background(), adminOf(a), KindArea, "Hub"))
	require.NoError(t, svc.AddValue(context.Background(), adminOf(a), KindTaskType, "Hub"))
	require.NoError(t, svc.AddValue(context.Background(), adminOf(b), KindArea, "Hub"))

	vb, err := svc.GetVocabulary(context.Background(), adminOf(b))
	require.NoError(t, err)
	assert.Contains(t, vb.Areas, "Hub")
	assert.NotContains(t, vb.TaskTypes, "Hub")
}
