package registry

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
)

// fakeRepo keeps tasks in memory and hands out serials the same way the
// Postgres repository does: a per-workspace counter that never goes below
// the highest serial ever stored.
type fakeRepo struct {
	tasks      map[uuid.UUID]Task
	lastSerial map[uuid.UUID]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tasks:      make(map[uuid.UUID]Task),
		lastSerial: make(map[uuid.UUID]int64),
	}
}

func (r *fakeRepo) CreateTask(_ context.Context, t Task) (Task, error) {
	serial := r.lastSerial[t.WorkspaceID]
	for _, existing := range r.tasks {
		if existing.WorkspaceID == t.WorkspaceID && existing.SerialNo > serial {
			serial = existing.SerialNo
		}
	}
	serial++
	r.lastSerial[t.WorkspaceID] = serial
	t.SerialNo = serial
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeRepo) ListTasks(_ context.Context, workspaceID uuid.UUID) ([]Task, error) {
	var out []Task
	for _, t := range r.tasks {
		if t.WorkspaceID == workspaceID {
			out = append(out, t)
		}
	}
	// Same contract as the SQL store: newest serial first.
	sort.Slice(out, func(i, j int) bool { return out[i].SerialNo > out[j].SerialNo })
	return out, nil
}

func (r *fakeRepo) GetTask(_ context.Context, workspaceID, id uuid.UUID) (Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.WorkspaceID != workspaceID {
		return Task{}, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, workspaceID, id uuid.UUID, status Status, completedBy *string) error {
	t, ok := r.tasks[id]
	if !ok || t.WorkspaceID != workspaceID {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	t.CompletedBy = completedBy
	r.tasks[id] = t
	return nil
}

func (r *fakeRepo) DeleteTask(_ context.Context, workspaceID, id uuid.UUID) error {
	t, ok := r.tasks[id]
	if !ok || t.WorkspaceID != workspaceID {
		return gorm.ErrRecordNotFound
	}
	delete(r.tasks, id)
	return nil
}

func principal(username string, role auth.Role, workspaceID uuid.UUID) *auth.Principal {
	return &auth.Principal{
		ID:          uuid.New(),
		Username:    username,
		Role:        role,
		WorkspaceID: workspaceID,
	}
}

func testInput() TaskInput {
	return TaskInput{
		Date:       time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		CustomerID: "cust-001",
		TaskType:   "New Connection",
		Area:       "Rampura",
	}
}

func TestAddAssignsSequentialSerials(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTaskService(repo, nil)
	ws := uuid.New()
	p := principal("amy", auth.RoleUser, ws)

	for want := int64(1); want <= 3; want++ {
		task, err := svc.Add(context.Background(), p, testInput())
		require.NoError(t, err)
		assert.Equal(t, want, task.SerialNo)
		assert.Equal(t, "amy", task.CreatedBy)
		assert.Equal(t, "March", task.Month)
		assert.Equal(t, StatusPending, task.Status)
		assert.Nil(t, task.CompletedBy)
	}
}

func TestListReturnsNewestSerialFirst(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTaskService(repo, nil)
	ws := uuid.New()
	p := principal("amy", auth.RoleUser, ws)

	for i := 0; i < 4; i++ {
		_, err := svc.Add(context.Background(), p, testInput())
		require.NoError(t, err)
	}

	tasks, err := svc.List(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	for i, task := range tasks {
		assert.Equal(t, int64(4-i), task.SerialNo)
	}
}

func TestSerialsAreNeverReusedAfterDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTaskService(repo, nil)
	ws := uuid.New()
	admin := principal("root", auth.RoleAdmin, ws)

	var tasks []Task
	for i := 0; i < 3; i++ {
		task, err := svc.Add(context.Background(), admin, testInput())
		require.NoError(t, err)
		tasks = append(tasks, task)
	}

	// Deleting the middle ticket leaves serials 1 and 3; the freed 2 must
	// not come back.
	require.NoError(t, svc.Delete(context.Background(), admin, tasks[1].ID))
	next, err := svc.Add(context.Background(), admin, testInput())
	require.NoError(t, err)
	assert.Equal(t, int64(4), next.SerialNo)

	// Same after deleting the current maximum.
	require.NoError(t, svc.Delete(context.Background(), admin, next.ID))
	after, err := svc.Add(context.Background(), admin, testInput())
	require.NoError(t, err)
	assert.Equal(t, int64(5), after.SerialNo)
}

func TestSerialsAreIndependentPerWorkspace(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTaskService(repo, nil)
	pa := principal("amy", auth.RoleUser, uuid.New())
	pb := principal("bob", auth.RoleUser, uuid.New())

	ta, err := svc.Add(context.Background(), pa, testInput())
	require.NoError(t, err)
	tb, err := svc.Add(context.Background(), pb, testInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), ta.SerialNo)
	assert.Equal(t, int64(1), tb.SerialNo)
}

func TestAddValidatesInput(t *testing.T) {
	svc := NewTaskService(newFakeRepo(), nil)
	p := principal("amy", auth.RoleUser, uuid.New())

	cases := []struct {
		name    string
		mutate  func(*TaskInput)
		wantErr error
	}{
		{"missing customer", func(in *TaskInput) { in.CustomerID = "" }, ErrCustomerRequired},
		{"missing type", func(in *TaskInput) { in.TaskType = "" }, ErrTaskTypeRequired},
		{"missing area", func(in *TaskInput) { in.Area = "" }, ErrAreaRequired},
		{"bad status", func(in *TaskInput) { in.Status = Status("Done") }, ErrInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := testInput()
			tc.mutate(&in)
			_, err := svc.Add(context.Background(), p, in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAddCompleteStampsCreator(t *testing.T) {
	svc := NewTaskService(newFakeRepo(), nil)
	p := principal("amy", auth.RoleUser, uuid.New())

	in := testInput()
	in.Status = StatusComplete
	task, err := svc.Add(context.Background(), p, in)
	require.NoError(t, err)
	require.NotNil(t, task.CompletedBy)
	assert.Equal(t, "amy", *task.CompletedBy)
}

func TestSetStatusDrivesCompletedBy(t *testing.T) {
	svc := NewTaskService(newFakeRepo(), nil)
	ws := uuid.New()
	amy := principal("amy", auth.RoleUser, ws)
	bob := principal("bob", auth.RoleUser, ws)

	task, err := svc.Add(context.Background(), amy, testInput())
	require.NoError(t, err)

	// Completing stamps the actor, not the creator.
	done, err := svc.SetStatus(context.Background(), bob, task.ID, StatusComplete)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedBy)
	assert.Equal(t, "bob", *done.CompletedBy)

	// Repeating the transition is a no-op with the same final state.
	again, err := svc.SetStatus(context.Background(), bob, task.ID, StatusComplete)
	require.NoError(t, err)
	assert.Equal(t, done.Status, again.Status)
	assert.Equal(t, *done.CompletedBy, *again.CompletedBy)

	// Reopening clears the stamp.
	reopened, err := svc.SetStatus(context.Background(), amy, task.ID, StatusPending)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, reopened.Status)
	assert.Nil(t, reopened.CompletedBy)
}

func TestSetStatusUnknownTask(t *testing.T) {
	svc := NewTaskService(newFakeRepo(), nil)
	p := principal("amy", auth.RoleUser, uuid.New())

	_, err := svc.SetStatus(context.Background(), p, uuid.New(), StatusComplete)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeletePermissions(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTaskService(repo, nil)
	ws := uuid.New()
	amy := principal("amy", auth.RoleUser, ws)
	bob := principal("bob", auth.RoleUser, ws)
	admin := principal("root", auth.RoleAdmin, ws)

	task, err := svc.Add(context.Background(), amy, testInput())
	require.NoError(t, err)

	// A non-creator without the admin role is refused and the row stays.
	err = svc.Delete(context.Background(), bob, task.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = repo.GetTask(context.Background(), ws, task.ID)
	require.NoError(t, err)

	// The creator may delete their own ticket.
	require.NoError(t, svc.Delete(context.Background(), amy, task.ID))

	// An admin may delete anyone's ticket.
	other, err := svc.Add(context.Background(), bob, testInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), admin, other.ID))
}

func TestDeleteOutsideWorkspace(t *testing.T) {
	svc := NewTaskService(newFakeRepo(), nil)
	amy := principal("amy", auth.RoleUser, uuid.New())
	outsider := principal("root", auth.RoleAdmin, uuid.New())

	task, err := svc.Add(context.Background(), amy, testInput())
	require.NoError(t, err)

	// Even an admin of another workspace only sees not-found.
	err = svc.Delete(context.Background(), outsider, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestNilPrincipalIsRejected(t *testing.T) {
	svc := NewTaskService(newFakeRepo(), nil)

	_, err := svc.List(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.Add(context.Background(), nil, testInput())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.SetStatus(context.Background(), nil, uuid.New(), StatusComplete)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	err = svc.Delete(context.Background(), nil, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
