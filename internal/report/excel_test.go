package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/registry"
)

func strptr(s string) *string { return &s }

func workbookTasks() []registry.Task {
	return []registry.Task{
		{
			SerialNo:    1,
			Date:        time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
			CustomerID:  "cust-1",
			TaskType:    "Router Setup",
			Area:        "Rampura",
			Status:      registry.StatusComplete,
			Month:       "March",
			CreatedBy:   "amy",
			CompletedBy: strptr("bob"),
		},
		{
			SerialNo:   2,
			Date:       time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
			CustomerID: "cust-2",
			TaskType:   "No Internet",
			Area:       "Bhola",
			Status:     registry.StatusPending,
			Month:      "March",
			CreatedBy:  "amy",
			Remarks:    strptr("fiber cut near pole"),
		},
	}
}

func TestBuildWorkbookSheets(t *testing.T) {
	f, err := BuildWorkbook(workbookTasks(), "amy", time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Task Entry", "Dashboard", "Monthly Report"}, f.GetSheetList())
}

func TestBuildWorkbookTaskSheet(t *testing.T) {
	f, err := BuildWorkbook(workbookTasks(), "amy", time.Now())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Task Entry")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Serial No", "Date", "User ID", "Task Type", "Area",
		"Status", "Created By", "Completed By", "Month", "Remarks",
	}, rows[0])

	// Newest serial first.
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "cust-2", rows[1][2])
	assert.Equal(t, "fiber cut near pole", rows[1][9])

	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "bob", rows[2][7])
}

func TestBuildWorkbookDashboardSheet(t *testing.T) {
	f, err := BuildWorkbook(workbookTasks(), "amy", time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue("Dashboard", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	rate, err := f.GetCellValue("Dashboard", "B5")
	require.NoError(t, err)
	assert.Equal(t, "50%", rate)

	generatedBy, err := f.GetCellValue("Dashboard", "B7")
	require.NoError(t, err)
	assert.Equal(t, "amy", generatedBy)
}

func TestBuildWorkbookMonthlySheet(t *testing.T) {
	f, err := BuildWorkbook(workbookTasks(), "amy", time.Now())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Monthly Report")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"March", "2", "1", "1"}, rows[1])
}

func TestBuildWorkbookEmptyRegistry(t *testing.T) {
	f, err := BuildWorkbook(nil, "amy", time.Now())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Task Entry")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
