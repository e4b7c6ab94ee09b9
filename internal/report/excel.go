package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/registry"
)

const (
	sheetTasks     = "Task Entry"
	sheetDashboard = "Dashboard"
	sheetMonthly   = "Monthly Report"
)

var taskColumns = []string{
	"Serial No", "Date", "User ID", "Task Type", "Area",
	"Status", "Created By", "Completed By", "Month", "Remarks",
}

// BuildWorkbook renders the full export: every ticket field on the first
// sheet (newest serial first), the headline summary on the second, and the
// per-month breakdown on the third.
func BuildWorkbook(tasks []registry.Task, generatedBy string, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	sorted := make([]registry.Task, len(tasks))
	copy(sorted, tasks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SerialNo > sorted[j].SerialNo
	})

	if err := writeTaskSheet(f, sorted); err != nil {
		return nil, err
	}
	if err := writeDashboardSheet(f, tasks, generatedBy, now); err != nil {
		return nil, err
	}
	if err := writeMonthlySheet(f, tasks); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex(sheetTasks)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	return f, nil
}

func writeTaskSheet(f *excelize.File, tasks []registry.Task) error {
	if _, err := f.NewSheet(sheetTasks); err != nil {
		return err
	}
	if err := setRow(f, sheetTasks, 1, toCells(taskColumns)); err != nil {
		return err
	}

	for i, t := range tasks {
		completedBy := ""
		if t.CompletedBy != nil {
			completedBy = *t.CompletedBy
		}
		remarks := ""
		if t.Remarks != nil {
			remarks = *t.Remarks
		}

		row := []interface{}{
			t.SerialNo,
			t.Date.Format("2006-01-02"),
			t.CustomerID,
			t.TaskType,
			t.Area,
			string(t.Status),
			t.CreatedBy,
			completedBy,
			t.Month,
			remarks,
		}
		if err := setRow(f, sheetTasks, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDashboardSheet(f *excelize.File, tasks []registry.Task, generatedBy string, now time.Time) error {
	if _, err := f.NewSheet(sheetDashboard); err != nil {
		return err
	}

	summary := registry.Summarize(tasks)
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Tickets", summary.Total},
		{"Resolved", summary.Completed},
		{"Pending", summary.Pending},
		{"Success Rate", fmt.Sprintf("%d%%", summary.SuccessRate)},
		{},
		{"Report Generated By", generatedBy},
		{"Export Date", now.Format("2006-01-02 15:04:05")},
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, sheetDashboard, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeMonthlySheet(f *excelize.File, tasks []registry.Task) error {
	if _, err := f.NewSheet(sheetMonthly); err != nil {
		return err
	}
	header := []interface{}{"Month", "Total Tickets", "Completed", "Pending"}
	if err := setRow(f, sheetMonthly, 1, header); err != nil {
		return err
	}

	for i, row := range registry.MonthlyBreakdown(tasks) {
		cells := []interface{}{row.Month, row.Total, row.Completed, row.Pending}
		if err := setRow(f, sheetMonthly, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
