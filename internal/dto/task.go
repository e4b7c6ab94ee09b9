package dto

// CreateTaskRequest is the "add" operation payload. Date is a calendar day
// in YYYY-MM-DD chosen by the creator, not necessarily today.
type CreateTaskRequest struct {
	Date       string  `json:"date"`
	CustomerID string  `json:"customer_id"`
	TaskType   string  `json:"task_type"`
	Area       string  `json:"area"`
	Status     string  `json:"status"`
	Remarks    *string `json:"remarks,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	SerialNo    int64   `json:"serial_no"`
	Date        string  `json:"date"`
	CustomerID  string  `json:"customer_id"`
	TaskType    string  `json:"task_type"`
	Area        string  `json:"area"`
	Status      string  `json:"status"`
	Month       string  `json:"month"`
	CreatedBy   string  `json:"created_by"`
	CompletedBy *string `json:"completed_by,omitempty"`
	Remarks     *string `json:"remarks,omitempty"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

type DashboardResponse struct {
	Total       int          `json:"total"`
	Completed   int          `json:"completed"`
	Pending     int          `json:"pending"`
	SuccessRate int          `json:"success_rate"`
	ByArea      []CountEntry `json:"by_area"`
	ByMonth     []CountEntry `json:"by_month"`
	TopTypes    []CountEntry `json:"top_types"`
}

type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
