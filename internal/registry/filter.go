package registry

import "strings"

// StatusFilter restricts a listing by status; FilterAll matches everything.
type StatusFilter string

const (
	FilterAll      StatusFilter = "All"
	FilterComplete StatusFilter = "Complete"
	FilterPending  StatusFilter = "Pending"
)

// ParseStatusFilter treats an empty value as "All".
func ParseStatusFilter(raw string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return FilterAll, nil
	case "complete":
		return FilterComplete, nil
	case "pending":
		return FilterPending, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Filter is a pure, case-insensitive substring search over customer id,
// task type, area, and remarks (a ticket without remarks simply cannot
// match on that field). A ticket matches when the term appears in any of
// the four fields AND the status filter agrees. Order is preserved; the
// input slice is never modified.
func Filter(tasks []Task, term string, status StatusFilter) []Task {
	term = strings.ToLower(term)

	matched := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		matchesSearch := strings.Contains(strings.ToLower(t.CustomerID), term) ||
			strings.Contains(strings.ToLower(t.TaskType), term) ||
			strings.Contains(strings.ToLower(t.Area), term) ||
			(t.Remarks != nil && strings.Contains(strings.ToLower(*t.Remarks), term))

		matchesStatus := status == FilterAll || string(t.Status) == string(status)

		if matchesSearch && matchesStatus {
			matched = append(matched, t)
		}
	}
	return matched
}
