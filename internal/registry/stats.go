package registry

import (
	"math"
	"sort"
)

// Months in report order.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type Summary struct {
	Total       int `json:"total"`
	Completed   int `json:"completed"`
	Pending     int `json:"pending"`
	SuccessRate int `json:"success_rate"`
}

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MonthBreakdown struct {
	Month     string `json:"month"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
}

// Summarize computes the headline dashboard numbers. An empty registry
// yields all zeros, including the rate.
func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == StatusComplete {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.SuccessRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// CountByArea counts tickets per configured area. Zero-count areas stay in
// the result; whether to show them is a presentation decision.
func CountByArea(tasks []Task, areas []string) []Count {
	counts := make([]Count, 0, len(areas))
	for _, area := range areas {
		c := Count{Name: area}
		for _, t := range tasks {
			if t.Area == area {
				c.Count++
			}
		}
		counts = append(counts, c)
	}
	return counts
}

// CountByMonth counts tickets for each of the twelve calendar months.
func CountByMonth(tasks []Task) []Count {
	counts := make([]Count, 0, len(Months))
	for _, month := range Months {
		c := Count{Name: month}
		for _, t := range tasks {
			if t.Month == month {
				c.Count++
			}
		}
		counts = append(counts, c)
	}
	return counts
}

// MonthlyBreakdown is the per-month report block: only months with at
// least one ticket appear.
func MonthlyBreakdown(tasks []Task) []MonthBreakdown {
	rows := make([]MonthBreakdown, 0, len(Months))
	for _, month := range Months {
		row := MonthBreakdown{Month: month}
		for _, t := range tasks {
			if t.Month != month {
				continue
			}
			row.Total++
			if t.Status == StatusComplete {
				row.Completed++
			}
		}
		row.Pending = row.Total - row.Completed
		if row.Total > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// TopTypes groups by the task types actually present in the data (not the
// configured vocabulary) and returns the n most frequent, most frequent
// first. Ties break alphabetically so the result is deterministic.
func TopTypes(tasks []Task, n int) []Count {
	byType := make(map[string]int)
	for _, t := range tasks {
		byType[t.TaskType]++
	}

	counts := make([]Count, 0, len(byType))
	for name, count := range byType {
		counts = append(counts, Count{Name: name, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})

	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
