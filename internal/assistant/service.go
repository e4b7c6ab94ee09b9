package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/registry"
)

var (
	// ErrNoData means the registry is empty; the model is never called.
	ErrNoData = errors.New("registry empty: no data for analysis")

	// ErrUnavailable means no model client is configured.
	ErrUnavailable = errors.New("assistant is not configured")
)

// taskDigest is the compact per-ticket view shared with the model. Customer
// identifiers and remarks stay out of the prompt.
type taskDigest struct {
	Type   string `json:"type"`
	Area   string `json:"area"`
	Status string `json:"status"`
	Date   string `json:"date"`
	Month  string `json:"month"`
}

type AssistantService interface {
	Analyze(ctx context.Context, p *auth.Principal) (string, error)
	Chat(ctx context.Context, p *auth.Principal, history []Turn, message string) (string, error)
}

type assistantService struct {
	tasks  registry.TaskService
	client ModelClient
}

// NewAssistantService wires the advisor over the task registry. A nil
// client keeps every call failing with ErrUnavailable instead of inventing
// mock analysis.
func NewAssistantService(tasks registry.TaskService, client ModelClient) AssistantService {
	return &assistantService{
		tasks:  tasks,
		client: client,
	}
}

// Analyze asks the model for a strict-JSON audit of the workspace tickets
// and renders it as labeled lines. When the model ignores the JSON contract
// the cleaned raw text is returned instead.
func (s *assistantService) Analyze(ctx context.Context, p *auth.Principal) (string, error) {
	if s.client == nil {
		return "", ErrUnavailable
	}

	tasks, err := s.tasks.List(ctx, p)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return "", ErrNoData
	}

	digestJSON, err := json.Marshal(digest(tasks))
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`As an ISP operations analyst, analyze these service records and RETURN ONLY a JSON object with the following keys:
{ "top_issue": "short sentence", "worst_area": "short sentence", "actions": ["action 1", "action 2"] }
Total Tasks: %d
DATA:
%s
STRICT: Do not include any explanation outside the JSON. Output must be valid JSON.`, len(tasks), digestJSON)

	raw, err := s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", err
	}

	var insight Insight
	if err := json.Unmarshal([]byte(raw), &insight); err == nil {
		return FormatInsight(insight), nil
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return FormatInsight(Insight{}), nil
	}
	return cleaned, nil
}

func (s *assistantService) Chat(ctx context.Context, p *auth.Principal, history []Turn, message string) (string, error) {
	if s.client == nil {
		return "", ErrUnavailable
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message is required")
	}

	tasks, err := s.tasks.List(ctx, p)
	if err != nil {
		return "", err
	}

	digestJSON, err := json.Marshal(digest(tasks))
	if err != nil {
		return "", err
	}

	system := fmt.Sprintf(`You are the ISP strategic operations advisor.
CONTEXT DATA: %s

STRICT RULES:
1. BE EXTREMELY BRIEF. Never use more than 3 sentences unless explicitly asked for a long list.
2. Use bullet points for any lists.
3. No conversational filler.
4. Focus purely on data-driven answers.`, digestJSON)

	return s.client.Chat(ctx, system, history, message)
}

func digest(tasks []registry.Task) []taskDigest {
	out := make([]taskDigest, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskDigest{
			Type:   t.TaskType,
			Area:   t.Area,
			Status: string(t.Status),
			Date:   t.Date.Format("2006-01-02"),
			Month:  t.Month,
		})
	}
	return out
}
