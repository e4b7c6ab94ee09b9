package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-3-flash-preview"

// Turn is one prior exchange in the advisor conversation.
type Turn struct {
	Role string `json:"role"` // "user" or "ai"
	Text string `json:"text"`
}

// ModelClient is the narrow slice of the Gemini API the assistant needs.
type ModelClient interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, systemInstruction string, history []Turn, message string) (string, error)
}

type geminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (ModelClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *geminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return result.Text(), nil
}

func (c *geminiClient) Chat(ctx context.Context, systemInstruction string, history []Turn, message string) (string, error) {
	chat, err := c.client.Chats.Create(ctx,
		c.model,
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		},
		historyContents(history),
	)
	if err != nil {
		return "", fmt.Errorf("gemini chat create failed: %w", err)
	}

	result, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("gemini chat failed: %w", err)
	}
	return result.Text(), nil
}

// historyContents maps the transcript onto the wire roles. Anything that is
// not a model reply is attributed to the user.
func historyContents(history []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == "ai" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return contents
}
