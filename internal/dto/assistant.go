package dto

type ChatTurn struct {
	Role string `json:"role"` // "user" or "ai"
	Text string `json:"text"`
}

type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type AnalysisResponse struct {
	Insight string `json:"insight"`
}
