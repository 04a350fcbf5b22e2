package dto

// ChatMessage is one turn of the advisor conversation.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,min=1,max=8000"`
}

// ChatRequest carries the advisor conversation so far.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,max=40,dive"`
}

// ChatResponse is the advisor's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}

// InsightsResponse is the structured readiness report for one student.
type InsightsResponse struct {
	ReadinessScore float64  `json:"readiness_score"`
	Strengths      []string `json:"strengths"`
	Gaps           []string `json:"gaps"`
	Suggestions    []string `json:"suggestions"`
}
