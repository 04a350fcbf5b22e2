package ai

import "context"

// Message is one turn of an advisor conversation.
type Message struct {
	Role    string
	Content string
}

// ProfileContext summarises the student the advisor is talking to.
type ProfileContext struct {
	Name       string
	Department string
	Batch      string
	CGPA       float64
	Backlogs   int
	Skills     []string
}

// DriveContext summarises one open drive for readiness analysis.
type DriveContext struct {
	Company    string
	JobProfile string
	MinCGPA    float64
	Deadline   string
}

// Insights is the structured readiness report produced by the advisor.
type Insights struct {
	ReadinessScore float64  `json:"readiness_score"`
	Strengths      []string `json:"strengths"`
	Gaps           []string `json:"gaps"`
	Suggestions    []string `json:"suggestions"`
}

// Advisor describes an AI model that can counsel students on placements.
type Advisor interface {
	Chat(ctx context.Context, profile ProfileContext, messages []Message) (string, error)
	Insights(ctx context.Context, profile ProfileContext, drives []DriveContext) (Insights, error)
}
