package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	advisorDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "placetrack",
		Subsystem: "ai",
		Name:      "advisor_duration_seconds",
		Help:      "Duration of AI advisor requests",
	}, []string{"model", "operation"})

	advisorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "placetrack",
		Subsystem: "ai",
		Name:      "advisor_failures_total",
		Help:      "Number of AI advisor failures",
	}, []string{"model", "operation"})
)

// OpenAIConfig defines configuration options for the OpenAI advisor.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIAdvisor implements Advisor against the OpenAI chat completion API.
type OpenAIAdvisor struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIAdvisor builds a new advisor using the provided configuration.
func NewOpenAIAdvisor(cfg OpenAIConfig) (*OpenAIAdvisor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 768
	}

	tracer := otel.Tracer("github.com/placement-cell/placetrack-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIAdvisor{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Chat forwards the conversation to OpenAI with the advisor system prompt and
// the student's profile as context.
func (a *OpenAIAdvisor) Chat(parent context.Context, profile ProfileContext, messages []Message) (string, error) {
	ctx, span := a.tracer.Start(parent, "openai.advisor.chat", trace.WithAttributes(
		attribute.String("model", a.cfg.Model),
		attribute.Int("message_count", len(messages)),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:       a.cfg.Model,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
		Messages:    buildChatMessages(profile, messages),
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, request)
	advisorDuration.WithLabelValues(a.cfg.Model, "chat").Observe(time.Since(start).Seconds())
	if err != nil {
		advisorFailures.WithLabelValues(a.cfg.Model, "chat").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai chat: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		advisorFailures.WithLabelValues(a.cfg.Model, "chat").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Insights asks the model for a structured readiness report and parses the
// JSON body it returns.
func (a *OpenAIAdvisor) Insights(parent context.Context, profile ProfileContext, drives []DriveContext) (Insights, error) {
	ctx, span := a.tracer.Start(parent, "openai.advisor.insights", trace.WithAttributes(
		attribute.String("model", a.cfg.Model),
		attribute.Int("drive_count", len(drives)),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:     a.cfg.Model,
		MaxTokens: a.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: insightsSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildInsightsPrompt(profile, drives),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, request)
	advisorDuration.WithLabelValues(a.cfg.Model, "insights").Observe(time.Since(start).Seconds())
	if err != nil {
		advisorFailures.WithLabelValues(a.cfg.Model, "insights").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Insights{}, fmt.Errorf("openai insights: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		advisorFailures.WithLabelValues(a.cfg.Model, "insights").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Insights{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	insights, err := parseInsights(content)
	if err != nil {
		advisorFailures.WithLabelValues(a.cfg.Model, "insights").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Insights{}, err
	}

	return insights, nil
}

func advisorSystemPrompt() string {
	return "You are a campus placement advisor for university students. Answer questions about " +
		"recruitment drives, interview preparation, resume improvement, and offer decisions. " +
		"Be concrete and encouraging, and keep answers under 300 words."
}

func insightsSystemPrompt() string {
	return "You are a campus placement advisor. Respond with a JSON object containing " +
		"readiness_score (0-1), strengths, gaps, and suggestions (arrays of short strings) " +
		"assessing the student's readiness for the listed drives."
}

func buildChatMessages(profile ProfileContext, messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+2)
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: advisorSystemPrompt(),
	})
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: "Student profile:\n" + formatProfile(profile),
	})

	for _, message := range messages {
		role := openai.ChatMessageRoleUser
		if message.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: message.Content})
	}

	return out
}

func buildInsightsPrompt(profile ProfileContext, drives []DriveContext) string {
	builder := strings.Builder{}
	builder.WriteString("# Student\n")
	builder.WriteString(formatProfile(profile))
	builder.WriteString("\n# Open Drives\n")
	for _, drive := range drives {
		builder.WriteString(fmt.Sprintf("- %s (%s), min CGPA %.2f, deadline %s\n",
			drive.Company, drive.JobProfile, drive.MinCGPA, drive.Deadline))
	}
	builder.WriteString("\nReturn JSON.")
	return builder.String()
}

func formatProfile(profile ProfileContext) string {
	return fmt.Sprintf("Name: %s\nDepartment: %s\nBatch: %s\nCGPA: %.2f\nBacklogs: %d\nSkills: %s",
		profile.Name, profile.Department, profile.Batch, profile.CGPA, profile.Backlogs,
		strings.Join(profile.Skills, ", "))
}

func parseInsights(content string) (Insights, error) {
	var insights Insights
	if err := json.Unmarshal([]byte(content), &insights); err != nil {
		return Insights{}, fmt.Errorf("parse insights json: %w", err)
	}

	if insights.ReadinessScore < 0 {
		insights.ReadinessScore = 0
	}
	if insights.ReadinessScore > 1 {
		insights.ReadinessScore = 1
	}

	return insights, nil
}
