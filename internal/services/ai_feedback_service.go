package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"jobportal_backend/internal/logger"
)

// Максимальный объем резюме, отправляемый модели
const maxResumeChars = 8000

const feedbackPromptTemplate = `You are an experienced technical recruiter reviewing a candidate's resume.
Provide constructive, actionable feedback on the resume below.

Structure your answer in these sections:
1. Overall impression
2. Strengths
3. Areas for improvement
4. Formatting and clarity

Keep the feedback professional and specific.

Resume:
%s`

// ResumeFeedbackGenerator - клиент LLM для рецензирования резюме
type ResumeFeedbackGenerator interface {
	GenerateFeedback(ctx context.Context, resumeText string) (string, error)
}

type GoogleAIFeedbackService struct {
	llm *googleai.GoogleAI
}

// NewGoogleAIFeedbackService создает клиент Gemini.
// Возвращает nil без ошибки, если ключ не задан: фича отключается целиком.
func NewGoogleAIFeedbackService(ctx context.Context, apiKey, model string) (*GoogleAIFeedbackService, error) {
	if apiKey == "" {
		logger.Warn("AI API key not configured, resume feedback disabled")
		return nil, nil
	}

	opts := []googleai.Option{googleai.WithAPIKey(apiKey)}
	if model != "" {
		opts = append(opts, googleai.WithDefaultModel(model))
	}

	llm, err := googleai.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}
	return &GoogleAIFeedbackService{llm: llm}, nil
}

func (s *GoogleAIFeedbackService) GenerateFeedback(ctx context.Context, resumeText string) (string, error) {
	text := strings.TrimSpace(resumeText)
	if len(text) > maxResumeChars {
		text = text[:maxResumeChars]
	}

	prompt := fmt.Sprintf(feedbackPromptTemplate, text)
	answer, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("AI completion failed: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
