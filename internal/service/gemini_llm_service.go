package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/QuizMaster/config"
	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type geminiLLMService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiLLMService(cfg *config.Config) (QuestionGenerator, error) {
	if cfg.GeminiApiKey == "" {
		return warnUnconfigured("gemini", "GEMINI_API_KEY"), nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	m := client.GenerativeModel(cfg.Generator.GeminiModel)
	m.SetTemperature(0.7)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = quizResponseSchema()

	log.Info().Str("model", cfg.Generator.GeminiModel).Msg("Gemini question generator ready")
	return &geminiLLMService{client: client, model: m}, nil
}

func quizResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question": {Type: genai.TypeString},
						"type":     {Type: genai.TypeString, Enum: []string{model.QuestionTypeMultipleChoice}},
						"options": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"correctAnswer": {Type: genai.TypeString},
					},
					Required: []string{"question", "type", "options", "correctAnswer"},
				},
			},
		},
		Required: []string{"questions"},
	}
}

func (s *geminiLLMService) Generate(ctx context.Context, params GenerateParams) ([]model.Question, error) {
	prompt := buildQuizPrompt(params)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned an empty response")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("gemini response contained no text")
	}

	var quiz generatedQuiz
	if err := json.Unmarshal([]byte(stripCodeFence(text.String())), &quiz); err != nil {
		log.Debug().Str("raw", text.String()).Msg("Undecodable Gemini response")
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	return quiz.Questions, nil
}

func (s *geminiLLMService) Close() error {
	return s.client.Close()
}
