package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lshigami/QuizMaster/config"
	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const submitQuestionsTool = "submit_questions"

type openAILLMService struct {
	client *openai.Client
	model  string
}

func NewOpenAILLMService(cfg *config.Config) QuestionGenerator {
	if cfg.OpenAIApiKey == "" {
		return warnUnconfigured("openai", "OPENAI_API_KEY")
	}
	log.Info().Str("model", cfg.Generator.OpenAIModel).Msg("OpenAI question generator ready")
	return &openAILLMService{
		client: openai.NewClient(cfg.OpenAIApiKey),
		model:  cfg.Generator.OpenAIModel,
	}
}

func (s *openAILLMService) Generate(ctx context.Context, params GenerateParams) ([]model.Question, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       s.model,
			Temperature: 0.7,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert quiz question generator. Generate accurate multiple choice questions with exactly 4 options each.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildQuizPrompt(params),
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        submitQuestionsTool,
						Description: "Submit generated quiz questions",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"questions": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"question": map[string]interface{}{
												"type":        "string",
												"description": "The question text",
											},
											"type": map[string]interface{}{
												"type": "string",
												"enum": []string{model.QuestionTypeMultipleChoice},
											},
											"options": map[string]interface{}{
												"type":        "array",
												"items":       map[string]interface{}{"type": "string"},
												"description": "Exactly 4 distinct options",
											},
											"correctAnswer": map[string]interface{}{
												"type":        "string",
												"description": "The correct option, copied exactly",
											},
										},
										"required": []string{"question", "type", "options", "correctAnswer"},
									},
								},
							},
							"required": []string{"questions"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: submitQuestionsTool,
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("openai API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}
	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}
	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != submitQuestionsTool {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	var quiz generatedQuiz
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &quiz); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	return quiz.Questions, nil
}
