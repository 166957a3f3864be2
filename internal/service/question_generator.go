package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lshigami/QuizMaster/config"
	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/rs/zerolog/log"
)

// GenerateParams is what a generator backend receives. Category is always
// the canonical English label and LanguageName a language name, not a code.
type GenerateParams struct {
	Category     string
	Difficulty   model.Difficulty
	NumQuestions int
	NumOptions   int
	LanguageName string
}

// QuestionGenerator is the boundary to the external LLM. Output is
// untrusted and validated by the caller.
type QuestionGenerator interface {
	Generate(ctx context.Context, params GenerateParams) ([]model.Question, error)
}

// NewQuestionGenerator picks the backend named by GENERATOR_PROVIDER.
func NewQuestionGenerator(cfg *config.Config) (QuestionGenerator, error) {
	switch strings.ToLower(cfg.Generator.Provider) {
	case "", "gemini":
		return NewGeminiLLMService(cfg)
	case "openai":
		return NewOpenAILLMService(cfg), nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Generator.Provider)
	}
}

type unconfiguredGenerator struct {
	provider string
}

func (g unconfiguredGenerator) Generate(context.Context, GenerateParams) ([]model.Question, error) {
	return nil, fmt.Errorf("%s: %w", g.provider, ErrGeneratorNotConfigured)
}

func warnUnconfigured(provider, envKey string) QuestionGenerator {
	log.Warn().Str("provider", provider).Msgf("%s is not set. Quizzes will come from cache or offline data only.", envKey)
	return unconfiguredGenerator{provider: provider}
}

// generatedQuiz is the JSON envelope both backends ask the model for.
type generatedQuiz struct {
	Questions []model.Question `json:"questions"`
}

var difficultyInstructions = map[model.Difficulty]string{
	model.DifficultyEasy:   "The questions must be suitable for beginners. Use simple vocabulary and focus on fundamental, widely known concepts. Avoid obscure trivia.",
	model.DifficultyMedium: "The questions should require solid general knowledge of the topic, suitable for a casual enthusiast.",
	model.DifficultyHard:   "The questions must be challenging even for enthusiasts. Cover niche topics and make the wrong options plausible, subtle distractors.",
}

func buildQuizPrompt(p GenerateParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a quiz with %d unique multiple-choice questions about \"%s\".\n", p.NumQuestions, p.Category)
	fmt.Fprintf(&b, "Difficulty: %s. %s\n", p.Difficulty, difficultyInstructions[p.Difficulty])
	fmt.Fprintf(&b, "Write every question and every option in %s.\n\n", p.LanguageName)

	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "- Each question has exactly %d distinct options.\n", p.NumOptions)
	b.WriteString("- correctAnswer must be exactly equal to one of the options.\n")
	b.WriteString("- type is always \"multiple-choice\".\n")
	b.WriteString("- Do not repeat a question.\n\n")

	b.WriteString(`Respond with JSON only, in the form {"questions":[{"question":"...","type":"multiple-choice","options":["...","...","...","..."],"correctAnswer":"..."}]}.`)
	return b.String()
}

// stripCodeFence removes a ```json ... ``` wrapper some models add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
