package offline

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/lshigami/QuizMaster/internal/validator"
	"github.com/rs/zerolog/log"
)

//go:embed fallback_quizzes.json
var fallbackJSON []byte

// FallbackSet is the bundled, read-only quiz collection used when neither
// the cache nor live generation can serve a request. Entries are keyed by
// category only.
type FallbackSet struct {
	quizzes map[string][]model.Question
}

func Load() (*FallbackSet, error) {
	return Parse(fallbackJSON)
}

// Parse decodes a category -> questions document. Every category must pass
// validation, a broken bundle is a build defect.
func Parse(data []byte) (*FallbackSet, error) {
	var quizzes map[string][]model.Question
	if err := json.Unmarshal(data, &quizzes); err != nil {
		return nil, fmt.Errorf("failed to decode offline quizzes: %w", err)
	}
	for category, questions := range quizzes {
		if _, err := validator.Validate(questions); err != nil {
			return nil, fmt.Errorf("offline quiz %q: %w", category, err)
		}
	}
	log.Debug().Int("categories", len(quizzes)).Msg("Offline quizzes loaded")
	return &FallbackSet{quizzes: quizzes}, nil
}

// Lookup returns the bundled questions for a category. Difficulty, language
// and count of the request are not considered.
func (s *FallbackSet) Lookup(categoryKey string) ([]model.Question, bool) {
	questions, ok := s.quizzes[categoryKey]
	if !ok || len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

func (s *FallbackSet) Categories() []string {
	keys := make([]string, 0, len(s.quizzes))
	for k := range s.quizzes {
		keys = append(keys, k)
	}
	return keys
}
