package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/QuizMaster/internal/model"
)

const requiredOptions = 4

var ErrInvalidQuiz = errors.New("invalid quiz data")

// ValidationError reports the first rule a quiz broke. Index is -1 for
// failures that concern the quiz as a whole.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid quiz: %s", e.Reason)
	}
	return fmt.Sprintf("invalid quiz: question %d: %s", e.Index, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidQuiz
}

func fail(index int, format string, args ...any) *ValidationError {
	return &ValidationError{Index: index, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a candidate quiz and returns it untouched when every
// question is well formed. It stops at the first violation.
func Validate(questions []model.Question) ([]model.Question, error) {
	if len(questions) == 0 {
		return nil, fail(-1, "no questions")
	}

	seen := make(map[string]int, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fail(i, "missing question text")
		}
		if q.Type != model.QuestionTypeMultipleChoice {
			return nil, fail(i, "unsupported type %q", q.Type)
		}
		if q.Options == nil {
			return nil, fail(i, "missing options")
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, fail(i, "missing correct answer")
		}

		if len(q.Options) != requiredOptions {
			return nil, fail(i, "expected %d options, got %d", requiredOptions, len(q.Options))
		}
		if !contains(q.Options, q.CorrectAnswer) {
			return nil, fail(i, "correct answer %q is not among the options", q.CorrectAnswer)
		}

		options := make(map[string]struct{}, len(q.Options))
		for _, opt := range q.Options {
			if _, dup := options[opt]; dup {
				return nil, fail(i, "duplicate option %q", opt)
			}
			options[opt] = struct{}{}
		}

		if first, dup := seen[q.Question]; dup {
			return nil, fail(i, "duplicate of question %d", first)
		}
		seen[q.Question] = i
	}

	return questions, nil
}

func contains(options []string, s string) bool {
	for _, opt := range options {
		if opt == s {
			return true
		}
	}
	return false
}
