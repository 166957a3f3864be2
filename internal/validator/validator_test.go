package validator

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/lshigami/QuizMaster/internal/model"
)

func mcq(text string, answer string, options ...string) model.Question {
	return model.Question{
		Question:      text,
		Type:          model.QuestionTypeMultipleChoice,
		Options:       options,
		CorrectAnswer: answer,
	}
}

func TestValidateAccepts(t *testing.T) {
	quiz := []model.Question{
		mcq("What is 2+2?", "4", "3", "4", "5", "6"),
		mcq("Capital of Japan?", "Tokyo", "Kyoto", "Osaka", "Tokyo", "Nagoya"),
	}
	snapshot := make([]model.Question, len(quiz))
	copy(snapshot, quiz)

	got, err := Validate(quiz)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !reflect.DeepEqual(got, snapshot) {
		t.Errorf("Validate() returned %+v, want %+v", got, snapshot)
	}
	if !reflect.DeepEqual(quiz, snapshot) {
		t.Error("Validate() mutated its input")
	}
}

func TestValidateRejects(t *testing.T) {
	valid := mcq("What is 2+2?", "4", "3", "4", "5", "6")

	tests := []struct {
		name   string
		quiz   []model.Question
		index  int
		reason string
	}{
		{"nil quiz", nil, -1, "no questions"},
		{"empty quiz", []model.Question{}, -1, "no questions"},
		{"blank question", []model.Question{mcq("   ", "4", "3", "4", "5", "6")}, 0, "missing question text"},
		{"wrong type", []model.Question{{Question: "Q?", Type: "true-false", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"}}, 0, "unsupported type"},
		{"nil options", []model.Question{{Question: "Q?", Type: model.QuestionTypeMultipleChoice, CorrectAnswer: "a"}}, 0, "missing options"},
		{"blank answer", []model.Question{mcq("Q?", " ", "a", "b", "c", "d")}, 0, "missing correct answer"},
		{"three options", []model.Question{mcq("Q?", "a", "a", "b", "c")}, 0, "expected 4 options"},
		{"five options", []model.Question{mcq("Q?", "a", "a", "b", "c", "d", "e")}, 0, "expected 4 options"},
		{"answer not in options", []model.Question{mcq("Q?", "z", "a", "b", "c", "d")}, 0, "not among the options"},
		{"duplicate options", []model.Question{mcq("Q?", "a", "a", "b", "a", "d")}, 0, "duplicate option"},
		{"duplicate question", []model.Question{valid, valid}, 1, "duplicate of question 0"},
		{"second item bad", []model.Question{valid, mcq("Other?", "x", "a", "b", "c", "d")}, 1, "not among the options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.quiz)
			if err == nil {
				t.Fatalf("Validate() = %+v, want error", got)
			}
			if got != nil {
				t.Errorf("Validate() returned questions on failure: %+v", got)
			}
			if !errors.Is(err, ErrInvalidQuiz) {
				t.Errorf("error %v does not match ErrInvalidQuiz", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not *ValidationError", err)
			}
			if verr.Index != tt.index {
				t.Errorf("Index = %d, want %d", verr.Index, tt.index)
			}
			if !strings.Contains(verr.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to contain %q", verr.Reason, tt.reason)
			}
		})
	}
}

func TestValidateOptionsAreCaseSensitive(t *testing.T) {
	quiz := []model.Question{mcq("Which spelling?", "Paris", "Paris", "paris", "PARIS", "Pari")}
	if _, err := Validate(quiz); err != nil {
		t.Errorf("Validate() error = %v, want case-distinct options accepted", err)
	}
}
