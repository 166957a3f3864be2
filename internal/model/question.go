package model

const QuestionTypeMultipleChoice = "multiple-choice"

// Question is a single multiple-choice item. A quiz is an ordered []Question.
type Question struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}
