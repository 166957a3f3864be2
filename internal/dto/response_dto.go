package dto

import "time"

type QuestionResponse struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type QuizResponse struct {
	RequestID      string             `json:"request_id"`
	TotalQuestions int                `json:"total_questions"`
	Questions      []QuestionResponse `json:"questions"`
}

type CategoryResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type LanguageResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CatalogResponse struct {
	Categories        []CategoryResponse `json:"categories"`
	Languages         []LanguageResponse `json:"languages"`
	Difficulties      []string           `json:"difficulties"`
	QuestionCounts    []int              `json:"question_counts"`
	OfflineCategories []string           `json:"offline_categories"`
}

type SyncStatusResponse struct {
	State               string    `json:"state"`
	CyclesRun           int       `json:"cycles_run"`
	LastStartedAt       time.Time `json:"last_started_at"`
	LastFinishedAt      time.Time `json:"last_finished_at"`
	LastUpdatedAny      bool      `json:"last_updated_any"`
	LastQueueSize       int       `json:"last_queue_size"`
	LastProcessed       int       `json:"last_processed"`
	NewContentAvailable bool      `json:"new_content_available"`
	Online              bool      `json:"online"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
