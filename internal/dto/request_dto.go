package dto

// AcquireQuizRequest is the quiz setup chosen by the user. Category is the
// display label; only CategoryKey identifies the topic.
type AcquireQuizRequest struct {
	NumQuestions  int    `json:"num_questions" binding:"required,oneof=5 10 15 20"`
	CategoryKey   string `json:"category_key" binding:"required"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	Language      string `json:"language" binding:"required,min=2,max=8"`
	Timed         bool   `json:"timed"`
	TimerDuration int    `json:"timer_duration" binding:"omitempty,min=5,max=600"` // seconds per question
}

type ConnectivityUpdateRequest struct {
	Online *bool `json:"online" binding:"required"`
}
