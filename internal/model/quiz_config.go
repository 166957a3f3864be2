package model

import "fmt"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties is the fixed enumeration order used by background sync.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

const (
	CacheKeyPrefix       = "quizdata_cache_"
	DefaultNumOptions    = 4
	StandardNumQuestions = 10
)

// QuizRequestConfig describes a requested quiz. Category, Timed and
// TimerDuration do not take part in the cache identity.
type QuizRequestConfig struct {
	NumQuestions  int
	Category      string
	CategoryKey   string
	Difficulty    Difficulty
	Language      string
	Timed         bool
	TimerDuration int
	NumOptions    int
}

func (c QuizRequestConfig) CacheKey() string {
	return fmt.Sprintf("%s%s_%s_%d_%s", CacheKeyPrefix, c.CategoryKey, c.Difficulty, c.NumQuestions, c.Language)
}
