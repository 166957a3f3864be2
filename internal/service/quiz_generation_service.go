package service

import (
	"context"
	"time"

	"github.com/lshigami/QuizMaster/config"
	"github.com/lshigami/QuizMaster/internal/catalog"
	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/lshigami/QuizMaster/internal/validator"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// QuizGenerationService turns a request config into a validated quiz via
// the external generator. Each call makes at most one generator request.
type QuizGenerationService interface {
	FetchQuiz(ctx context.Context, cfg model.QuizRequestConfig) ([]model.Question, error)
}

type quizGenerationService struct {
	generator QuestionGenerator
	catalog   *catalog.Catalog
	limiter   *rate.Limiter
	timeout   time.Duration
}

func NewQuizGenerationService(generator QuestionGenerator, cat *catalog.Catalog, cfg *config.Config) QuizGenerationService {
	return newQuizGenerationService(generator, cat, newGenerationLimiter(cfg.Generator.RatePerMinute, cfg.Generator.Burst), cfg.Generator.Timeout)
}

func newQuizGenerationService(generator QuestionGenerator, cat *catalog.Catalog, limiter *rate.Limiter, timeout time.Duration) *quizGenerationService {
	return &quizGenerationService{generator: generator, catalog: cat, limiter: limiter, timeout: timeout}
}

// newGenerationLimiter is shared by user requests and background sync.
// A non-positive rate disables limiting.
func newGenerationLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

func (s *quizGenerationService) FetchQuiz(ctx context.Context, cfg model.QuizRequestConfig) ([]model.Question, error) {
	key := cfg.CacheKey()
	numOptions := cfg.NumOptions
	if numOptions == 0 {
		numOptions = model.DefaultNumOptions
	}
	params := GenerateParams{
		Category:     s.catalog.EnglishLabel(cfg.CategoryKey),
		Difficulty:   cfg.Difficulty,
		NumQuestions: cfg.NumQuestions,
		NumOptions:   numOptions,
		LanguageName: s.catalog.LanguageName(cfg.Language),
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.limiter.Wait(ctx); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("Generation rate limit wait aborted")
		return nil, &GenerationError{Reason: GenerationReasonTransport, CacheKey: key, Err: err}
	}

	log.Info().
		Str("cacheKey", key).
		Str("category", params.Category).
		Str("language", params.LanguageName).
		Msg("Requesting quiz from generator")

	start := time.Now()
	questions, err := s.generator.Generate(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("cacheKey", key).Dur("elapsed", time.Since(start)).Msg("Generator request failed")
		return nil, &GenerationError{Reason: GenerationReasonTransport, CacheKey: key, Err: err}
	}

	valid, err := validator.Validate(questions)
	if err != nil {
		log.Error().Err(err).Str("cacheKey", key).Int("received", len(questions)).Msg("Generator returned invalid quiz data")
		return nil, &GenerationError{Reason: GenerationReasonInvalidContent, CacheKey: key, Err: err}
	}

	log.Info().Str("cacheKey", key).Int("questions", len(valid)).Dur("elapsed", time.Since(start)).Msg("Quiz generated")
	return valid, nil
}
