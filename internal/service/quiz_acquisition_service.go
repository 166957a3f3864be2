package service

import (
	"context"

	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// OfflineQuizSource is the bundled last-resort quiz set, keyed by category.
type OfflineQuizSource interface {
	Lookup(categoryKey string) ([]model.Question, bool)
}

// QuizAcquisitionService serves a quiz for a config by walking
// cache -> live generation -> offline data, in that order.
type QuizAcquisitionService interface {
	AcquireQuiz(ctx context.Context, cfg model.QuizRequestConfig) ([]model.Question, error)
}

type quizAcquisitionService struct {
	cache        QuizCacheService
	generation   QuizGenerationService
	offline      OfflineQuizSource
	connectivity ConnectivityService
	inflight     singleflight.Group
}

func NewQuizAcquisitionService(
	cache QuizCacheService,
	generation QuizGenerationService,
	offline OfflineQuizSource,
	connectivity ConnectivityService,
) QuizAcquisitionService {
	return &quizAcquisitionService{
		cache:        cache,
		generation:   generation,
		offline:      offline,
		connectivity: connectivity,
	}
}

func (s *quizAcquisitionService) AcquireQuiz(ctx context.Context, cfg model.QuizRequestConfig) ([]model.Question, error) {
	key := cfg.CacheKey()

	if questions, ok := s.cache.Read(ctx, key, false); ok {
		return questions, nil
	}

	var cause error
	if s.connectivity.IsOnline(ctx) {
		log.Info().Str("cacheKey", key).Msg("No usable cached quiz, generating")
		questions, err := s.generateAndStore(ctx, key, cfg)
		if err == nil {
			return questions, nil
		}
		cause = err
		log.Warn().Err(err).Str("cacheKey", key).Msg("Generation failed, trying offline quizzes")
	} else {
		log.Warn().Str("cacheKey", key).Msg("Offline, trying offline quizzes")
	}

	if questions, ok := s.offline.Lookup(cfg.CategoryKey); ok {
		log.Info().Str("category", cfg.CategoryKey).Int("questions", len(questions)).Msg("Serving offline quiz")
		return questions, nil
	}

	log.Error().Err(cause).Str("cacheKey", key).Msg("No quiz available from cache, generator or offline data")
	return nil, &AcquisitionError{CategoryKey: cfg.CategoryKey, Cause: cause}
}

// generateAndStore coalesces identical concurrent misses into one
// generator call and one cache write. The shared call is detached from the
// first caller's cancellation and bounded by the generation timeout.
func (s *quizAcquisitionService) generateAndStore(ctx context.Context, key string, cfg model.QuizRequestConfig) ([]model.Question, error) {
	v, err, shared := s.inflight.Do(key, func() (interface{}, error) {
		callCtx := context.WithoutCancel(ctx)
		questions, err := s.generation.FetchQuiz(callCtx, cfg)
		if err != nil {
			return nil, err
		}
		s.cache.Write(callCtx, key, questions)
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug().Str("cacheKey", key).Msg("Shared in-flight generation result")
	}
	return v.([]model.Question), nil
}
