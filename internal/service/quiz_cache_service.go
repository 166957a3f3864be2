package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lshigami/QuizMaster/config"
	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/lshigami/QuizMaster/internal/repository"
	"github.com/lshigami/QuizMaster/internal/validator"
	"github.com/rs/zerolog/log"
)

// QuizCacheService reads and writes versioned, expiring quiz records.
// Unusable records are removed as a side effect of Read.
type QuizCacheService interface {
	Read(ctx context.Context, key string, silent bool) ([]model.Question, bool)
	Write(ctx context.Context, key string, questions []model.Question)
	Delete(ctx context.Context, key string)
}

type quizCacheService struct {
	store   repository.KVStore
	version string
	expiry  time.Duration
	now     func() time.Time
}

func NewQuizCacheService(store repository.KVStore, cfg *config.Config) QuizCacheService {
	return newQuizCacheService(store, cfg.Cache.SchemaVersion, cfg.Cache.Expiry, time.Now)
}

func newQuizCacheService(store repository.KVStore, version string, expiry time.Duration, now func() time.Time) *quizCacheService {
	return &quizCacheService{store: store, version: version, expiry: expiry, now: now}
}

func (s *quizCacheService) Read(ctx context.Context, key string, silent bool) ([]model.Question, bool) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			log.Error().Err(err).Str("cacheKey", key).Msg("Failed to read quiz cache")
		} else if !silent {
			log.Info().Str("cacheKey", key).Msg("Quiz cache miss")
		}
		return nil, false
	}

	var record model.CacheRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("Corrupted quiz cache record, removing")
		s.Delete(ctx, key)
		return nil, false
	}

	if record.SchemaVersion != s.version {
		if !silent {
			log.Warn().
				Str("cacheKey", key).
				Str("recordVersion", record.SchemaVersion).
				Str("currentVersion", s.version).
				Msg("Quiz cache record from another schema version, removing")
		}
		s.Delete(ctx, key)
		return nil, false
	}

	age := s.now().Sub(time.UnixMilli(record.Timestamp))
	if age > s.expiry {
		if !silent {
			log.Info().Str("cacheKey", key).Dur("age", age).Msg("Quiz cache record expired, removing")
		}
		s.Delete(ctx, key)
		return nil, false
	}

	questions, err := validator.Validate(record.Questions)
	if err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("Cached quiz failed validation, removing")
		s.Delete(ctx, key)
		return nil, false
	}

	if !silent {
		log.Info().Str("cacheKey", key).Int("questions", len(questions)).Msg("Loaded quiz from cache")
	}
	return questions, true
}

func (s *quizCacheService) Write(ctx context.Context, key string, questions []model.Question) {
	record := model.CacheRecord{
		Timestamp:     s.now().UnixMilli(),
		SchemaVersion: s.version,
		Questions:     questions,
	}
	data, err := json.Marshal(record)
	if err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("Failed to encode quiz cache record")
		return
	}
	if err := s.store.Set(ctx, key, string(data)); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("Failed to write quiz cache")
		return
	}
	log.Debug().Str("cacheKey", key).Int("questions", len(questions)).Msg("Quiz cached")
}

func (s *quizCacheService) Delete(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("Failed to remove quiz cache record")
	}
}
