package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lshigami/QuizMaster/config"
	"github.com/lshigami/QuizMaster/internal/catalog"
	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	SyncStateIdle    = "idle"
	SyncStateRunning = "running"
)

type SyncOptions struct {
	InitialDelay time.Duration
	Interval     time.Duration
	RequestDelay time.Duration
	RetryDelay   time.Duration
	MaxRetries   int
	NumQuestions int
}

type SyncStatus struct {
	State               string
	CyclesRun           int
	LastStartedAt       time.Time
	LastFinishedAt      time.Time
	LastUpdatedAny      bool
	LastQueueSize       int
	LastProcessed       int
	NewContentAvailable bool
}

// QuizSyncService pre-fills the quiz cache in the background. Only one
// cycle runs at a time per instance; overlapping requests are skipped.
type QuizSyncService interface {
	StartCycle(ctx context.Context) bool
	Init(onCycleComplete func(updatedAny bool))
	OnConnectivityChanged(online bool)
	TriggerCycle() bool
	Status() SyncStatus
	AcknowledgeNewContent()
	Stop()
}

type quizSyncService struct {
	cache        QuizCacheService
	generation   QuizGenerationService
	connectivity ConnectivityService
	queue        func() []model.QuizRequestConfig
	opts         SyncOptions

	running atomic.Bool

	mu         sync.Mutex
	status     SyncStatus
	onComplete func(bool)
	started    bool
	stopped    bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewQuizSyncService(
	cache QuizCacheService,
	generation QuizGenerationService,
	connectivity ConnectivityService,
	cat *catalog.Catalog,
	cfg *config.Config,
) QuizSyncService {
	opts := SyncOptions{
		InitialDelay: cfg.Sync.InitialDelay,
		Interval:     cfg.Sync.Interval,
		RequestDelay: cfg.Sync.RequestDelay,
		RetryDelay:   cfg.Sync.RetryDelay,
		MaxRetries:   cfg.Sync.MaxRetries,
		NumQuestions: cfg.Sync.NumQuestions,
	}
	queue := func() []model.QuizRequestConfig {
		return BuildSyncQueue(cat, opts.NumQuestions)
	}
	return newQuizSyncService(cache, generation, connectivity, queue, opts)
}

func newQuizSyncService(
	cache QuizCacheService,
	generation QuizGenerationService,
	connectivity ConnectivityService,
	queue func() []model.QuizRequestConfig,
	opts SyncOptions,
) *quizSyncService {
	ctx, cancel := context.WithCancel(context.Background())
	return &quizSyncService{
		cache:        cache,
		generation:   generation,
		connectivity: connectivity,
		queue:        queue,
		opts:         opts,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// BuildSyncQueue enumerates languages x categories x difficulties, in that
// nesting order, at the standard question count.
func BuildSyncQueue(cat *catalog.Catalog, numQuestions int) []model.QuizRequestConfig {
	if numQuestions <= 0 {
		numQuestions = model.StandardNumQuestions
	}
	queue := make([]model.QuizRequestConfig, 0, len(cat.Languages)*len(cat.Categories)*len(model.Difficulties))
	for _, lang := range cat.Languages {
		for _, category := range cat.Categories {
			for _, difficulty := range model.Difficulties {
				queue = append(queue, model.QuizRequestConfig{
					NumQuestions: numQuestions,
					Category:     category.Label,
					CategoryKey:  category.Key,
					Difficulty:   difficulty,
					Language:     lang.Code,
					NumOptions:   model.DefaultNumOptions,
				})
			}
		}
	}
	return queue
}

// StartCycle runs one full sync cycle and reports whether any new quiz was
// written. It returns false at once if a cycle is already running.
func (s *quizSyncService) StartCycle(ctx context.Context) bool {
	updated, _ := s.runCycle(ctx)
	return updated
}

func (s *quizSyncService) runCycle(ctx context.Context) (updatedAny bool, ran bool) {
	if !s.running.CompareAndSwap(false, true) {
		log.Warn().Msg("Quiz sync already in progress, skipping")
		return false, false
	}
	defer s.running.Store(false)

	if !s.connectivity.IsOnline(ctx) {
		log.Info().Msg("Offline, skipping quiz sync")
		return false, true
	}

	queue := s.queue()
	s.mu.Lock()
	s.status.CyclesRun++
	s.status.LastStartedAt = time.Now()
	s.status.LastQueueSize = len(queue)
	s.status.LastProcessed = 0
	s.mu.Unlock()

	log.Info().Int("configs", len(queue)).Msg("Starting quiz sync")

	processed := 0
	for i, cfg := range queue {
		if ctx.Err() != nil {
			log.Info().Int("processed", processed).Msg("Quiz sync cancelled")
			break
		}
		if !s.connectivity.IsOnline(ctx) {
			log.Warn().Int("processed", processed).Int("remaining", len(queue)-processed).Msg("Connection lost, aborting quiz sync")
			break
		}

		log.Debug().Int("index", i+1).Int("total", len(queue)).Str("cacheKey", cfg.CacheKey()).Msg("Syncing quiz")
		if s.syncOne(ctx, cfg) {
			updatedAny = true
		}
		processed++

		if i < len(queue)-1 {
			if err := sleepContext(ctx, s.opts.RequestDelay); err != nil {
				break
			}
		}
	}

	s.mu.Lock()
	s.status.LastFinishedAt = time.Now()
	s.status.LastUpdatedAny = updatedAny
	s.status.LastProcessed = processed
	if updatedAny {
		s.status.NewContentAvailable = true
	}
	s.mu.Unlock()

	log.Info().Bool("updated", updatedAny).Int("processed", processed).Int("total", len(queue)).Msg("Quiz sync finished")
	return updatedAny, true
}

// syncOne fills a single cache entry if it is missing or unusable.
func (s *quizSyncService) syncOne(ctx context.Context, cfg model.QuizRequestConfig) bool {
	key := cfg.CacheKey()
	if _, ok := s.cache.Read(ctx, key, true); ok {
		return false
	}

	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, s.opts.RetryDelay); err != nil {
				return false
			}
		}

		questions, err := s.generation.FetchQuiz(ctx, cfg)
		if err == nil {
			s.cache.Write(ctx, key, questions)
			log.Info().Str("cacheKey", key).Msg("Synced quiz")
			return true
		}
		log.Warn().Err(err).Str("cacheKey", key).Int("attempt", attempt+1).Msg("Quiz sync attempt failed")
	}

	log.Error().Str("cacheKey", key).Msg("Giving up on quiz sync for this config")
	return false
}

// Init starts the scheduler: a first cycle after InitialDelay, then one
// every Interval, plus one whenever connectivity comes back.
func (s *quizSyncService) Init(onCycleComplete func(updatedAny bool)) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		log.Warn().Msg("Quiz sync scheduler already initialized")
		return
	}
	s.started = true
	s.onComplete = onCycleComplete
	s.wg.Add(1)
	s.mu.Unlock()

	s.connectivity.Subscribe(s.OnConnectivityChanged)
	go s.schedule()

	log.Info().
		Dur("initialDelay", s.opts.InitialDelay).
		Dur("interval", s.opts.Interval).
		Msg("Quiz sync scheduler started")
}

func (s *quizSyncService) schedule() {
	defer s.wg.Done()

	if err := sleepContext(s.ctx, s.opts.InitialDelay); err != nil {
		return
	}
	s.runAndNotify()

	if s.opts.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runAndNotify()
		}
	}
}

func (s *quizSyncService) runAndNotify() {
	updated, ran := s.runCycle(s.ctx)
	if !ran {
		return
	}
	s.mu.Lock()
	cb := s.onComplete
	s.mu.Unlock()
	if cb != nil {
		cb(updated)
	}
}

func (s *quizSyncService) OnConnectivityChanged(online bool) {
	if !online {
		return
	}
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return
	}
	log.Info().Msg("Back online, starting quiz sync")
	s.TriggerCycle()
}

// TriggerCycle starts a cycle in the background. It returns false when a
// cycle is already running or the scheduler is stopped.
func (s *quizSyncService) TriggerCycle() bool {
	if s.running.Load() {
		return false
	}
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.runAndNotify()
	}()
	return true
}

func (s *quizSyncService) Status() SyncStatus {
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()

	status.State = SyncStateIdle
	if s.running.Load() {
		status.State = SyncStateRunning
	}
	return status
}

func (s *quizSyncService) AcknowledgeNewContent() {
	s.mu.Lock()
	s.status.NewContentAvailable = false
	s.mu.Unlock()
}

// Stop cancels any running cycle and waits for scheduler goroutines.
func (s *quizSyncService) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	log.Info().Msg("Quiz sync scheduler stopped")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
