package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/lshigami/QuizMaster/internal/repository"
)

var errTransport = errors.New("503 service unavailable")

func sampleQuiz(n int, topic string) []model.Question {
	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, model.Question{
			Question:      fmt.Sprintf("%s question %d?", topic, i+1),
			Type:          model.QuestionTypeMultipleChoice,
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "B",
		})
	}
	return questions
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache() (*quizCacheService, repository.KVStore, *fakeClock) {
	store := repository.NewMemoryKVStore()
	clock := newFakeClock()
	return newQuizCacheService(store, "1.2.0", 24*time.Hour, clock.Now), store, clock
}

// fakeConnectivity reports states from a script, then repeats the last one.
type fakeConnectivity struct {
	mu     sync.Mutex
	states []bool
	calls  int
	subs   []func(bool)
}

func onlineConnectivity() *fakeConnectivity  { return &fakeConnectivity{states: []bool{true}} }
func offlineConnectivity() *fakeConnectivity { return &fakeConnectivity{states: []bool{false}} }

func (f *fakeConnectivity) IsOnline(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.states) {
		i = len(f.states) - 1
	}
	f.calls++
	return f.states[i]
}

func (f *fakeConnectivity) SetOnline(online bool) {
	f.mu.Lock()
	f.states = []bool{online}
	f.calls = 0
	subs := append([]func(bool){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(online)
	}
}

func (f *fakeConnectivity) Subscribe(fn func(bool)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

// fakeGeneration returns scripted errors per cache key, then a valid quiz.
type fakeGeneration struct {
	mu       sync.Mutex
	failures map[string]int
	calls    []string
	block    chan struct{}
	started  chan struct{}
}

func newFakeGeneration() *fakeGeneration {
	return &fakeGeneration{failures: make(map[string]int)}
}

func (f *fakeGeneration) FetchQuiz(ctx context.Context, cfg model.QuizRequestConfig) ([]model.Question, error) {
	key := cfg.CacheKey()

	f.mu.Lock()
	f.calls = append(f.calls, key)
	block, started := f.block, f.started
	fail := f.failures[key] > 0
	if fail {
		f.failures[key]--
	}
	f.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if fail {
		return nil, &GenerationError{Reason: GenerationReasonTransport, CacheKey: key, Err: errTransport}
	}
	return sampleQuiz(cfg.NumQuestions, cfg.CategoryKey), nil
}

func (f *fakeGeneration) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeGenerator struct {
	mu       sync.Mutex
	params   []GenerateParams
	generate func(ctx context.Context, p GenerateParams) ([]model.Question, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, p GenerateParams) ([]model.Question, error) {
	f.mu.Lock()
	f.params = append(f.params, p)
	f.mu.Unlock()
	return f.generate(ctx, p)
}

func (f *fakeGenerator) Params() []GenerateParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]GenerateParams(nil), f.params...)
}

type fakeOffline map[string][]model.Question

func (f fakeOffline) Lookup(categoryKey string) ([]model.Question, bool) {
	q, ok := f[categoryKey]
	return q, ok
}
