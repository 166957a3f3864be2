package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/QuizMaster/internal/model"
)

var offlineSet = fakeOffline{
	"technology": sampleQuiz(2, "offline technology"),
}

func TestAcquireQuizCacheHitSkipsGeneration(t *testing.T) {
	cache, _, _ := newTestCache()
	gen := newFakeGeneration()
	cfg := model.QuizRequestConfig{CategoryKey: "history", Difficulty: model.DifficultyMedium, NumQuestions: 10, Language: "en", Timed: true, TimerDuration: 30}
	cached := sampleQuiz(10, "cached history")
	cache.Write(context.Background(), cfg.CacheKey(), cached)

	svc := NewQuizAcquisitionService(cache, gen, offlineSet, onlineConnectivity())
	got, err := svc.AcquireQuiz(context.Background(), cfg)
	if err != nil {
		t.Fatalf("AcquireQuiz() error = %v", err)
	}
	if !reflect.DeepEqual(got, cached) {
		t.Errorf("AcquireQuiz() = %+v, want cached quiz", got)
	}
	if calls := gen.Calls(); len(calls) != 0 {
		t.Errorf("generation called %d times, want 0", len(calls))
	}
}

func TestAcquireQuizGeneratesAndCaches(t *testing.T) {
	cache, _, _ := newTestCache()
	gen := newFakeGeneration()
	cfg := model.QuizRequestConfig{CategoryKey: "technology", Category: "Technology", Difficulty: model.DifficultyEasy, NumQuestions: 5, Language: "en"}

	svc := NewQuizAcquisitionService(cache, gen, offlineSet, onlineConnectivity())
	got, err := svc.AcquireQuiz(context.Background(), cfg)
	if err != nil {
		t.Fatalf("AcquireQuiz() error = %v", err)
	}
	if len(got) != 5 {
		t.Errorf("len(questions) = %d, want 5", len(got))
	}

	cached, ok := cache.Read(context.Background(), "quizdata_cache_technology_Easy_5_en", true)
	if !ok {
		t.Fatal("quiz was not written to quizdata_cache_technology_Easy_5_en")
	}
	if !reflect.DeepEqual(cached, got) {
		t.Errorf("cached quiz = %+v, want %+v", cached, got)
	}

	// a second identical request is served from cache
	if _, err := svc.AcquireQuiz(context.Background(), cfg); err != nil {
		t.Fatalf("second AcquireQuiz() error = %v", err)
	}
	if calls := gen.Calls(); len(calls) != 1 {
		t.Errorf("generation called %d times, want 1", len(calls))
	}
}

func TestAcquireQuizFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		categoryKey  string
		online       bool
		failures     int
		wantOffline  bool
		wantGenCalls int
		wantCause    bool
	}{
		{name: "offline uses bundled quiz", categoryKey: "technology", online: false, wantOffline: true, wantGenCalls: 0},
		{name: "generation failure uses bundled quiz", categoryKey: "technology", online: true, failures: 1, wantOffline: true, wantGenCalls: 1},
		{name: "offline without bundled quiz", categoryKey: "history", online: false, wantGenCalls: 0},
		{name: "generation failure without bundled quiz", categoryKey: "history", online: true, failures: 1, wantGenCalls: 1, wantCause: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, _, _ := newTestCache()
			gen := newFakeGeneration()
			cfg := model.QuizRequestConfig{CategoryKey: tt.categoryKey, Difficulty: model.DifficultyHard, NumQuestions: 15, Language: "de"}
			gen.failures[cfg.CacheKey()] = tt.failures

			conn := onlineConnectivity()
			if !tt.online {
				conn = offlineConnectivity()
			}
			svc := NewQuizAcquisitionService(cache, gen, offlineSet, conn)

			got, err := svc.AcquireQuiz(context.Background(), cfg)
			if n := len(gen.Calls()); n != tt.wantGenCalls {
				t.Errorf("generation called %d times, want %d", n, tt.wantGenCalls)
			}

			if tt.wantOffline {
				if err != nil {
					t.Fatalf("AcquireQuiz() error = %v", err)
				}
				if !reflect.DeepEqual(got, offlineSet[tt.categoryKey]) {
					t.Errorf("AcquireQuiz() = %+v, want offline quiz", got)
				}
				if _, ok := cache.Read(context.Background(), cfg.CacheKey(), true); ok {
					t.Error("offline quiz must not be written to the cache")
				}
				return
			}

			var acqErr *AcquisitionError
			if !errors.As(err, &acqErr) {
				t.Fatalf("AcquireQuiz() error = %v, want *AcquisitionError", err)
			}
			if err.Error() != acquisitionFailureMessage {
				t.Errorf("message = %q", err.Error())
			}
			if acqErr.CategoryKey != tt.categoryKey {
				t.Errorf("CategoryKey = %q, want %q", acqErr.CategoryKey, tt.categoryKey)
			}
			var genErr *GenerationError
			if got := errors.As(err, &genErr); got != tt.wantCause {
				t.Errorf("wraps GenerationError = %v, want %v", got, tt.wantCause)
			}
		})
	}
}

func TestAcquireQuizCoalescesConcurrentMisses(t *testing.T) {
	cache, _, _ := newTestCache()
	gen := newFakeGeneration()
	gen.block = make(chan struct{})
	gen.started = make(chan struct{}, 1)
	cfg := model.QuizRequestConfig{CategoryKey: "music", Difficulty: model.DifficultyEasy, NumQuestions: 5, Language: "en"}

	svc := NewQuizAcquisitionService(cache, gen, offlineSet, onlineConnectivity())

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AcquireQuiz(context.Background(), cfg)
			errs <- err
		}()
	}

	<-gen.started
	time.Sleep(50 * time.Millisecond)
	close(gen.block)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("AcquireQuiz() error = %v", err)
		}
	}
	if n := len(gen.Calls()); n != 1 {
		t.Errorf("generation called %d times, want 1", n)
	}
}
