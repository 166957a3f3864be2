package service

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/lshigami/QuizMaster/internal/repository"
)

const testKey = "quizdata_cache_history_Medium_10_en"

func assertDeleted(t *testing.T, store repository.KVStore, key string) {
	t.Helper()
	if _, err := store.Get(context.Background(), key); !errors.Is(err, repository.ErrKeyNotFound) {
		t.Errorf("key %q still present (err = %v), want deleted", key, err)
	}
}

func TestQuizCacheWriteThenRead(t *testing.T) {
	cache, store, clock := newTestCache()
	ctx := context.Background()
	quiz := sampleQuiz(10, "history")

	cache.Write(ctx, testKey, quiz)

	raw, err := store.Get(ctx, testKey)
	if err != nil {
		t.Fatalf("store.Get() error = %v", err)
	}
	var record model.CacheRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		t.Fatalf("stored value is not a cache record: %v", err)
	}
	if record.SchemaVersion != "1.2.0" {
		t.Errorf("SchemaVersion = %q, want 1.2.0", record.SchemaVersion)
	}
	if record.Timestamp != clock.Now().UnixMilli() {
		t.Errorf("Timestamp = %d, want %d", record.Timestamp, clock.Now().UnixMilli())
	}

	for _, silent := range []bool{false, true} {
		got, ok := cache.Read(ctx, testKey, silent)
		if !ok {
			t.Fatalf("Read(silent=%v) = absent, want hit", silent)
		}
		if !reflect.DeepEqual(got, quiz) {
			t.Errorf("Read(silent=%v) = %+v, want %+v", silent, got, quiz)
		}
	}
}

func TestQuizCacheReadMiss(t *testing.T) {
	cache, _, _ := newTestCache()
	if got, ok := cache.Read(context.Background(), testKey, false); ok {
		t.Errorf("Read() = %+v, want absent", got)
	}
}

func TestQuizCacheVersionMismatch(t *testing.T) {
	store := repository.NewMemoryKVStore()
	clock := newFakeClock()
	old := newQuizCacheService(store, "1.1.0", 24*time.Hour, clock.Now)
	current := newQuizCacheService(store, "1.2.0", 24*time.Hour, clock.Now)
	ctx := context.Background()

	old.Write(ctx, testKey, sampleQuiz(10, "history"))

	if _, ok := current.Read(ctx, testKey, false); ok {
		t.Fatal("Read() of record from another version = hit, want absent")
	}
	assertDeleted(t, store, testKey)

	if _, ok := current.Read(ctx, testKey, false); ok {
		t.Error("second Read() = hit, want absent")
	}
}

func TestQuizCacheExpiry(t *testing.T) {
	cache, store, clock := newTestCache()
	ctx := context.Background()

	cache.Write(ctx, testKey, sampleQuiz(10, "history"))

	clock.Advance(24 * time.Hour)
	if _, ok := cache.Read(ctx, testKey, true); !ok {
		t.Fatal("Read() at exactly 24h = absent, want hit")
	}

	clock.Advance(time.Millisecond)
	if _, ok := cache.Read(ctx, testKey, true); ok {
		t.Fatal("Read() after 24h = hit, want absent")
	}
	assertDeleted(t, store, testKey)
}

func TestQuizCacheDiscardsBadRecords(t *testing.T) {
	invalid, _ := json.Marshal(model.CacheRecord{
		Timestamp:     newFakeClock().Now().UnixMilli(),
		SchemaVersion: "1.2.0",
		Questions: []model.Question{{
			Question:      "Only three options?",
			Type:          model.QuestionTypeMultipleChoice,
			Options:       []string{"a", "b", "c"},
			CorrectAnswer: "a",
		}},
	})

	tests := map[string]string{
		"not json":        "{not json",
		"wrong shape":     `["a","b"]`,
		"empty questions": `{"timestamp": 1709294400000, "schemaVersion": "1.2.0", "questions": []}`,
		"invalid quiz":    string(invalid),
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			cache, store, _ := newTestCache()
			ctx := context.Background()
			if err := store.Set(ctx, testKey, raw); err != nil {
				t.Fatal(err)
			}
			if got, ok := cache.Read(ctx, testKey, false); ok {
				t.Fatalf("Read() = %+v, want absent", got)
			}
			assertDeleted(t, store, testKey)
		})
	}
}

type failingStore struct {
	repository.KVStore
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func TestQuizCacheWriteFailureIsSwallowed(t *testing.T) {
	store := failingStore{KVStore: repository.NewMemoryKVStore()}
	cache := newQuizCacheService(store, "1.2.0", 24*time.Hour, time.Now)

	cache.Write(context.Background(), testKey, sampleQuiz(3, "history"))

	if _, ok := cache.Read(context.Background(), testKey, false); ok {
		t.Error("Read() after failed write = hit, want absent")
	}
}
