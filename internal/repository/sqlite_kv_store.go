package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const createQuizCacheTable = `
CREATE TABLE IF NOT EXISTS quiz_cache (
	cache_key  TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

type sqliteKVStore struct {
	db *sql.DB
}

// NewSQLiteKVStore keeps cache records in a local sqlite table.
func NewSQLiteKVStore(db *sql.DB) (KVStore, error) {
	if _, err := db.Exec(createQuizCacheTable); err != nil {
		return nil, fmt.Errorf("failed to create quiz_cache table: %w", err)
	}
	return &sqliteKVStore{db: db}, nil
}

func (s *sqliteKVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM quiz_cache WHERE cache_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *sqliteKVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO quiz_cache (cache_key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UnixMilli())
	return err
}

func (s *sqliteKVStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM quiz_cache WHERE cache_key = ?`, key)
	return err
}

func (s *sqliteKVStore) Close() error {
	return s.db.Close()
}
