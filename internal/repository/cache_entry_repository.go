package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/QuizMaster/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cacheEntryRepository struct {
	db *gorm.DB
}

// NewCacheEntryRepository stores cache records as rows of model.CacheEntry.
func NewCacheEntryRepository(db *gorm.DB) (KVStore, error) {
	if err := db.AutoMigrate(&model.CacheEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache entries: %w", err)
	}
	return &cacheEntryRepository{db: db}, nil
}

func (r *cacheEntryRepository) Get(ctx context.Context, key string) (string, error) {
	var entry model.CacheEntry
	if err := r.db.WithContext(ctx).First(&entry, "cache_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

func (r *cacheEntryRepository) Set(ctx context.Context, key, value string) error {
	entry := model.CacheEntry{CacheKey: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *cacheEntryRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&model.CacheEntry{}, "cache_key = ?", key).Error
}

func (r *cacheEntryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
