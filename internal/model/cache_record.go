package model

import "time"

// CacheRecord is the persisted value stored under a quiz cache key.
// Timestamp is epoch milliseconds at write time.
type CacheRecord struct {
	Timestamp     int64      `json:"timestamp"`
	SchemaVersion string     `json:"schemaVersion"`
	Questions     []Question `json:"questions"`
}

// CacheEntry is the relational row backing the postgres key-value store.
type CacheEntry struct {
	CacheKey  string    `gorm:"column:cache_key;primaryKey;size:255" json:"cache_key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CacheEntry) TableName() string {
	return "quiz_cache_entries"
}
