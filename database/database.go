package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lshigami/QuizMaster/config"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the postgres connection used by the relational cache store.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Database.Host, cfg.Database.User, cfg.Database.Password, cfg.Database.Name, cfg.Database.Port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("host", cfg.Database.Host).Str("name", cfg.Database.Name).Msg("Connected to postgres")
	return db, nil
}

// NewSQLite opens the local sqlite file. A single connection keeps writes
// serialized, which is all go-sqlite3 needs for a small key-value table.
func NewSQLite(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.Cache.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.Cache.SQLitePath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.Cache.SQLitePath, err)
	}

	log.Info().Str("path", cfg.Cache.SQLitePath).Msg("Opened sqlite cache database")
	return db, nil
}

func NewRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", client.Options().Addr).Msg("Connected to redis")
	return client, nil
}
