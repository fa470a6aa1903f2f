package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// Client владеет единственным пулом соединений с PostgreSQL.
// DB обслуживает sqlx-хранилища (образы, аналитика), Gorm работает поверх того же пула
// и обслуживает темы, настройки и страницы.
type Client struct {
	DB     *sqlx.DB
	Gorm   *gorm.DB
	logger *slog.Logger
}

// NewClient открывает пул с настройками из конфигурации, проверяет соединение
// и подключает к нему GORM
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	db, err := sqlx.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open PostgreSQL connection", "error", err)
		return nil, fmt.Errorf("ошибка открытия соединения с БД: %w", err)
	}
	configurePool(db, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DB.ConnectTimeout)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		logger.Error("failed to ping database", "error", err, "timeout", cfg.DB.ConnectTimeout)
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	gormDB, err := OpenGorm(db.DB, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("PostgreSQL connection established successfully",
		"max_open_conns", cfg.DB.MaxOpenConns,
		"max_idle_conns", cfg.DB.MaxIdleConns,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Client{DB: db, Gorm: gormDB, logger: logger}, nil
}

// configurePool: нулевые значения оставляют умолчания database/sql
func configurePool(db *sqlx.DB, maxOpen, maxIdle int, maxLifetime time.Duration) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}
}

// PingContext проверяет доступность базы для /health
func (c *Client) PingContext(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Client) Close() error {
	start := time.Now()
	stats := c.DB.Stats()
	err := c.DB.Close()
	if err != nil {
		c.logger.Error("failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("database connection closed",
		"open_connections", stats.OpenConnections,
		"wait_count", stats.WaitCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
