package client

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenGorm оборачивает уже открытый пул соединений в GORM.
// Темы, настройки и страницы работают через GORM, образы и аналитика через sqlx,
// но соединения у них общие.
func OpenGorm(sqlDB *sql.DB, logger *slog.Logger) (*gorm.DB, error) {
	start := time.Now()

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true,
	})
	if err != nil {
		logger.Error("failed to initialize GORM", "error", err)
		return nil, fmt.Errorf("ошибка инициализации GORM: %w", err)
	}

	logger.Info("GORM initialized", "duration_ms", time.Since(start).Milliseconds())
	return db, nil
}
