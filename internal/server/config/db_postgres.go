package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// OpenDB открывает пул подключений к PostgreSQL (драйвер pgx), проверяет его
// доступность и при включённых миграциях применяет их.
//
// Глобального состояния нет: вызывающий получает *sql.DB и сам передаёт его
// в репозитории, а также отвечает за Close.
func OpenDB(ctx context.Context, dbCfg DBConfig, migCfg MigrationsConfig, log *logger.HTTPLogger) (*sql.DB, error) {
	sugar := log.Sugar()

	db, err := sql.Open("pgx", dbCfg.DSN)
	if err != nil {
		sugar.Errorf("error to connect db: %v", err)
		return nil, err
	}

	if dbCfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}
	if dbCfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)
	}

	if err = db.PingContext(ctx); err != nil {
		sugar.Errorf("error check db connection: %v", err)
		db.Close()
		return nil, err
	}

	if migCfg.Enabled {
		if err := Migrate(db, migCfg.Path); err != nil {
			sugar.Errorf("error applying migrations: %v", err)
			db.Close()
			return nil, err
		}
		sugar.Info("migrations applied successfully")
	}

	return db, nil
}

// Migrate применяет миграции из sourceURL (например file://migrations/postgres).
// Если миграции уже применены, migrate.ErrNoChange не считается ошибкой.
func Migrate(db *sql.DB, sourceURL string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
