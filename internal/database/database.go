package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/stylehub/internal/models"
)

// Connect opens the database, creating it first when missing, and runs migrations.
func Connect(ctx context.Context, dsn string, debug bool) (*gorm.DB, error) {
	if err := ensureDatabase(ctx, dsn); err != nil {
		return nil, fmt.Errorf("ensure database: %w", err)
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("database ready", "component", "database")
	return conn, nil
}

// Migrate creates or updates every table the storefront uses.
func Migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.Brand{},
		&models.Product{},
		&models.ProductAttribute{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.UserActivity{},
		&models.WishlistItem{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

// Ping checks that the underlying connection is alive.
func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// maintenanceTarget splits a postgres DSN into the DSN of the "postgres"
// maintenance database and the name of the database it points at. ok is false
// for non-postgres DSNs and DSNs without a database name.
func maintenanceTarget(dsn string) (maintenanceDSN, name string, ok bool, err error) {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return "", "", false, nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", "", false, fmt.Errorf("parse dsn: %w", err)
	}
	name = strings.TrimPrefix(parsed.Path, "/")
	if name == "" {
		return "", "", false, nil
	}

	parsed.Path = "/postgres"
	return parsed.String(), name, true, nil
}

// ensureDatabase creates the storefront database through the maintenance
// database when it does not exist yet.
func ensureDatabase(ctx context.Context, dsn string) error {
	maintenanceDSN, name, ok, err := maintenanceTarget(dsn)
	if err != nil || !ok {
		return err
	}

	sqlDB, err := sql.Open("postgres", maintenanceDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("reach maintenance database: %w", err)
	}

	var exists bool
	if err := sqlDB.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name,
	).Scan(&exists); err != nil {
		return fmt.Errorf("look up database %s: %w", name, err)
	}
	if exists {
		return nil
	}

	if _, err := sqlDB.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	slog.Info("database created", "component", "database", "name", name)
	return nil
}
