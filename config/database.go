package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brewheaven-api/store/relational"
)

// OpenRelational connects backend A and migrates its schema.
func OpenRelational(cfg *Config, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", cfg.DBDriver, err)
	}

	if err := relational.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate %s database: %w", cfg.DBDriver, err)
	}

	log.Info("relational database connected and migrated", "driver", cfg.DBDriver)
	return db, nil
}

// OpenDocument connects backend B and checks the server answers.
func OpenDocument(ctx context.Context, cfg *Config, log *slog.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("document database connected", "database", cfg.MongoDatabase)
	return client, nil
}
