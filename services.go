package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"brewheaven-api/config"
	"brewheaven-api/datasource"
	"brewheaven-api/store"
	"brewheaven-api/store/document"
	"brewheaven-api/store/relational"
	"brewheaven-api/store/static"
)

const connectTimeout = 10 * time.Second

type services struct {
	resolver *datasource.Resolver
	dataset  *static.Dataset
	closers  []func() error
}

// openServices connects the enabled backends. A backend that cannot be
// reached is left out and the fallback chain carries on without it.
func openServices(ctx context.Context, cfg *config.Config, log *slog.Logger) (*services, error) {
	dataset, err := static.Bundled()
	if err != nil {
		return nil, err
	}
	svc := &services{dataset: dataset}

	// nil interfaces, not typed nils, mark a disabled backend
	var relationalBackend, documentBackend store.Backend

	if cfg.RelationalEnabled() {
		db, err := config.OpenRelational(cfg, log)
		if err != nil {
			log.Warn("relational backend disabled", "error", err)
		} else {
			relationalBackend = relational.New(db)
			if sqlDB, err := db.DB(); err == nil {
				svc.closers = append(svc.closers, sqlDB.Close)
			}
		}
	}

	if cfg.DocumentEnabled() {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		client, err := config.OpenDocument(connectCtx, cfg, log)
		cancel()
		if err != nil {
			log.Warn("document backend disabled", "error", err)
		} else {
			documentBackend = document.New(client.Database(cfg.MongoDatabase))
			svc.closers = append(svc.closers, func() error {
				return client.Disconnect(context.Background())
			})
		}
	}

	svc.resolver = datasource.New(datasource.Options{
		Preference: cfg.Preference,
		Relational: relationalBackend,
		Document:   documentBackend,
		Static:     dataset,
		Logger:     log,
	})
	return svc, nil
}

func (s *services) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
