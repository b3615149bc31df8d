package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ericfisherdev/hostauth/internal/adapter/driven/authxml"
	"github.com/ericfisherdev/hostauth/internal/adapter/driven/authyaml"
	"github.com/ericfisherdev/hostauth/internal/adapter/driven/envauth"
	sqliteadapter "github.com/ericfisherdev/hostauth/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/hostauth/internal/application"
	"github.com/ericfisherdev/hostauth/internal/config"
	"github.com/ericfisherdev/hostauth/internal/domain/model"
	"github.com/ericfisherdev/hostauth/internal/domain/port/driven"
)

// loadStores snapshots every configured record source and chains them in
// precedence order. Missing auth documents are skipped; malformed ones are
// fatal. The database is closed again once its rows are in memory.
func loadStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application.StoreChain, error) {
	var stores []driven.RecordStore

	if cfg.EnvTokens {
		env := envauth.FromEnv()
		logger.Debug("environment tokens loaded", "records", env.Len())
		stores = append(stores, env)
	}

	if cfg.AuthXMLPath != "" {
		doc, err := authxml.Load(cfg.AuthXMLPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("auth document not found, skipping", "path", cfg.AuthXMLPath)
		case err != nil:
			return nil, err
		default:
			logger.Debug("auth document loaded", "path", cfg.AuthXMLPath, "hosts", len(doc.Hosts()))
			stores = append(stores, doc)
		}
	}

	if cfg.AuthYAMLPath != "" {
		set, err := authyaml.Load(cfg.AuthYAMLPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Warn("auth document not found, skipping", "path", cfg.AuthYAMLPath)
		case err != nil:
			return nil, err
		default:
			logger.Debug("auth document loaded", "path", cfg.AuthYAMLPath, "records", set.Len())
			stores = append(stores, set)
		}
	}

	if cfg.HasDatabase() {
		set, err := loadDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Debug("database records loaded", "path", cfg.DBPath, "records", set.Len())
		stores = append(stores, set)
	} else if cfg.DBPath != "" {
		logger.Warn("database configured without HOSTAUTH_SECRET_KEY, skipping", "path", cfg.DBPath)
	}

	return application.ChainStores(stores...), nil
}

// loadDatabase opens the database, applies migrations and snapshots the
// domain_auth table.
func loadDatabase(ctx context.Context, cfg *config.Config) (_ *model.RecordSet, err error) {
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close database: %w", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return nil, err
	}

	set, err := sqliteadapter.NewAuthRecordRepo(db, cfg.SecretKey).Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// newProvider builds a resolver over freshly loaded stores.
func newProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application.ResolverProvider, error) {
	chain, err := loadStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return application.NewResolverProvider(application.NewCredentialResolver(chain, logger), chain), nil
}
