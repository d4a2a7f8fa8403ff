package main

import (
	"context"
	"fmt"

	"pet-care-log/internal/adapters/storage/drive"
	"pet-care-log/internal/adapters/storage/gcs"
	mem "pet-care-log/internal/adapters/storage/memory"
	pg "pet-care-log/internal/adapters/storage/postgres"
	redisstore "pet-care-log/internal/adapters/storage/redis"
	s3store "pet-care-log/internal/adapters/storage/s3"
	"pet-care-log/internal/adapters/storage/sqlite"
	"pet-care-log/internal/platform/config"
	"pet-care-log/internal/ports/storage"
)

func noClose() error { return nil }

// openStore construye el backend elegido por STORAGE_BACKEND.
func openStore(ctx context.Context, cfg config.StorageConfig) (storage.DocumentStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return mem.NewStore(), noClose, nil

	case config.BackendPostgres:
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return pg.NewStore(db), db.Close, nil

	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		// sqlite: la tabla se crea al arrancar
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendDrive:
		// el token source vive lo que vive el proceso
		hc := drive.NewOAuthClient(context.Background(), cfg.DriveClientID, cfg.DriveClientSecret, cfg.DriveRefreshToken)
		s, err := drive.New(ctx, drive.Config{
			APIURL: cfg.DriveAPIURL,
			HTTP:   hc,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, noClose, nil

	case config.BackendS3:
		s, err := s3store.New(ctx, s3store.Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, noClose, nil

	case config.BackendGCS:
		s, err := gcs.New(ctx, gcs.Config{Bucket: cfg.GCSBucket, Prefix: cfg.GCSPrefix})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendRedis:
		s, err := redisstore.New(ctx, redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// migrate crea la tabla de documentos. Solo aplica a backends SQL.
func migrate(ctx context.Context, cfg config.StorageConfig) error {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		return pg.NewStore(db).Migrate(ctx)

	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Migrate(ctx)
	}
	return fmt.Errorf("migrate: backend %q has no schema", cfg.Backend)
}
