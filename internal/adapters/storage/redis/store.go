package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-care-log/internal/ports/storage"

	goredis "github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // default "petcare:"
}

// Store guarda cada documento en una key string <prefix><name>.
type Store struct {
	rdb    goredis.UniversalClient
	prefix string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return NewWithClient(rdb, cfg.Prefix), nil
}

func NewWithClient(rdb goredis.UniversalClient, prefix string) *Store {
	if strings.TrimSpace(prefix) == "" {
		prefix = "petcare:"
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	body, err := s.rdb.Get(ctx, s.prefix+name).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotExist
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return body, nil
}

func (s *Store) Save(ctx context.Context, name string, body []byte) error {
	return mapErr(s.rdb.Set(ctx, s.prefix+name, body, 0).Err())
}

// mapErr: NOAUTH / WRONGPASS son credenciales vencidas o rotadas.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "NOAUTH") || strings.HasPrefix(msg, "WRONGPASS") {
		return fmt.Errorf("redis: %w: %v", storage.ErrUnauthorized, err)
	}
	return fmt.Errorf("redis: %w", err)
}
