package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pet-care-log/internal/ports/storage"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type Config struct {
	Bucket string
	Prefix string // opcional
}

// Store guarda cada documento como un objeto de Cloud Storage.
// Credenciales: Application Default Credentials salvo que opts diga otra cosa.
type Store struct {
	client *gstorage.Client
	bucket string
	prefix string
}

func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs: bucket required")
	}
	client, err := gstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: create client: %w", err)
	}
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) object(name string) *gstorage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(s.prefix + name)
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	r, err := s.object(name).NewReader(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	defer func() { _ = r.Close() }()

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, mapErr(err)
	}
	return body, nil
}

func (s *Store) Save(ctx context.Context, name string, body []byte) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	// documentos chicos: un solo request, sin upload resumable
	w.ChunkSize = 0

	if _, err := w.Write(body); err != nil {
		// cancelar antes de Close aborta el upload: no queda objeto parcial
		cancel()
		_ = w.Close()
		return mapErr(err)
	}
	// el upload se confirma recién en Close
	return mapErr(w.Close())
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		return storage.ErrNotExist
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return storage.ErrNotExist
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("gcs: %w: %v", storage.ErrUnauthorized, err)
		}
	}
	return fmt.Errorf("gcs: %w", err)
}
