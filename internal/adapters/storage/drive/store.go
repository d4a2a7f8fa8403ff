package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"pet-care-log/internal/ports/storage"

	"golang.org/x/oauth2"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// carpeta oculta por app; el usuario no la ve en su Drive
const appDataFolder = "appDataFolder"

// Google OAuth2.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

type Config struct {
	// Opcional; default la API pública de Drive v3. Debe terminar en "/".
	APIURL string

	// HTTP ya autenticado (ver NewOAuthClient). Requerido.
	HTTP *http.Client
}

// Store guarda cada documento como un archivo JSON en el appDataFolder.
type Store struct {
	files *gdrive.FilesService

	mu  sync.Mutex
	ids map[string]string // nombre -> fileId
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.HTTP == nil {
		return nil, errors.New("drive: http client required")
	}

	opts := []option.ClientOption{option.WithHTTPClient(cfg.HTTP)}
	if ep := strings.TrimSpace(cfg.APIURL); ep != "" {
		if !strings.HasSuffix(ep, "/") {
			ep += "/"
		}
		opts = append(opts, option.WithEndpoint(ep))
	}

	svc, err := gdrive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: create service: %w", err)
	}
	return &Store{files: svc.Files, ids: map[string]string{}}, nil
}

// NewOAuthClient arma un *http.Client que renueva el access token con el
// refresh token del usuario.
func NewOAuthClient(ctx context.Context, clientID, clientSecret, refreshToken string) *http.Client {
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
		Scopes:       []string{gdrive.DriveAppdataScope},
	}
	return oauth2.NewClient(ctx, cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}))
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	id, err := s.fileID(ctx, name)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, storage.ErrNotExist
	}

	res, err := s.files.Get(id).Context(ctx).Download()
	if err != nil {
		if isNotFound(err) {
			s.forget(name)
			return nil, storage.ErrNotExist
		}
		return nil, mapErr(err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("drive: read %s: %w", name, err)
	}
	return body, nil
}

func (s *Store) Save(ctx context.Context, name string, body []byte) error {
	id, err := s.fileID(ctx, name)
	if err != nil {
		return err
	}
	media := googleapi.ContentType("application/json")

	if id != "" {
		_, err := s.files.Update(id, &gdrive.File{}).
			Media(bytes.NewReader(body), media).
			Fields("id").
			Context(ctx).
			Do()
		if isNotFound(err) {
			// borrado remoto: el próximo Save lo vuelve a crear
			s.forget(name)
		}
		return mapErr(err)
	}

	created, err := s.files.Create(&gdrive.File{
		Name:     name,
		MimeType: "application/json",
		Parents:  []string{appDataFolder},
	}).
		Media(bytes.NewReader(body), media).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return mapErr(err)
	}
	if created.Id == "" {
		return errors.New("drive: create returned no file id")
	}
	s.remember(name, created.Id)
	return nil
}

// fileID busca el archivo por nombre; "" = no existe todavía.
func (s *Store) fileID(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	id, ok := s.ids[name]
	s.mu.Unlock()
	if ok {
		return id, nil
	}

	q := fmt.Sprintf("name = '%s' and trashed = false", strings.ReplaceAll(name, "'", `\'`))
	list, err := s.files.List().
		Spaces(appDataFolder).
		Q(q).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", mapErr(err)
	}
	for _, f := range list.Files {
		if f.Name == name && f.Id != "" {
			s.remember(name, f.Id)
			return f.Id, nil
		}
	}
	return "", nil
}

func (s *Store) remember(name, id string) {
	s.mu.Lock()
	s.ids[name] = id
	s.mu.Unlock()
}

func (s *Store) forget(name string) {
	s.mu.Lock()
	delete(s.ids, name)
	s.mu.Unlock()
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

// mapErr traduce la expiración de la sesión a storage.ErrUnauthorized.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusUnauthorized {
		return fmt.Errorf("drive: %w: %v", storage.ErrUnauthorized, err)
	}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return fmt.Errorf("drive: token refresh: %w: %v", storage.ErrUnauthorized, err)
	}
	return fmt.Errorf("drive: %w", err)
}
