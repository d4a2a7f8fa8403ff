package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"pet-care-log/internal/ports/storage"

	gstorage "cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

func TestMapErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"missing object", gstorage.ErrObjectNotExist, storage.ErrNotExist},
		{"wrapped missing object", fmt.Errorf("read: %w", gstorage.ErrObjectNotExist), storage.ErrNotExist},
		{"404", &googleapi.Error{Code: http.StatusNotFound}, storage.ErrNotExist},
		{"401", &googleapi.Error{Code: http.StatusUnauthorized}, storage.ErrUnauthorized},
		{"403", &googleapi.Error{Code: http.StatusForbidden}, storage.ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapErr(tc.err), tc.want)
		})
	}
}

func TestMapErr_Passthrough(t *testing.T) {
	boom := errors.New("boom")
	err := mapErr(boom)

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, storage.ErrUnauthorized)
	assert.NoError(t, mapErr(nil))
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}

// fakeGCS implementa la JSON API mínima: upload multipart y lectura alt=media.
type fakeGCS struct {
	mu           sync.Mutex
	objects      map[string]string // bucket/nombre -> contenido
	contentTypes map[string]string
	uploads      int
	denied       bool
}

func newFakeGCS() *fakeGCS {
	return &fakeGCS{objects: map[string]string{}, contentTypes: map[string]string{}}
}

func writeAPIError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, code, http.StatusText(code))
}

// bucketAndObject parsea /storage/v1/b/{bucket}/o[/{object}].
func bucketAndObject(p string) (string, string) {
	i := strings.Index(p, "/b/")
	if i < 0 {
		return "", ""
	}
	rest := p[i+len("/b/"):]
	bucket, after, _ := strings.Cut(rest, "/o")
	return bucket, strings.TrimPrefix(after, "/")
}

func (f *fakeGCS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.denied {
		writeAPIError(w, http.StatusForbidden)
		return
	}
	bucket, object := bucketAndObject(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && object != "":
		body, ok := f.objects[bucket+"/"+object]
		if !ok {
			writeAPIError(w, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", f.contentTypes[bucket+"/"+object])
		w.Header().Set("X-Goog-Generation", "1")
		w.Header().Set("X-Goog-Metageneration", "1")
		_, _ = io.WriteString(w, body)

	case r.Method == http.MethodPost && object == "":
		f.uploads++
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			writeAPIError(w, http.StatusBadRequest)
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		metaPart, err := mr.NextPart()
		if err != nil {
			writeAPIError(w, http.StatusBadRequest)
			return
		}
		var meta struct {
			Name        string `json:"name"`
			ContentType string `json:"contentType"`
		}
		_ = json.NewDecoder(metaPart).Decode(&meta)
		if meta.Name == "" {
			meta.Name = r.URL.Query().Get("name")
		}
		contentPart, err := mr.NextPart()
		if err != nil {
			writeAPIError(w, http.StatusBadRequest)
			return
		}
		content, _ := io.ReadAll(contentPart)

		key := bucket + "/" + meta.Name
		f.objects[key] = string(content)
		f.contentTypes[key] = meta.ContentType

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"bucket":      bucket,
			"name":        meta.Name,
			"contentType": meta.ContentType,
			"size":        fmt.Sprint(len(content)),
			"generation":  "1",
		})

	default:
		writeAPIError(w, http.StatusTeapot)
	}
}

func newTestStore(t *testing.T, fake *fakeGCS, prefix string) *Store {
	t.Helper()
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	s, err := New(context.Background(), Config{Bucket: "household", Prefix: prefix},
		option.WithEndpoint(ts.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(ts.Client()),
		gstorage.WithJSONReads(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	fake := newFakeGCS()
	s := newTestStore(t, fake, "home-1/")
	ctx := context.Background()

	_, err := s.Load(ctx, storage.DocCareLogs)
	assert.ErrorIs(t, err, storage.ErrNotExist)

	require.NoError(t, s.Save(ctx, storage.DocCareLogs, []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Save(ctx, storage.DocCareLogs, []byte(`[{"id":"2"}]`)))

	body, err := s.Load(ctx, storage.DocCareLogs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"2"}]`, string(body))

	// el objeto queda bajo el prefijo y como JSON
	assert.Equal(t, 2, fake.uploads)
	assert.Contains(t, fake.objects, "household/home-1/"+storage.DocCareLogs)
	assert.Equal(t, "application/json", fake.contentTypes["household/home-1/"+storage.DocCareLogs])
}

func TestStore_DeniedIsUnauthorized(t *testing.T) {
	fake := newFakeGCS()
	fake.denied = true
	s := newTestStore(t, fake, "")
	ctx := context.Background()

	_, err := s.Load(ctx, storage.DocSettings)
	assert.ErrorIs(t, err, storage.ErrUnauthorized)

	err = s.Save(ctx, storage.DocSettings, []byte(`{}`))
	assert.ErrorIs(t, err, storage.ErrUnauthorized)
}

func TestStore_FailedWriteDoesNotCommit(t *testing.T) {
	fake := newFakeGCS()
	s := newTestStore(t, fake, "")

	// nombre inválido: el writer falla antes de abrir el upload
	err := s.Save(context.Background(), "bad\xff.json", []byte(`[]`))
	assert.Error(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Zero(t, fake.uploads)
	assert.Empty(t, fake.objects)
}
