package document

import (
	"errors"
	"time"

	"pet-care-log/internal/domain/carelogs"
	"pet-care-log/internal/domain/settings"
	"pet-care-log/internal/domain/weightlogs"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/storage"
)

// Observer recibe métricas del gateway. *metrics.Metrics lo implementa.
type Observer interface {
	ObserveGatewayOp(document, op string, err error, d time.Duration)
	SessionReset()
}

// Session agrupa los documentos cacheados de un mismo backend.
// Si el backend responde ErrUnauthorized se descartan todos los caches.
type Session struct {
	store   storage.DocumentStore
	log     logger.Logger
	metrics Observer

	careLogs   *doc[[]carelogs.CareLog]
	weightLogs *doc[[]weightlogs.WeightLog]
	settings   *doc[settings.AppSettings]
}

type Options struct {
	Logger  logger.Logger
	Metrics Observer // puede ser nil
}

func NewSession(store storage.DocumentStore, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Session{
		store:   store,
		log:     log.With(map[string]any{"component": "gateway"}),
		metrics: opts.Metrics,
	}

	s.careLogs = &doc[[]carelogs.CareLog]{
		session: s,
		name:    storage.DocCareLogs,
		empty:   func() []carelogs.CareLog { return []carelogs.CareLog{} },
		decode:  decodeCareLogs,
		encode:  encodeCareLogs,
	}
	s.weightLogs = &doc[[]weightlogs.WeightLog]{
		session: s,
		name:    storage.DocWeightLogs,
		empty:   func() []weightlogs.WeightLog { return []weightlogs.WeightLog{} },
		decode:  decodeWeightLogs,
		encode:  encodeWeightLogs,
	}
	s.settings = &doc[settings.AppSettings]{
		session: s,
		name:    storage.DocSettings,
		empty:   settings.Default,
		decode:  decodeSettings,
		encode:  encodeSettings,
	}
	return s
}

func (s *Session) CareLogs() carelogs.Repository {
	return &careLogRepo{d: s.careLogs}
}

func (s *Session) WeightLogs() weightlogs.Repository {
	return &weightLogRepo{d: s.weightLogs}
}

func (s *Session) Settings() settings.Repository {
	return &settingsRepo{d: s.settings}
}

// Reset descarta todo el estado cacheado de la sesión.
func (s *Session) Reset() {
	s.careLogs.reset()
	s.weightLogs.reset()
	s.settings.reset()
}

func (s *Session) observe(name, op string, err error, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveGatewayOp(name, op, err, time.Since(start))
	}
	if err == nil {
		return
	}

	if errors.Is(err, storage.ErrUnauthorized) {
		s.Reset()
		if s.metrics != nil {
			s.metrics.SessionReset()
		}
		s.log.Warn("document store session expired, caches dropped", map[string]any{
			"document": name,
			"op":       op,
		})
		return
	}
	s.log.Error("document store operation failed", map[string]any{
		"document": name,
		"op":       op,
		"err":      err,
	})
}
