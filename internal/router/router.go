package router

import (
	"net/http"
	"time"

	"pet-care-log/docs"
	"pet-care-log/internal/adapters/storage/document"
	mem "pet-care-log/internal/adapters/storage/memory"
	"pet-care-log/internal/domain/carelogs"
	"pet-care-log/internal/domain/scoring"
	"pet-care-log/internal/domain/settings"
	"pet-care-log/internal/domain/weightlogs"
	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/platform/metrics"
	"pet-care-log/internal/ports/auth"
	"pet-care-log/internal/ports/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: backend de documentos. Si no viene, in-memory.
	Store storage.DocumentStore

	Logger   logger.Logger
	Metrics  *metrics.Metrics // nil = sin /metrics
	Location *time.Location   // nil = time.Local
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	docs.SwaggerInfo.BasePath = "/"
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	store := opts.Store
	if store == nil {
		store = mem.NewStore()
	}

	// Una sesión por proceso: caches de los tres documentos
	session := document.NewSession(store, document.Options{
		Logger:  log,
		Metrics: opts.Metrics,
	})

	// Services por módulo
	settingsSvc := settings.NewService(session.Settings())
	logsSvc := carelogs.NewService(session.CareLogs(), settingsSvc, carelogs.Config{
		Location: opts.Location,
		Logger:   log,
		Metrics:  opts.Metrics,
	})
	scoringSvc := scoring.NewService(logsSvc, settingsSvc, logsSvc.Location())
	weightsSvc := weightlogs.NewService(session.WeightLogs(), settingsSvc)

	// Rutas por módulo
	settings.RegisterRoutes(r, settingsSvc)
	carelogs.RegisterRoutes(r, logsSvc)
	scoring.RegisterRoutes(r, scoringSvc)
	weightlogs.RegisterRoutes(r, weightsSvc)

	return r
}
