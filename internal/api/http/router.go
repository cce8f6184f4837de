package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/mindengage-marking/internal/essays"
	"github.com/mind-engage/mindengage-marking/internal/metrics"
	"github.com/mind-engage/mindengage-marking/internal/storage"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Store   essays.Reader
	DB      Pinger
	Assets  *storage.FSStore
	Metrics *metrics.Metrics
	Log     logrus.FieldLogger

	CORSOrigins  []string
	QueryTimeout time.Duration
	RateLimit    float64
	RateBurst    int
}

// NewRouter builds the full route table. It is called once at startup.
func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.QueryTimeout <= 0 {
		d.QueryTimeout = 5 * time.Second
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(d.Log), middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument)
	}
	if d.RateLimit > 0 {
		r.Use(NewRateLimiter(d.RateLimit, d.RateBurst, d.Log).Handler)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Length", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	if d.DB != nil {
		r.Get("/readyz", ReadyHandler(d.DB, d.Log))
	}
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/api", func(ar chi.Router) {
		ar.Use(Deadline(d.QueryTimeout))
		ar.Get("/subjects", ListSubjectsHandler(d.Store, d.Log))
		ar.Get("/essays/subject/{subjectID:[0-9]+}", ListEssaysBySubjectHandler(d.Store, d.Log))
		ar.Get("/essays/{essayID:[0-9]+}", GetEssayHandler(d.Store, d.Log))
		ar.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		})
	})

	if d.Assets != nil {
		MountAssets(r, d.Assets)
	}
	return r
}
