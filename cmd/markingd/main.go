package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	api "github.com/mind-engage/mindengage-marking/internal/api/http"
	"github.com/mind-engage/mindengage-marking/internal/config"
	"github.com/mind-engage/mindengage-marking/internal/db"
	"github.com/mind-engage/mindengage-marking/internal/essays"
	"github.com/mind-engage/mindengage-marking/internal/metrics"
	"github.com/mind-engage/mindengage-marking/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := newLogger(cfg)

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	target := "sqlite"
	if cfg.DBDriver == config.DriverPostgres {
		ci, _ := config.ParseDatabaseURL(cfg.DatabaseURL) // validated by Load
		target = ci.Redacted()
	}
	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).WithField("db", target).Fatal("db open failed")
	}
	defer dbh.Close()

	bs, err := storage.NewFSStore(cfg.StaticDir)
	if err != nil {
		log.WithError(err).Fatal("static assets")
	}

	m := metrics.New()
	m.RegisterDB(dbh.X.DB)

	handler := api.NewRouter(api.Deps{
		Store:        essays.NewSQLStore(dbh, log.WithField("component", "essays")),
		DB:           dbh,
		Assets:       bs,
		Metrics:      m,
		Log:          log.WithField("component", "http"),
		CORSOrigins:  cfg.CORSOrigins,
		QueryTimeout: cfg.QueryTimeout,
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
	})

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		<-stop
		log.Info("shutting down")
		sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer scancel()
		if err := s.Shutdown(sctx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":   cfg.HTTPAddr,
		"db":     target,
		"static": bs.Base(),
	}).Info("listening")
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server")
	}
	<-closed
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
