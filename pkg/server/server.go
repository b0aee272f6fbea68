package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	receipthandlers "github.com/FloresJesus/Pharmacy/pkg/handlers/receipt"
	reporthandlers "github.com/FloresJesus/Pharmacy/pkg/handlers/report"
	pharmacymiddleware "github.com/FloresJesus/Pharmacy/pkg/server/middleware"
	"github.com/FloresJesus/Pharmacy/pkg/services/receipt"
	"github.com/FloresJesus/Pharmacy/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Reports  report.Service
	Receipts receipt.Service
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Location is used to read request dates.
	Location *time.Location
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	logger := config.Dependencies.Logger
	reportHandler := reporthandlers.NewHandler(config.Dependencies.Reports, config.Dependencies.Location)
	receiptHandler := receipthandlers.NewHandler(config.Dependencies.Receipts)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(pharmacymiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/reports/kinds", reportHandler.ListKinds)
		r.Post("/reports", reportHandler.Generate)
		r.Post("/receipts", receiptHandler.Issue)
		r.Get("/receipts/{saleID}/pdf", receiptHandler.Download)
	})

	if config.Dependencies.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", config.Dependencies.Metrics)
	}

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
