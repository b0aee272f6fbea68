package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/document"
	receiptpdf "github.com/FloresJesus/Pharmacy/pkg/export/receipt"
	"github.com/FloresJesus/Pharmacy/pkg/export/table"
	"github.com/FloresJesus/Pharmacy/pkg/observability"
	"github.com/FloresJesus/Pharmacy/pkg/services/config"
	"github.com/FloresJesus/Pharmacy/pkg/services/receipt"
	"github.com/FloresJesus/Pharmacy/pkg/services/report"
	"github.com/FloresJesus/Pharmacy/pkg/store/blob"
	"github.com/FloresJesus/Pharmacy/pkg/store/cache"
	"github.com/FloresJesus/Pharmacy/pkg/store/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// App holds the services built from a Config.
type App struct {
	Reports  *report.DefaultService
	Receipts *receipt.DefaultService
	Metrics  *observability.Metrics
	Location *time.Location

	db    *sql.DB
	redis *redis.Client
}

// New opens the database and the optional storage and cache backends and
// wires the report and receipt services on top of them.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := zerolog.Ctx(ctx)

	formatter, err := cfg.Report.Formatter()
	if err != nil {
		return nil, err
	}

	logo, err := readLogo(cfg.Report.LogoPath)
	if err != nil {
		return nil, err
	}

	branding, err := config.LoadBranding(cfg.Branding.Path)
	if err != nil {
		return nil, err
	}

	fonts, err := document.DefaultMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to load font metrics: %w", err)
	}

	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}

	app := &App{Metrics: metrics, Location: formatter.Location}

	app.db, err = postgres.NewDB(cfg.Database.Settings())
	if err != nil {
		return nil, err
	}
	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, app.db); err != nil {
			app.Close()
			return nil, err
		}
	}

	source, err := postgres.NewSource(app.db)
	if err != nil {
		app.Close()
		return nil, err
	}
	audits, err := postgres.NewAuditStore(app.db)
	if err != nil {
		app.Close()
		return nil, err
	}
	receiptStore, err := postgres.NewReceiptStore(app.db)
	if err != nil {
		app.Close()
		return nil, err
	}

	registry, err := report.NewRegistry(report.Variants()...)
	if err != nil {
		app.Close()
		return nil, err
	}
	dispatcher, err := report.NewDispatcher(registry, source, report.DispatcherConfig{
		Formatter:  formatter,
		ExpiryDays: cfg.Report.ExpiryDays,
	})
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Reports = report.NewService(dispatcher,
		table.NewRenderer(fonts, table.WithFormatter(formatter)),
		report.WithAuditStore(audits),
		report.WithMetrics(metrics),
		report.WithLogo(logo),
	)

	deps := receipt.Dependencies{
		Source:   source,
		Receipts: receiptStore,
		Renderer: receiptpdf.NewRenderer(fonts, receiptpdf.WithFormatter(formatter), receiptpdf.WithBranding(branding)),
	}
	if cfg.Storage.Enabled() {
		awsCfg, err := blob.LoadConfig(ctx, cfg.Storage.Settings())
		if err != nil {
			app.Close()
			return nil, err
		}
		deps.Blobs, err = blob.NewS3Store(awsCfg, cfg.Storage.Settings())
		if err != nil {
			app.Close()
			return nil, err
		}
	} else {
		logger.Warn().Msg("receipt storage is not configured, receipts can only be rendered")
	}

	opts := []receipt.Option{
		receipt.WithMetrics(metrics),
		receipt.WithURLTTL(cfg.Storage.URLTTL),
		receipt.WithLogo(logo),
	}
	if cfg.Cache.Enabled() {
		app.redis = cache.NewRedisClient(cfg.Cache.Settings())
		opts = append(opts, receipt.WithURLCache(cache.NewRedisCache(app.redis)))
	}

	app.Receipts, err = receipt.NewService(deps, opts...)
	if err != nil {
		app.Close()
		return nil, err
	}

	logger.Info().
		Str("timezone", formatter.Location.String()).
		Bool("storage", cfg.Storage.Enabled()).
		Bool("cache", cfg.Cache.Enabled()).
		Msg("pharmacy services ready")
	return app, nil
}

// Close releases the database pool and the cache client.
func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// readLogo returns nil when path is empty or missing; the documents are
// then rendered without a logo.
func readLogo(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	return data, nil
}
