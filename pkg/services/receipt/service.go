package receipt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/adapters"
	"github.com/FloresJesus/Pharmacy/pkg/document"
	receiptpdf "github.com/FloresJesus/Pharmacy/pkg/export/receipt"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/models/store"
	"github.com/FloresJesus/Pharmacy/pkg/observability"
	"github.com/FloresJesus/Pharmacy/pkg/store/blob"
	"github.com/FloresJesus/Pharmacy/pkg/store/cache"
	"github.com/FloresJesus/Pharmacy/pkg/store/postgres"
	"github.com/FloresJesus/Pharmacy/pkg/store/records"
	"github.com/rs/zerolog"
)

const (
	DefaultURLTTL  = time.Hour
	pdfContentType = "application/pdf"
)

type Service interface {
	// Issue returns the stored receipt of a sale, rendering and uploading it
	// the first time it is requested.
	Issue(ctx context.Context, req domain.IssueRequest) (*domain.StoredReceipt, error)
	// Render builds the receipt PDF of a sale without storing it.
	Render(ctx context.Context, saleID int64) ([]byte, error)
}

type Dependencies struct {
	Source   records.Source
	Receipts postgres.ReceiptStore
	Blobs    blob.Store
	Renderer *receiptpdf.Renderer
}

type DefaultService struct {
	source   records.Source
	receipts postgres.ReceiptStore
	blobs    blob.Store
	renderer *receiptpdf.Renderer
	urls     cache.URLCache
	metrics  observability.Recorder
	urlTTL   time.Duration
	now      func() time.Time

	logoData []byte
	logoOnce sync.Once
	logo     *document.Logo
}

type Option func(*DefaultService)

func WithURLCache(c cache.URLCache) Option {
	return func(s *DefaultService) { s.urls = c }
}

func WithMetrics(r observability.Recorder) Option {
	return func(s *DefaultService) { s.metrics = r }
}

func WithURLTTL(ttl time.Duration) Option {
	return func(s *DefaultService) {
		if ttl > 0 {
			s.urlTTL = ttl
		}
	}
}

func WithLogo(data []byte) Option {
	return func(s *DefaultService) { s.logoData = data }
}

func WithClock(now func() time.Time) Option {
	return func(s *DefaultService) { s.now = now }
}

func NewService(deps Dependencies, opts ...Option) (*DefaultService, error) {
	if deps.Source == nil || deps.Renderer == nil {
		return nil, fmt.Errorf("receipt service needs a record source and a renderer")
	}
	s := &DefaultService{
		source:   deps.Source,
		receipts: deps.Receipts,
		blobs:    deps.Blobs,
		renderer: deps.Renderer,
		urls:     cache.Noop{},
		metrics:  observability.Noop{},
		urlTTL:   DefaultURLTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *DefaultService) Issue(ctx context.Context, req domain.IssueRequest) (*domain.StoredReceipt, error) {
	if s.receipts == nil || s.blobs == nil {
		return nil, fmt.Errorf("receipt storage is not configured")
	}
	req = req.WithDefaults()
	logger := zerolog.Ctx(ctx).With().Int64("sale_id", req.SaleID).Logger()

	existing, err := s.receipts.FindBySale(ctx, req.SaleID)
	if err != nil {
		s.metrics.ReceiptGenerated(observability.StatusError)
		return nil, fmt.Errorf("failed to look up receipt: %w", err)
	}
	if existing != nil {
		logger.Debug().Int64("receipt_id", existing.ID).Msg("receipt already issued")
		return s.reuse(ctx, existing, req.Signed), nil
	}

	sale, items, err := s.load(ctx, req.SaleID)
	if err != nil {
		s.metrics.ReceiptGenerated(observability.StatusError)
		return nil, err
	}

	data, err := s.render(ctx, sale, items)
	if err != nil {
		s.metrics.ReceiptGenerated(observability.StatusError)
		return nil, err
	}

	issuedAt := s.now()
	path := domain.ReceiptPath(sale.ID, issuedAt)
	if err := s.blobs.Put(ctx, path, data, pdfContentType); err != nil {
		s.metrics.ReceiptGenerated(observability.StatusError)
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	payload, err := json.Marshal(newPayload(sale, items))
	if err != nil {
		s.metrics.ReceiptGenerated(observability.StatusError)
		return nil, fmt.Errorf("failed to encode receipt payload: %w", err)
	}

	row := &store.Receipt{
		SaleID:      sale.ID,
		Type:        req.Type,
		Series:      req.Series,
		Number:      req.Number,
		IssuedAt:    issuedAt,
		Payload:     payload,
		StoragePath: path,
	}
	row.ID, err = s.receipts.Insert(ctx, row)
	if err != nil {
		// A concurrent Issue for the same sale may have registered first.
		winner, findErr := s.receipts.FindBySale(ctx, req.SaleID)
		if findErr == nil && winner != nil {
			if winner.StoragePath != path {
				logger.Warn().Str("path", path).Msg("receipt object left unregistered")
			}
			logger.Debug().Int64("receipt_id", winner.ID).Msg("receipt registered concurrently")
			return s.reuse(ctx, winner, req.Signed), nil
		}
		s.metrics.ReceiptGenerated(observability.StatusError)
		return nil, fmt.Errorf("failed to register receipt: %w", err)
	}

	stored := adapters.MapStoreReceiptToDomain(row)
	if req.Signed {
		stored.SignedURL = s.signedURL(ctx, path)
	}
	s.metrics.ReceiptGenerated(observability.StatusOK)
	logger.Info().Int64("receipt_id", row.ID).Str("path", path).Int("bytes", len(data)).Msg("receipt issued")
	return stored, nil
}

func (s *DefaultService) reuse(ctx context.Context, existing *store.Receipt, signed bool) *domain.StoredReceipt {
	stored := adapters.MapStoreReceiptToDomain(existing)
	if signed {
		stored.SignedURL = s.signedURL(ctx, stored.StoragePath)
	}
	return stored
}

func (s *DefaultService) Render(ctx context.Context, saleID int64) ([]byte, error) {
	sale, items, err := s.load(ctx, saleID)
	if err != nil {
		s.metrics.ReceiptGenerated(observability.StatusError)
		return nil, err
	}
	data, err := s.render(ctx, sale, items)
	if err != nil {
		s.metrics.ReceiptGenerated(observability.StatusError)
		return nil, err
	}
	s.metrics.ReceiptGenerated(observability.StatusOK)
	return data, nil
}

func (s *DefaultService) load(ctx context.Context, saleID int64) (*store.Sale, []store.SaleItem, error) {
	sale, err := s.source.GetSale(ctx, saleID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrSourceFetch, err)
	}
	if sale == nil {
		return nil, nil, fmt.Errorf("%w: %d", domain.ErrSaleNotFound, saleID)
	}

	items, err := s.source.ListSaleItems(ctx, []int64{saleID})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrSourceFetch, err)
	}
	return sale, items, nil
}

func (s *DefaultService) render(ctx context.Context, sale *store.Sale, items []store.SaleItem) ([]byte, error) {
	doc := s.renderer.Render(adapters.MapStoreSaleToDomainReceipt(sale, items), s.headerLogo(ctx))
	data, err := document.Serialize(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize receipt: %w", err)
	}
	return data, nil
}

func (s *DefaultService) headerLogo(ctx context.Context) *document.Logo {
	s.logoOnce.Do(func() {
		logo, err := document.DecodeLogo(s.logoData)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("receipt logo ignored")
			return
		}
		s.logo = logo
	})
	return s.logo
}

// signedURL returns nil when the link cannot be produced; the receipt is
// still returned to the caller.
func (s *DefaultService) signedURL(ctx context.Context, path string) *string {
	logger := zerolog.Ctx(ctx)
	key := "receipt:" + path

	if url, found, err := s.urls.Get(ctx, key); err != nil {
		logger.Warn().Err(err).Msg("signed url cache lookup failed")
	} else if found {
		return &url
	}

	url, err := s.blobs.SignedURL(ctx, path, s.urlTTL)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to sign receipt url")
		return nil
	}

	// expire the cached link before the signature does
	if err := s.urls.Set(ctx, key, url, s.urlTTL*5/6); err != nil {
		logger.Warn().Err(err).Msg("signed url cache write failed")
	}
	return &url
}
