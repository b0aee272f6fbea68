package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/adapters"
	"github.com/FloresJesus/Pharmacy/pkg/document"
	"github.com/FloresJesus/Pharmacy/pkg/export/csv"
	"github.com/FloresJesus/Pharmacy/pkg/export/table"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/observability"
	"github.com/FloresJesus/Pharmacy/pkg/store/postgres"
	"github.com/rs/zerolog"
)

type Service interface {
	// Generate dispatches req and encodes the rows in the requested format.
	Generate(ctx context.Context, req domain.ReportRequest) (*domain.ReportFile, error)
	// Table dispatches req without encoding.
	Table(ctx context.Context, req domain.ReportRequest) (*domain.Table, error)
	Kinds() []domain.KindInfo
}

type DefaultService struct {
	dispatcher *Dispatcher
	renderer   *table.Renderer
	audits     postgres.AuditStore
	metrics    observability.Recorder
	now        func() time.Time

	logoData []byte
	logoOnce sync.Once
	logo     *document.Logo
}

type Option func(*DefaultService)

// WithAuditStore records every request in the reportes table. Failures of
// the audit channel are logged and never fail the request.
func WithAuditStore(s postgres.AuditStore) Option {
	return func(svc *DefaultService) { svc.audits = s }
}

func WithMetrics(r observability.Recorder) Option {
	return func(svc *DefaultService) { svc.metrics = r }
}

// WithLogo sets the raster printed in document headers. Undecodable bytes
// are dropped with a warning on first use.
func WithLogo(data []byte) Option {
	return func(svc *DefaultService) { svc.logoData = data }
}

func WithClock(now func() time.Time) Option {
	return func(svc *DefaultService) { svc.now = now }
}

func NewService(dispatcher *Dispatcher, renderer *table.Renderer, opts ...Option) *DefaultService {
	svc := &DefaultService{
		dispatcher: dispatcher,
		renderer:   renderer,
		metrics:    observability.Noop{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *DefaultService) Kinds() []domain.KindInfo {
	return s.dispatcher.Kinds()
}

func (s *DefaultService) Table(ctx context.Context, req domain.ReportRequest) (*domain.Table, error) {
	return s.dispatcher.Dispatch(ctx, req)
}

func (s *DefaultService) Generate(ctx context.Context, req domain.ReportRequest) (*domain.ReportFile, error) {
	if req.Format == "" {
		req.Format = domain.FormatPDF
	}
	started := s.now()
	logger := zerolog.Ctx(ctx).With().
		Str("kind", string(req.Kind)).
		Str("format", string(req.Format)).
		Logger()

	auditID := s.openAudit(ctx, req)

	file, err := s.generate(ctx, req)
	if err != nil {
		note := err.Error()
		s.closeAudit(ctx, auditID, domain.AuditStatusError, note, nil)
		s.metrics.ReportGenerated(metricKind(req.Kind, err), string(req.Format), observability.StatusError, s.now().Sub(started))
		logger.Error().Err(err).Msg("report generation failed")
		return nil, err
	}

	size := len(file.Data)
	s.closeAudit(ctx, auditID, domain.AuditStatusGenerated, domain.DirectDownloadNote, &size)
	s.metrics.ReportGenerated(string(req.Kind), string(req.Format), observability.StatusOK, s.now().Sub(started))
	logger.Info().Int("rows", file.Rows).Int("bytes", size).Msg("report generated")
	return file, nil
}

func (s *DefaultService) generate(ctx context.Context, req domain.ReportRequest) (*domain.ReportFile, error) {
	tbl, err := s.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch req.Format {
	case domain.FormatCSV:
		data = []byte(csv.Encode(tbl.Rows))
	case domain.FormatPDF:
		doc := s.renderer.Render(tbl.Title, tbl.Columns, tbl.Rows, s.headerLogo(ctx))
		data, err = document.Serialize(doc)
		if err != nil {
			return nil, domain.NewReportError(req.Kind, "render", err)
		}
	default:
		return nil, domain.NewReportError(req.Kind, "encode", fmt.Errorf("%w: format %q", domain.ErrInvalidRequest, req.Format))
	}

	return &domain.ReportFile{
		Name:        domain.FileName(req, s.now()),
		ContentType: req.Format.ContentType(),
		Data:        data,
		Rows:        len(tbl.Rows),
	}, nil
}

func (s *DefaultService) headerLogo(ctx context.Context) *document.Logo {
	s.logoOnce.Do(func() {
		logo, err := document.DecodeLogo(s.logoData)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("report logo ignored")
			return
		}
		s.logo = logo
	})
	return s.logo
}

// openAudit returns 0 when no audit row could be created.
func (s *DefaultService) openAudit(ctx context.Context, req domain.ReportRequest) int64 {
	if s.audits == nil {
		return 0
	}
	id, err := s.audits.CreateAudit(ctx, adapters.MapDomainAuditToStore(adapters.NewPendingAudit(req)))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to open report audit")
		return 0
	}
	return id
}

func (s *DefaultService) closeAudit(ctx context.Context, id int64, status domain.AuditStatus, note string, size *int) {
	if s.audits == nil || id == 0 {
		return
	}
	if err := s.audits.UpdateAuditStatus(ctx, id, string(status), &note, size); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int64("audit_id", id).Msg("failed to close report audit")
	}
}

// metricKind keeps unknown kinds from creating new label values.
func metricKind(kind domain.Kind, err error) string {
	if errors.Is(err, domain.ErrUnsupportedKind) {
		return "unsupported"
	}
	return string(kind)
}
