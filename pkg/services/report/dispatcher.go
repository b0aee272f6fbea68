package report

import (
	"context"
	"fmt"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/format"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/store/records"
)

const DefaultExpiryDays = 30

type DispatcherConfig struct {
	Formatter  format.Formatter
	ExpiryDays int
	Now        func() time.Time
}

// Dispatcher resolves a request to its variant, fetches the records the
// variant selects and aggregates them into a table.
type Dispatcher struct {
	registry   Registry
	source     records.Source
	formatter  format.Formatter
	expiryDays int
	now        func() time.Time
}

func NewDispatcher(registry Registry, source records.Source, cfg DispatcherConfig) (*Dispatcher, error) {
	if registry == nil {
		return nil, fmt.Errorf("report registry is nil")
	}
	if source == nil {
		return nil, fmt.Errorf("record source is nil")
	}

	d := &Dispatcher{
		registry:   registry,
		source:     source,
		formatter:  cfg.Formatter,
		expiryDays: cfg.ExpiryDays,
		now:        cfg.Now,
	}
	if d.expiryDays <= 0 {
		d.expiryDays = DefaultExpiryDays
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, req domain.ReportRequest) (*domain.Table, error) {
	v, ok := d.registry.Get(req.Kind)
	if !ok {
		return nil, domain.NewReportError(req.Kind, "dispatch", domain.ErrUnsupportedKind)
	}

	data, err := v.Fetch(ctx, d.source, d.query(req))
	if err != nil {
		return nil, domain.NewReportError(req.Kind, "fetch", fmt.Errorf("%w: %w", domain.ErrSourceFetch, err))
	}

	rows := v.Aggregate(data, Params{Threshold: req.Threshold, Formatter: d.formatter})
	return &domain.Table{Title: v.Title, Rows: rows, Columns: v.Columns}, nil
}

func (d *Dispatcher) Kinds() []domain.KindInfo {
	return d.registry.List()
}

func (d *Dispatcher) query(req domain.ReportRequest) Query {
	from, to := req.Range.Bounds()

	today := d.now()
	if d.formatter.Location != nil {
		today = today.In(d.formatter.Location)
	}
	return Query{
		Period: records.Period{From: from, To: to},
		Expiry: ExpiryWindow(req.Range, today, d.expiryDays),
	}
}
