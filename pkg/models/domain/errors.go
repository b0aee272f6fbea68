package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedKind = errors.New("unsupported report kind")
	ErrSourceFetch     = errors.New("record source failure")
	ErrAssetDecode     = errors.New("asset decode failure")
	ErrSaleNotFound    = errors.New("sale not found")
	ErrInvalidRequest  = errors.New("invalid request")
)

// ReportError carries the failing report kind and stage to the caller.
type ReportError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *ReportError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ReportError{Kind: kind, Op: op, Err: err}
}
