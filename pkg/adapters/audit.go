package adapters

import (
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/models/store"
)

func MapDomainAuditToStore(a domain.ReportAudit) *store.ReportAudit {
	return &store.ReportAudit{
		ID:         a.ID,
		Kind:       string(a.Kind),
		Format:     string(a.Format),
		Start:      a.Start,
		End:        a.End,
		Threshold:  a.Threshold,
		Status:     string(a.Status),
		Notes:      a.Notes,
		ResultSize: a.ResultSize,
		CreatedBy:  a.CreatedBy,
	}
}

// NewPendingAudit is the audit row opened before a report is dispatched.
func NewPendingAudit(req domain.ReportRequest) domain.ReportAudit {
	a := domain.ReportAudit{
		Kind:      req.Kind,
		Format:    req.Format,
		Start:     req.Range.Start,
		End:       req.Range.End,
		Threshold: req.Threshold,
		Status:    domain.AuditStatusPending,
	}
	if req.RequestedBy != "" {
		by := req.RequestedBy
		a.CreatedBy = &by
	}
	return a
}
