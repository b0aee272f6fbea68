package report

import (
	"net/http"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/adapters"
	"github.com/FloresJesus/Pharmacy/pkg/handlers"
	"github.com/FloresJesus/Pharmacy/pkg/models/api"
	"github.com/FloresJesus/Pharmacy/pkg/services/report"
)

type Handler struct {
	reports report.Service
	loc     *time.Location
}

// NewHandler serves report downloads; request dates are read in loc.
func NewHandler(reports report.Service, loc *time.Location) *Handler {
	return &Handler{reports: reports, loc: loc}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var body api.ReportRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	req, err := adapters.MapApiReportRequestToDomain(body, h.loc)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	file, err := h.reports.Generate(r.Context(), req)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteFile(w, r, file.Name, file.ContentType, file.Data)
}

func (h *Handler) ListKinds(w http.ResponseWriter, r *http.Request) {
	kinds := h.reports.Kinds()
	response := make([]api.ReportKind, 0, len(kinds))
	for _, k := range kinds {
		response = append(response, adapters.MapDomainKindToApi(k))
	}
	handlers.WriteJSON(w, r, http.StatusOK, response)
}
