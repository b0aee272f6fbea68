package receipt

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/FloresJesus/Pharmacy/pkg/adapters"
	"github.com/FloresJesus/Pharmacy/pkg/handlers"
	"github.com/FloresJesus/Pharmacy/pkg/models/api"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/services/receipt"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	receipts receipt.Service
}

func NewHandler(receipts receipt.Service) *Handler {
	return &Handler{receipts: receipts}
}

func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	var body api.ReceiptRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	req, err := adapters.MapApiReceiptRequestToDomain(body)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	stored, err := h.receipts.Issue(r.Context(), req)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapStoredReceiptToApi(stored))
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	saleID, err := strconv.ParseInt(chi.URLParam(r, "saleID"), 10, 64)
	if err != nil || saleID <= 0 {
		handlers.WriteError(w, r, fmt.Errorf("%w: ventaId inválido", domain.ErrInvalidRequest))
		return
	}

	data, err := h.receipts.Render(r.Context(), saleID)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	name := domain.Receipt{SaleID: saleID}.FileName()
	handlers.WriteFile(w, r, name, "application/pdf", data)
}
