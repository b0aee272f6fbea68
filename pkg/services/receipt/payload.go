package receipt

import (
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/models/store"
	"github.com/shopspring/decimal"
)

// payload is the snapshot kept in comprobantes.datos_json.
type payload struct {
	Sale  salePayload   `json:"venta"`
	Items []itemPayload `json:"items"`
}

type salePayload struct {
	ID        int64           `json:"id"`
	ClientID  *int64          `json:"cliente_id"`
	SoldAt    time.Time       `json:"fecha_venta"`
	Total     decimal.Decimal `json:"monto_total"`
	Status    *string         `json:"estado"`
	FirstName *string         `json:"cliente_nombre,omitempty"`
	LastName  *string         `json:"cliente_apellido,omitempty"`
	CI        *string         `json:"cliente_ci,omitempty"`
}

type itemPayload struct {
	ID           int64           `json:"id"`
	MedicationID int64           `json:"medicamento_id"`
	Code         string          `json:"codigo,omitempty"`
	Name         string          `json:"nombre,omitempty"`
	Quantity     int             `json:"cantidad"`
	UnitPrice    decimal.Decimal `json:"precio_por_unidad"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

func newPayload(sale *store.Sale, items []store.SaleItem) payload {
	p := payload{
		Sale: salePayload{
			ID:       sale.ID,
			ClientID: sale.ClientID,
			SoldAt:   sale.SoldAt,
			Total:    sale.Total,
			Status:   sale.Status,
		},
		Items: make([]itemPayload, 0, len(items)),
	}
	if c := sale.Client; c != nil {
		p.Sale.FirstName = &c.FirstName
		p.Sale.LastName = c.LastName
		p.Sale.CI = c.CI
	}
	for _, it := range items {
		ip := itemPayload{
			ID:           it.ID,
			MedicationID: it.MedicationID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Subtotal:     it.Subtotal,
		}
		if it.Medication != nil {
			ip.Code = it.Medication.Code
			ip.Name = it.Medication.Name
		}
		p.Items = append(p.Items, ip)
	}
	return p
}
