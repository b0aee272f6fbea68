package adapters

import (
	"fmt"
	"strings"

	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/models/store"
)

// ClientName is the display name of a client; absent or blank names
// collapse to domain.UnregisteredClient.
func ClientName(c *store.Client) string {
	if c == nil {
		return domain.UnregisteredClient
	}
	last := ""
	if c.LastName != nil {
		last = *c.LastName
	}
	name := strings.TrimSpace(c.FirstName + " " + last)
	if name == "" {
		return domain.UnregisteredClient
	}
	return name
}

// MedicationLabel renders "{code} - {name}", or "#{id}" when the medication
// is no longer joined.
func MedicationLabel(ref *store.MedicationRef, id int64) string {
	if ref == nil {
		return fmt.Sprintf("#%d", id)
	}
	return ref.Code + " - " + ref.Name
}

func MapStoreSaleToDomainReceipt(sale *store.Sale, items []store.SaleItem) domain.Receipt {
	rc := domain.Receipt{
		SaleID:     sale.ID,
		IssuedAt:   sale.SoldAt,
		ClientName: ClientName(sale.Client),
		Total:      sale.Total,
		Lines:      make([]domain.ReceiptLine, 0, len(items)),
	}
	for _, it := range items {
		rc.Lines = append(rc.Lines, domain.ReceiptLine{
			Detail:    MedicationLabel(it.Medication, it.MedicationID),
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return rc
}

func MapStoreReceiptToDomain(r *store.Receipt) *domain.StoredReceipt {
	if r == nil {
		return nil
	}
	return &domain.StoredReceipt{
		ID:          r.ID,
		SaleID:      r.SaleID,
		Type:        r.Type,
		Series:      r.Series,
		Number:      r.Number,
		StoragePath: r.StoragePath,
	}
}
