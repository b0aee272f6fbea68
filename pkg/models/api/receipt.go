package api

import "encoding/json"

// ReceiptRequest is the body of POST /api/v1/receipts. ventaId may be sent
// as a number or a numeric string.
type ReceiptRequest struct {
	SaleID json.Number `json:"ventaId"`
	Type   string      `json:"tipo,omitempty"`
	Series string      `json:"serie,omitempty"`
	Number string      `json:"numero,omitempty"`
	Signed *bool       `json:"generarFirmado,omitempty"`
}

type ReceiptResponse struct {
	OK          bool    `json:"ok"`
	ReceiptID   int64   `json:"comprobanteId"`
	StoragePath string  `json:"storagePath"`
	SignedURL   *string `json:"signedUrl"`
}
