package domain

import "fmt"

// Branding is the company block printed on receipts
type Branding struct {
	Name    string
	Phone   string
	Address string
	Contact string
	Thanks  string
}

func DefaultBranding() Branding {
	return Branding{
		Name:    "FARMACIA VIDA SANA",
		Phone:   "Tel: (591) 99999999 | Oruro",
		Address: "Av. Principal 123 - Oruro",
		Contact: "Tel: (000) 000-000 | Email: contacto@farmaciavidasana.bo",
		Thanks:  "Gracias por su preferencia.",
	}
}

func (b Branding) String() string {
	return fmt.Sprintf("%s (%s)", b.Name, b.Address)
}
