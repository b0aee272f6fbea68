package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const companySection = "company"

// LoadBranding reads the [company] block printed on receipts. A missing
// file or key keeps the built-in value.
func LoadBranding(path string) (domain.Branding, error) {
	def := domain.DefaultBranding()
	if path == "" {
		return def, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return def, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return def, fmt.Errorf("failed to read branding file: %w", err)
	}

	section := cfg.Section(companySection)
	return domain.Branding{
		Name:    section.Key("name").MustString(def.Name),
		Phone:   section.Key("phone").MustString(def.Phone),
		Address: section.Key("address").MustString(def.Address),
		Contact: section.Key("contact").MustString(def.Contact),
		Thanks:  section.Key("thanks").MustString(def.Thanks),
	}, nil
}
