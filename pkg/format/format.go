package format

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "Bs."
	dateLayout      = "2006-01-02"
	dateTimeLayout  = "02/01/2006 15:04:05"
	shortDateLayout = "02/01/2006"
)

// Formatter turns values into display strings. The zero value formats
// in UTC with the default currency label.
type Formatter struct {
	Label    string
	Location *time.Location
}

func New(label string, loc *time.Location) Formatter {
	return Formatter{Label: label, Location: loc}
}

func (f Formatter) loc() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

func (f Formatter) label() string {
	if f.Label == "" {
		return DefaultCurrency
	}
	return f.Label
}

// Money prints an amount with exactly two decimals.
func (f Formatter) Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Currency prints an amount prefixed with the currency label, e.g. "Bs. 12.50".
// Negative amounts are printed as they are.
func (f Formatter) Currency(d decimal.Decimal) string {
	return f.label() + " " + d.StringFixed(2)
}

func (f Formatter) Int(n int) string {
	return strconv.Itoa(n)
}

func (f Formatter) ID(n int64) string {
	return strconv.FormatInt(n, 10)
}

// Day is the ISO date truncation of t in UTC, used as a grouping key.
// It ignores the formatter location.
func (f Formatter) Day(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// OptionalDay formats a nullable date; nil prints as an empty cell.
func (f Formatter) OptionalDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return f.Day(*t)
}

// Date prints a stored calendar date (a DATE column) without moving it
// into the formatter location; nil prints as an empty cell.
func (f Formatter) Date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// Timestamp is the sortable date-time used in movement rows.
func (f Formatter) Timestamp(t time.Time) string {
	return t.In(f.loc()).Format("2006-01-02 15:04:05")
}

// DateTime is the human-facing date-time printed on receipts.
func (f Formatter) DateTime(t time.Time) string {
	return t.In(f.loc()).Format(dateTimeLayout)
}

// ShortDate is the human-facing date printed on report headers.
func (f Formatter) ShortDate(t time.Time) string {
	return t.In(f.loc()).Format(shortDateLayout)
}

// Text returns s, or "" for nil.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
