package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// TenorDays returns the number of whole days between the invoice date and the due date
func TenorDays(invoiceDate, dueDate time.Time) int {
	start := truncateDay(invoiceDate)
	end := truncateDay(dueDate)
	return int(end.Sub(start).Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, strings.TrimSpace(s), time.UTC)
}

// ParseOptionalDecimal returns nil for an empty string
func ParseOptionalDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// StringPtr returns nil for an empty string
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
