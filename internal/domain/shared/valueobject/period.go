package valueobject

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/utilityboard/backend/internal/domain/shared"
)

// Period identifies one billing cycle for a consumer: a (month, year) pair.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewPeriod creates a validated billing period
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, shared.NewValidationError("month must be between 1 and 12, got %d", month)
	}
	if year < 1900 || year > 3000 {
		return Period{}, shared.NewValidationError("year %d is out of range", year)
	}
	return Period{Month: month, Year: year}, nil
}

// ParsePeriod accepts a numeric month ("1".."12") or an English month name
// ("Jan", "January", case-insensitive) together with a year.
func ParsePeriod(month string, year int) (Period, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return Period{}, shared.NewValidationError("month is required")
	}
	if n, err := strconv.Atoi(month); err == nil {
		return NewPeriod(n, year)
	}
	if n, ok := monthByName[strings.ToLower(month)]; ok {
		return NewPeriod(n, year)
	}
	return Period{}, shared.NewValidationError("unrecognized month %q", month)
}

var monthByName = func() map[string]int {
	m := make(map[string]int, 24)
	for i := time.January; i <= time.December; i++ {
		m[strings.ToLower(i.String())] = int(i)
		m[strings.ToLower(i.String()[:3])] = int(i)
	}
	return m
}()

// String renders the period as "Jan 2024"
func (p Period) String() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month).String()[:3], p.Year)
}

// IsZero reports whether the period is unset
func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

// Equal reports whether two periods identify the same billing cycle
func (p Period) Equal(other Period) bool {
	return p.Month == other.Month && p.Year == other.Year
}
