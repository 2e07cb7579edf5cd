package entity

import (
	"fmt"
	"strconv"
	"strings"

	"pricehistory/internal/feature/pricehistory/domain"
)

// WindowForm identifies which of the two mutually exclusive query shapes a
// RequestParams value selects.
type WindowForm int

const (
	// FormPeriod is "N periods of type T ending now".
	FormPeriod WindowForm = iota + 1
	// FormDateRange is an explicit [StartDate, EndDate] window.
	FormDateRange
)

func (f WindowForm) String() string {
	switch f {
	case FormPeriod:
		return "period"
	case FormDateRange:
		return "dateRange"
	default:
		return "unknown"
	}
}

// Defaults applied by WithDefaults.
const (
	DefaultFrequencyType = "minute"
	DefaultFrequency     = 1
	DefaultExtendedHours = true
)

var (
	validPeriodTypes    = []string{"day", "month", "year", "ytd"}
	validFrequencyTypes = []string{"minute", "daily", "weekly", "monthly"}
)

// RequestParams holds the window and frequency selection for one request.
// Exactly one of the period fields (PeriodType, Period) or the date fields
// (StartDate, EndDate) must be fully populated.
type RequestParams struct {
	PeriodType string // day, month, year or ytd
	Period     int    // number of periods
	StartDate  int64  // epoch milliseconds, 0 means unset
	EndDate    int64  // epoch milliseconds, 0 means unset

	FrequencyType string // minute, daily, weekly or monthly
	Frequency     int    // number of FrequencyType units per candle
	ExtendedHours *bool  // nil means DefaultExtendedHours
}

// WithDefaults returns a copy of p with unset frequency and extended-hours
// fields filled in.
func (p RequestParams) WithDefaults() RequestParams {
	if p.FrequencyType == "" {
		p.FrequencyType = DefaultFrequencyType
	}
	if p.Frequency == 0 {
		p.Frequency = DefaultFrequency
	}
	if p.ExtendedHours == nil {
		v := DefaultExtendedHours
		p.ExtendedHours = &v
	}
	return p
}

// NeedExtendedHours returns the extended-hours flag, falling back to the default.
func (p RequestParams) NeedExtendedHours() bool {
	if p.ExtendedHours == nil {
		return DefaultExtendedHours
	}
	return *p.ExtendedHours
}

// Validate reports which window form p selects.
// Every failure wraps domain.ErrBadParameters.
func (p RequestParams) Validate() (WindowForm, error) {
	anyPeriod := p.PeriodType != "" || p.Period != 0
	anyRange := p.StartDate != 0 || p.EndDate != 0

	if anyPeriod && anyRange {
		return 0, fmt.Errorf("%w: period and date range fields are mutually exclusive", domain.ErrBadParameters)
	}

	if p.FrequencyType != "" && !contains(validFrequencyTypes, p.FrequencyType) {
		return 0, fmt.Errorf("%w: frequencyType %q is not one of %s", domain.ErrBadParameters, p.FrequencyType, strings.Join(validFrequencyTypes, ", "))
	}
	if p.Frequency < 0 {
		return 0, fmt.Errorf("%w: frequency must be >= 1, got %d", domain.ErrBadParameters, p.Frequency)
	}

	switch {
	case p.PeriodType != "" && p.Period != 0:
		if !contains(validPeriodTypes, p.PeriodType) {
			return 0, fmt.Errorf("%w: periodType %q is not one of %s", domain.ErrBadParameters, p.PeriodType, strings.Join(validPeriodTypes, ", "))
		}
		if p.Period < 0 {
			return 0, fmt.Errorf("%w: period must be >= 1, got %d", domain.ErrBadParameters, p.Period)
		}
		return FormPeriod, nil
	case p.StartDate != 0 && p.EndDate != 0:
		if p.StartDate < 0 || p.EndDate < 0 {
			return 0, fmt.Errorf("%w: dates must be positive epoch milliseconds", domain.ErrBadParameters)
		}
		if p.StartDate > p.EndDate {
			return 0, fmt.Errorf("%w: startDate %d is after endDate %d", domain.ErrBadParameters, p.StartDate, p.EndDate)
		}
		return FormDateRange, nil
	default:
		return 0, fmt.Errorf("%w: either periodType and period, or startDate and endDate, must be set", domain.ErrBadParameters)
	}
}

// FormatFlag renders a boolean the way the API expects it: lowercase literal.
func FormatFlag(b bool) string {
	return strconv.FormatBool(b)
}

// ParseFlag normalizes the textual booleans callers tend to send.
func ParseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes", "y", "on":
		return true, nil
	case "false", "f", "0", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", domain.ErrBadParameters, s)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
