// Package entity defines the domain models for the pricehistory feature.
package entity

import "time"

// Column names every price history record must carry.
const (
	ColumnOpen     = "open"
	ColumnHigh     = "high"
	ColumnLow      = "low"
	ColumnClose    = "close"
	ColumnDatetime = "datetime"
	ColumnVolume   = "volume"
)

// RequiredColumns lists the columns the normalizer refuses to work without.
var RequiredColumns = []string{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnDatetime}

// Candle represents one OHLC price record for a fixed time bucket.
type Candle struct {
	Open     float64   // Opening price
	High     float64   // Highest price during this period
	Low      float64   // Lowest price during this period
	Close    float64   // Closing price
	Datetime time.Time // Bucket time, already shifted by the TimePolicy

	// Extra holds volume and any other field the API returned, untouched.
	// Numbers are kept as json.Number.
	Extra map[string]any
}

// Value returns the value of the named column for this candle.
func (c Candle) Value(column string) (any, bool) {
	switch column {
	case ColumnOpen:
		return c.Open, true
	case ColumnHigh:
		return c.High, true
	case ColumnLow:
		return c.Low, true
	case ColumnClose:
		return c.Close, true
	case ColumnDatetime:
		return c.Datetime, true
	}
	v, ok := c.Extra[column]
	return v, ok
}

// CandleTable is an ordered set of candles sharing one schema.
// Columns follow the key order of the first record; Candles keep the order
// the API returned them in.
type CandleTable struct {
	Columns []string
	Candles []Candle
}

// Len returns the number of rows.
func (t CandleTable) Len() int {
	return len(t.Candles)
}

// HasColumn reports whether the table schema contains column.
func (t CandleTable) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}
