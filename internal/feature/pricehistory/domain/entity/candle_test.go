package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExchangeTime_Epoch(t *testing.T) {
	t.Parallel()

	got := ExchangeTime.FromEpochMillis(0)

	assert.Equal(t, "1969-12-31T19:00:00", got.Format("2006-01-02T15:04:05"))
	_, offset := got.Zone()
	assert.Equal(t, -5*60*60, offset)
	assert.True(t, got.Equal(time.Unix(0, 0)), "instant must not move, only the wall clock")
}

// TestExchangeTime_NoDaylightSaving は夏時間期間でもオフセットが変わらないことを検証します。
func TestExchangeTime_NoDaylightSaving(t *testing.T) {
	t.Parallel()

	// 2021-07-01T14:30:00Z, when New York is on EDT (UTC-4).
	summer := time.Date(2021, 7, 1, 14, 30, 0, 0, time.UTC).UnixMilli()

	got := ExchangeTime.FromEpochMillis(summer)

	assert.Equal(t, "2021-07-01T09:30:00", got.Format("2006-01-02T15:04:05"))
}

func TestFixedOffset_Custom(t *testing.T) {
	t.Parallel()

	tokyo := FixedOffset{Name: "UTC+9", Offset: 9 * time.Hour}

	got := tokyo.FromEpochMillis(0)

	assert.Equal(t, "1970-01-01T09:00:00", got.Format("2006-01-02T15:04:05"))
}

func TestCandle_Value(t *testing.T) {
	t.Parallel()

	ts := time.Date(2021, 1, 4, 9, 30, 0, 0, time.UTC)
	c := Candle{
		Open: 1, High: 2, Low: 0.5, Close: 1.5, Datetime: ts,
		Extra: map[string]any{"volume": json.Number("1200")},
	}

	tests := []struct {
		column string
		want   any
		ok     bool
	}{
		{"open", 1.0, true},
		{"high", 2.0, true},
		{"low", 0.5, true},
		{"close", 1.5, true},
		{"datetime", ts, true},
		{"volume", json.Number("1200"), true},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		got, ok := c.Value(tt.column)
		assert.Equal(t, tt.ok, ok, tt.column)
		assert.Equal(t, tt.want, got, tt.column)
	}
}

func TestCandleTable_LenAndHasColumn(t *testing.T) {
	t.Parallel()

	table := CandleTable{
		Columns: []string{"open", "high", "low", "close", "volume", "datetime"},
		Candles: make([]Candle, 3),
	}

	assert.Equal(t, 3, table.Len())
	assert.True(t, table.HasColumn("volume"))
	assert.False(t, table.HasColumn("vwap"))
	assert.Equal(t, 0, CandleTable{}.Len())
}
