package entity

import "time"

// TimePolicy converts the API's epoch-millisecond timestamps into the
// time.Time stored on a Candle.
type TimePolicy interface {
	FromEpochMillis(ms int64) time.Time
}

// FixedOffset places every timestamp in a zone with a constant UTC offset.
// There is no timezone database lookup and no daylight-saving adjustment.
type FixedOffset struct {
	Name   string
	Offset time.Duration
}

// FromEpochMillis implements TimePolicy.
func (f FixedOffset) FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).In(time.FixedZone(f.Name, int(f.Offset/time.Second)))
}

// ExchangeTime approximates NYSE local time as UTC-5 all year round.
var ExchangeTime = FixedOffset{Name: "UTC-5", Offset: -5 * time.Hour}
