package tdameritrade

import (
	"bytes"
	"encoding/json"
	"fmt"

	"pricehistory/internal/feature/pricehistory/domain"
	"pricehistory/internal/feature/pricehistory/domain/entity"
)

// ExtractCandles flattens the raw "candles" records into a CandleTable.
//
// The schema is taken from the first record, keys in wire order. Every other
// record must carry exactly the same key set; a record that differs is
// reported as domain.ErrSchemaMismatch instead of producing a ragged row.
// Rows keep input order. An empty input is domain.ErrEmptyResponse.
// A nil policy means entity.ExchangeTime.
func ExtractCandles(records []json.RawMessage, policy entity.TimePolicy) (entity.CandleTable, error) {
	if len(records) == 0 {
		return entity.CandleTable{}, domain.ErrEmptyResponse
	}
	if policy == nil {
		policy = entity.ExchangeTime
	}

	columns, first, err := decodeRecord(records[0])
	if err != nil {
		return entity.CandleTable{}, fmt.Errorf("record 0: %w", err)
	}
	for _, col := range entity.RequiredColumns {
		if _, ok := first[col]; !ok {
			return entity.CandleTable{}, fmt.Errorf("%w: record 0 has no %q column", domain.ErrSchemaMismatch, col)
		}
	}

	candles := make([]entity.Candle, 0, len(records))
	for i, raw := range records {
		fields := first
		if i > 0 {
			var keys []string
			keys, fields, err = decodeRecord(raw)
			if err != nil {
				return entity.CandleTable{}, fmt.Errorf("record %d: %w", i, err)
			}
			if !sameKeys(columns, keys) {
				return entity.CandleTable{}, fmt.Errorf("%w: record %d has columns %v, want %v", domain.ErrSchemaMismatch, i, keys, columns)
			}
		}

		c, err := toCandle(fields, policy)
		if err != nil {
			return entity.CandleTable{}, fmt.Errorf("record %d: %w", i, err)
		}
		candles = append(candles, c)
	}

	return entity.CandleTable{Columns: columns, Candles: candles}, nil
}

// toCandle converts one decoded record into a Candle.
func toCandle(fields map[string]json.RawMessage, policy entity.TimePolicy) (entity.Candle, error) {
	var c entity.Candle
	var err error

	// 価格列をパース
	if c.Open, err = priceField(fields, entity.ColumnOpen); err != nil {
		return c, err
	}
	if c.High, err = priceField(fields, entity.ColumnHigh); err != nil {
		return c, err
	}
	if c.Low, err = priceField(fields, entity.ColumnLow); err != nil {
		return c, err
	}
	if c.Close, err = priceField(fields, entity.ColumnClose); err != nil {
		return c, err
	}

	// エポックミリ秒を固定オフセットの時刻に変換
	n, err := numberField(fields, entity.ColumnDatetime)
	if err != nil {
		return c, err
	}
	ms, err := n.Int64()
	if err != nil {
		return c, fmt.Errorf("%w: datetime %q is not integer epoch milliseconds", domain.ErrSchemaMismatch, n)
	}
	c.Datetime = policy.FromEpochMillis(ms)

	// 残りの列はそのまま保持
	for k, v := range fields {
		if isCoreColumn(k) {
			continue
		}
		val, err := decodeOpaque(v)
		if err != nil {
			return c, fmt.Errorf("%w: column %q: %v", domain.ErrMalformedResponse, k, err)
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any, len(fields)-len(entity.RequiredColumns))
		}
		c.Extra[k] = val
	}
	return c, nil
}

func priceField(fields map[string]json.RawMessage, col string) (float64, error) {
	n, err := numberField(fields, col)
	if err != nil {
		return 0, err
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s %q: %v", domain.ErrSchemaMismatch, col, n, err)
	}
	return f, nil
}

// numberField returns the raw JSON number stored under col.
// Strings, nulls and other non-number tokens are rejected.
func numberField(fields map[string]json.RawMessage, col string) (json.Number, error) {
	raw := bytes.TrimSpace(fields[col])
	if len(raw) == 0 || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return "", fmt.Errorf("%w: %s is not a number: %s", domain.ErrSchemaMismatch, col, raw)
	}
	return json.Number(raw), nil
}

// decodeRecord decodes one JSON object, returning its keys in wire order.
func decodeRecord(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("%w: record is not an object", domain.ErrMalformedResponse)
	}

	var keys []string
	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unexpected token %v", domain.ErrMalformedResponse, tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("%w: value of %q: %v", domain.ErrMalformedResponse, key, err)
		}
		if _, dup := fields[key]; !dup {
			keys = append(keys, key)
		}
		fields[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return keys, fields, nil
}

func decodeOpaque(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func sameKeys(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	set := make(map[string]struct{}, len(want))
	for _, k := range want {
		set[k] = struct{}{}
	}
	for _, k := range got {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}

func isCoreColumn(col string) bool {
	for _, c := range entity.RequiredColumns {
		if c == col {
			return true
		}
	}
	return false
}
