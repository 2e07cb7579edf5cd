// Package dto defines data transfer objects for the pricehistory HTTP API.
package dto

import (
	"pricehistory/internal/feature/pricehistory/domain/entity"
)

// PriceHistoryQuery はGET /pricehistory/:tickerのクエリパラメータです。
// 値の範囲はginのバインディング（validator）で検証し、
// 形式の組み合わせはentity.RequestParams.Validateで検証します。
type PriceHistoryQuery struct {
	PeriodType            string `form:"periodType" binding:"omitempty,oneof=day month year ytd"`
	Period                int    `form:"period" binding:"omitempty,min=1"`
	FrequencyType         string `form:"frequencyType" binding:"omitempty,oneof=minute daily weekly monthly"`
	Frequency             int    `form:"frequency" binding:"omitempty,min=1"`
	StartDate             int64  `form:"startDate" binding:"omitempty,min=1"`
	EndDate               int64  `form:"endDate" binding:"omitempty,min=1"`
	NeedExtendedHoursData string `form:"needExtendedHoursData"`
}

// ToParams はクエリをドメインのRequestParamsに変換します。
func (q PriceHistoryQuery) ToParams() (entity.RequestParams, error) {
	p := entity.RequestParams{
		PeriodType:    q.PeriodType,
		Period:        q.Period,
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
		FrequencyType: q.FrequencyType,
		Frequency:     q.Frequency,
	}
	if q.NeedExtendedHoursData != "" {
		v, err := entity.ParseFlag(q.NeedExtendedHoursData)
		if err != nil {
			return entity.RequestParams{}, err
		}
		p.ExtendedHours = &v
	}
	return p, nil
}

// PriceHistoryResponse は株価履歴のレスポンスDTOです。
// candlesの各要素はcolumnsの全列をキーに持ちます。
type PriceHistoryResponse struct {
	Ticker  string           `json:"ticker"`
	Columns []string         `json:"columns"`
	Candles []map[string]any `json:"candles"`
}

// ChartResponse はチャート描画用の列指向レスポンスDTOです。
type ChartResponse struct {
	Ticker   string    `json:"ticker"`
	Datetime []string  `json:"datetime"`
	Open     []float64 `json:"open"`
	High     []float64 `json:"high"`
	Low      []float64 `json:"low"`
	Close    []float64 `json:"close"`
	Volume   []float64 `json:"volume,omitempty"`
}

// ErrorResponse はエラーレスポンスDTOです。
type ErrorResponse struct {
	Error          string `json:"error"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}
