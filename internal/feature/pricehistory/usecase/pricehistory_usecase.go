// Package usecase は株価履歴取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pricehistory/internal/feature/pricehistory/domain"
	"pricehistory/internal/feature/pricehistory/domain/entity"
)

// MarketRepository は外部APIから株価履歴を取得するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	LoadHistory(ctx context.Context, ticker string, params entity.RequestParams) (entity.CandleTable, error)
}

// ChartSeries はチャート描画側に渡す列指向のデータです。
type ChartSeries struct {
	Datetime []time.Time
	Open     []float64
	High     []float64
	Low      []float64
	Close    []float64
	// Volume は出来高列を持つテーブルのときだけ埋まります。
	Volume   []float64
}

// PriceHistoryUsecase は株価履歴取得のユースケースを定義します。
type PriceHistoryUsecase struct {
	market MarketRepository
}

// NewPriceHistoryUsecase はPriceHistoryUsecaseの新しいインスタンスを生成します。
func NewPriceHistoryUsecase(market MarketRepository) *PriceHistoryUsecase {
	return &PriceHistoryUsecase{market: market}
}

// LoadHistory は指定された銘柄の株価履歴を取得します。
// パラメータの検証に失敗した場合はリポジトリを呼び出さずにエラーを返します。
func (u *PriceHistoryUsecase) LoadHistory(ctx context.Context, ticker string, params entity.RequestParams) (entity.CandleTable, error) {
	if strings.TrimSpace(ticker) == "" {
		return entity.CandleTable{}, fmt.Errorf("%w: ticker is required", domain.ErrBadParameters)
	}
	params = params.WithDefaults()
	form, err := params.Validate()
	if err != nil {
		return entity.CandleTable{}, err
	}

	start := time.Now()
	table, err := u.market.LoadHistory(ctx, ticker, params)
	if err != nil {
		attrs := []any{"ticker", ticker, "form", form.String(), "error", err}
		if code, ok := domain.StatusCode(err); ok {
			attrs = append(attrs, "status", code)
		}
		if errors.Is(err, domain.ErrEmptyResponse) {
			slog.Info("price history is empty", attrs...)
		} else {
			slog.Error("failed to load price history", attrs...)
		}
		return entity.CandleTable{}, err
	}

	slog.Info("price history loaded",
		"ticker", ticker,
		"form", form.String(),
		"rows", table.Len(),
		"elapsed", time.Since(start),
	)
	return table, nil
}

// ToChartSeries はCandleTableからチャート用の列（日時・始値・高値・安値・終値）を取り出します。
func ToChartSeries(table entity.CandleTable) ChartSeries {
	n := table.Len()
	s := ChartSeries{
		Datetime: make([]time.Time, 0, n),
		Open:     make([]float64, 0, n),
		High:     make([]float64, 0, n),
		Low:      make([]float64, 0, n),
		Close:    make([]float64, 0, n),
	}
	for _, c := range table.Candles {
		s.Datetime = append(s.Datetime, c.Datetime)
		s.Open = append(s.Open, c.Open)
		s.High = append(s.High, c.High)
		s.Low = append(s.Low, c.Low)
		s.Close = append(s.Close, c.Close)
	}
	if table.HasColumn(entity.ColumnVolume) {
		s.Volume = make([]float64, 0, n)
		for _, c := range table.Candles {
			s.Volume = append(s.Volume, volumeOf(c))
		}
	}
	return s
}

// volumeOf は出来高を数値として取り出します。解釈できない値は0になります。
func volumeOf(c entity.Candle) float64 {
	v, _ := c.Value(entity.ColumnVolume)
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
