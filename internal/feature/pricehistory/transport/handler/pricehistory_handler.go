// Package handler はpricehistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pricehistory/internal/feature/pricehistory/domain"
	"pricehistory/internal/feature/pricehistory/domain/entity"
	"pricehistory/internal/feature/pricehistory/transport/http/dto"
	"pricehistory/internal/feature/pricehistory/usecase"
)

// PriceHistoryUsecase は株価履歴取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PriceHistoryUsecase interface {
	LoadHistory(ctx context.Context, ticker string, params entity.RequestParams) (entity.CandleTable, error)
}

// PriceHistoryHandler は株価履歴のHTTPリクエストを処理します。
type PriceHistoryHandler struct {
	uc PriceHistoryUsecase
}

// NewPriceHistoryHandler は指定されたusecaseでPriceHistoryHandlerの新しいインスタンスを生成します。
func NewPriceHistoryHandler(uc PriceHistoryUsecase) *PriceHistoryHandler {
	return &PriceHistoryHandler{uc: uc}
}

// GetPriceHistory は銘柄コードとウィンドウ指定を受け取り、株価履歴をJSONで返します。
//
// エンドポイント例:
// GET /pricehistory/TSLA?periodType=day&period=10&frequencyType=minute&frequency=15&needExtendedHoursData=false
func (h *PriceHistoryHandler) GetPriceHistory(c *gin.Context) {
	ticker := c.Param("ticker")
	table, ok := h.load(c, ticker)
	if !ok {
		return
	}

	// 全列をキーに持つ行へ変換
	rows := make([]map[string]any, 0, table.Len())
	for _, cd := range table.Candles {
		row := make(map[string]any, len(table.Columns))
		for _, col := range table.Columns {
			v, _ := cd.Value(col)
			if t, isTime := v.(time.Time); isTime {
				v = t.Format(time.RFC3339)
			}
			row[col] = v
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, dto.PriceHistoryResponse{
		Ticker:  ticker,
		Columns: table.Columns,
		Candles: rows,
	})
}

// GetChart はチャート描画用に日時・始値・高値・安値・終値の列を返します。
// テーブルに出来高列があれば volume も含めます。
//
// エンドポイント例:
// GET /pricehistory/TSLA/chart?periodType=day&period=10
func (h *PriceHistoryHandler) GetChart(c *gin.Context) {
	ticker := c.Param("ticker")
	table, ok := h.load(c, ticker)
	if !ok {
		return
	}

	s := usecase.ToChartSeries(table)
	datetimes := make([]string, 0, len(s.Datetime))
	for _, t := range s.Datetime {
		datetimes = append(datetimes, t.Format(time.RFC3339))
	}

	c.JSON(http.StatusOK, dto.ChartResponse{
		Ticker:   ticker,
		Datetime: datetimes,
		Open:     s.Open,
		High:     s.High,
		Low:      s.Low,
		Close:    s.Close,
		Volume:   s.Volume,
	})
}

// load はクエリをバインドしてユースケースを呼び出します。
// 失敗時はエラーレスポンスを書き込みfalseを返します。
func (h *PriceHistoryHandler) load(c *gin.Context, ticker string) (entity.CandleTable, bool) {
	var q dto.PriceHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return entity.CandleTable{}, false
	}
	params, err := q.ToParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return entity.CandleTable{}, false
	}

	table, err := h.uc.LoadHistory(c.Request.Context(), ticker, params)
	if err != nil {
		status, body := errorResponse(err)
		c.JSON(status, body)
		return entity.CandleTable{}, false
	}
	return table, true
}

// errorResponse はドメインエラーをHTTPステータスに対応付けます。
func errorResponse(err error) (int, dto.ErrorResponse) {
	body := dto.ErrorResponse{Error: err.Error()}

	var ne *domain.NetworkError
	switch {
	case errors.Is(err, domain.ErrBadParameters):
		return http.StatusBadRequest, body
	case errors.Is(err, domain.ErrEmptyResponse):
		return http.StatusNotFound, body
	case errors.As(err, &ne):
		return http.StatusGatewayTimeout, body
	}
	if code, ok := domain.StatusCode(err); ok {
		body.UpstreamStatus = code
	}
	return http.StatusBadGateway, body
}
