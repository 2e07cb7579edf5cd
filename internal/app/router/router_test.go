package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pricehistory/internal/feature/pricehistory/domain/entity"
	pricehistoryhandler "pricehistory/internal/feature/pricehistory/transport/handler"
	symbolentity "pricehistory/internal/feature/symbollist/domain/entity"
	symbollisthandler "pricehistory/internal/feature/symbollist/transport/handler"
	"pricehistory/internal/platform/http/middleware"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubHistory struct{}

func (stubHistory) LoadHistory(ctx context.Context, ticker string, params entity.RequestParams) (entity.CandleTable, error) {
	return entity.CandleTable{
		Columns: entity.RequiredColumns,
		Candles: []entity.Candle{{
			Open: 1, High: 2, Low: 0.5, Close: 1.5,
			Datetime: entity.ExchangeTime.FromEpochMillis(time.Date(2021, 1, 4, 14, 30, 0, 0, time.UTC).UnixMilli()),
		}},
	}, nil
}

type stubSymbols struct{}

func (stubSymbols) ListActiveSymbols(ctx context.Context) ([]symbolentity.Symbol, error) {
	return []symbolentity.Symbol{{Code: "TSLA", Name: "Tesla Inc", Market: "NASDAQ"}}, nil
}

func (stubSymbols) ListActiveCodes(ctx context.Context) ([]string, error) {
	return []string{"TSLA"}, nil
}

func (stubSymbols) Register(ctx context.Context, code, name, market string, sortKey int) (*symbolentity.Symbol, error) {
	return &symbolentity.Symbol{Code: code}, nil
}

func TestNewRouter_Routes(t *testing.T) {
	t.Parallel()

	r := NewRouter(Deps{
		PriceHistory: pricehistoryhandler.NewPriceHistoryHandler(stubHistory{}),
		Symbols:      symbollisthandler.NewSymbolHandler(stubSymbols{}),
	})

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/pricehistory/TSLA?periodType=day&period=10&frequencyType=minute&frequency=15", http.StatusOK},
		{http.MethodGet, "/pricehistory/TSLA/chart", http.StatusOK},
		{http.MethodGet, "/symbols", http.StatusOK},
		{http.MethodGet, "/symbols/codes", http.StatusOK},
		{http.MethodOptions, "/pricehistory/TSLA", http.StatusNoContent},
		{http.MethodGet, "/candles/TSLA", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestNewRouter_WithoutCatalogue(t *testing.T) {
	t.Parallel()

	r := NewRouter(Deps{PriceHistory: pricehistoryhandler.NewPriceHistoryHandler(stubHistory{})})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/symbols", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
