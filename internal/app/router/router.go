// Package router wires HTTP handlers and middleware into a gin engine.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	pricehistoryhandler "pricehistory/internal/feature/pricehistory/transport/handler"
	symbollisthandler "pricehistory/internal/feature/symbollist/transport/handler"
	"pricehistory/internal/platform/http/handler"
	"pricehistory/internal/platform/http/middleware"
)

// Deps are the handlers served by the router. Symbols and Ready may be nil
// when no database is configured.
type Deps struct {
	PriceHistory *pricehistoryhandler.PriceHistoryHandler
	Symbols      *symbollisthandler.SymbolHandler
	Ready        map[string]handler.Check
	Logger       *slog.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(d.Logger), middleware.CORS())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(d.Ready))

	// 株価履歴
	r.GET("/pricehistory/:ticker", d.PriceHistory.GetPriceHistory)
	r.GET("/pricehistory/:ticker/chart", d.PriceHistory.GetChart)

	// 銘柄カタログ（DB設定時のみ）
	if d.Symbols != nil {
		r.GET("/symbols", d.Symbols.List)
		r.GET("/symbols/codes", d.Symbols.Codes)
		r.POST("/symbols", d.Symbols.Register)
	}

	return r
}
