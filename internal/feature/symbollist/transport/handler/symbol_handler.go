package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pricehistory/internal/feature/symbollist/domain"
	"pricehistory/internal/feature/symbollist/domain/entity"
	"pricehistory/internal/feature/symbollist/transport/http/dto"
)

// SymbolUsecase は銘柄カタログのユースケースのインターフェースです。
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	Register(ctx context.Context, code, name, market string, sortKey int) (*entity.Symbol, error)
}

// SymbolHandler は銘柄カタログに関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は有効な銘柄の一覧を返します。失敗時は500を返します。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, toItem(s))
	}
	c.JSON(http.StatusOK, out)
}

// Codes は株価履歴を取得できるティッカーの一覧を表示順で返します。
func (h *SymbolHandler) Codes(c *gin.Context) {
	codes, err := h.uc.ListActiveCodes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if codes == nil {
		codes = []string{}
	}
	c.JSON(http.StatusOK, dto.SymbolCodes{Codes: codes})
}

// Register は銘柄をカタログに追加します。
// 既に存在するコードは409、入力不備は400を返します。
func (h *SymbolHandler) Register(c *gin.Context) {
	var req dto.RegisterSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.uc.Register(c.Request.Context(), req.Code, req.Name, req.Market, req.SortKey)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, toItem(*s))
	case errors.Is(err, domain.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSymbolExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func toItem(s entity.Symbol) dto.SymbolItem {
	return dto.SymbolItem{Code: s.Code, Name: s.Name, Market: s.Market}
}
