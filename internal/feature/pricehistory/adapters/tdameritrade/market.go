package tdameritrade

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"pricehistory/internal/feature/pricehistory/adapters/tdameritrade/dto"
	"pricehistory/internal/feature/pricehistory/domain"
	"pricehistory/internal/feature/pricehistory/domain/entity"
	"pricehistory/internal/feature/pricehistory/usecase"
)

// Market はTD Ameritrade APIから株価履歴を取得するMarketRepository実装です。
// 1回の呼び出しにつきGETリクエストは1回のみで、リトライは行いません。
type Market struct {
	cfg    Config
	client *http.Client
	policy entity.TimePolicy
}

// MarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*Market)(nil)

// NewMarket は指定された設定とHTTPクライアントでMarketの新しいインスタンスを生成します。
// タイムスタンプはentity.ExchangeTime（UTC-5固定）で変換されます。
func NewMarket(cfg Config, client *http.Client) *Market {
	return &Market{cfg: cfg, client: client, policy: entity.ExchangeTime}
}

// WithTimePolicy はタイムスタンプ変換ポリシーを差し替えたコピーを返します。
func (m *Market) WithTimePolicy(p entity.TimePolicy) *Market {
	cp := *m
	cp.policy = p
	return &cp
}

// LoadHistory は指定銘柄の株価履歴を取得し、CandleTableとして返します。
//
// 200以外のステータスは*domain.StatusErrorとしてそのまま返し、ボディは解析しません。
// パラメータが不正な場合はネットワーク呼び出しを行わずdomain.ErrBadParametersを返します。
func (m *Market) LoadHistory(ctx context.Context, ticker string, params entity.RequestParams) (entity.CandleTable, error) {
	if strings.TrimSpace(ticker) == "" {
		return entity.CandleTable{}, fmt.Errorf("%w: ticker is required", domain.ErrBadParameters)
	}

	params = params.WithDefaults()
	form, err := params.Validate()
	if err != nil {
		return entity.CandleTable{}, err
	}

	// URLを生成
	u := fmt.Sprintf("%s/%s/pricehistory?%s",
		strings.TrimRight(m.cfg.BaseURL, "/"),
		url.PathEscape(ticker),
		BuildQuery(m.cfg.APIKey, params, form),
	)

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.CandleTable{}, fmt.Errorf("%w: build request: %v", domain.ErrBadParameters, err)
	}
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	res, err := m.client.Do(req)
	if err != nil {
		return entity.CandleTable{}, &domain.NetworkError{Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return entity.CandleTable{}, &domain.StatusError{StatusCode: res.StatusCode}
	}

	// JSONレスポンスをDTOにデコード
	var body dto.PriceHistoryResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.CandleTable{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if body.Candles == nil {
		return entity.CandleTable{}, fmt.Errorf("%w: no candles key", domain.ErrMalformedResponse)
	}

	return ExtractCandles(body.Candles, m.policy)
}
