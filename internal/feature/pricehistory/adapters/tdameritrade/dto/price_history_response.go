// Package dto defines the wire format of the TD Ameritrade price history API.
package dto

import "encoding/json"

// PriceHistoryResponse はpricehistoryエンドポイントのレスポンスボディです。
// candlesは1レコードずつ生のまま保持し、スキーマの判定は正規化処理に任せます。
type PriceHistoryResponse struct {
	Candles []json.RawMessage `json:"candles"` // ローソク足レコードの配列
	Symbol  string            `json:"symbol"`  // 銘柄コード
	Empty   bool              `json:"empty"`   // データが存在しない場合true
}
