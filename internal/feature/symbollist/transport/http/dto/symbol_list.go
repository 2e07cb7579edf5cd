// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem is one catalogue entry in the list response.
type SymbolItem struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"`
}

// SymbolCodes is the GET /symbols/codes response.
type SymbolCodes struct {
	Codes []string `json:"codes"`
}

// RegisterSymbolRequest is the body of POST /symbols.
type RegisterSymbolRequest struct {
	Code    string `json:"code" binding:"required,max=20"`
	Name    string `json:"name" binding:"max=255"`
	Market  string `json:"market" binding:"max=100"`
	SortKey int    `json:"sort_key" binding:"min=0"`
}
