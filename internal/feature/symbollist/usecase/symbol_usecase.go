// Package usecase implements the watchlist catalogue operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pricehistory/internal/feature/symbollist/domain"
	"pricehistory/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the catalogue store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	Create(ctx context.Context, s *entity.Symbol) error
}

// Seed is a catalogue entry supplied at startup.
type Seed struct {
	Code   string
	Name   string
	Market string
}

// SymbolUsecase provides catalogue operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols in display order.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ListActiveCodes returns the tickers of all active symbols in display order.
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveCodes(ctx)
}

// Register adds a symbol to the catalogue. The code is normalized to upper
// case; sortKey places it in the listing.
func (u *SymbolUsecase) Register(ctx context.Context, code, name, market string, sortKey int) (*entity.Symbol, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrInvalidSymbol
	}
	if name == "" {
		name = code
	}

	s := &entity.Symbol{
		Code:     code,
		Name:     name,
		Market:   market,
		IsActive: true,
		SortKey:  sortKey,
	}
	if err := u.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SeedSymbols registers seeds in order, skipping codes that already exist.
// It returns the number of newly created symbols.
func (u *SymbolUsecase) SeedSymbols(ctx context.Context, seeds []Seed) (int, error) {
	created := 0
	for i, s := range seeds {
		_, err := u.Register(ctx, s.Code, s.Name, s.Market, i+1)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrSymbolExists):
			slog.Debug("symbol already seeded", "code", s.Code)
		default:
			return created, fmt.Errorf("seed symbol %q: %w", s.Code, err)
		}
	}
	return created, nil
}
