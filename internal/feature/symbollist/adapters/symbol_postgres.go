// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"pricehistory/internal/feature/symbollist/domain"
	"pricehistory/internal/feature/symbollist/domain/entity"
	"pricehistory/internal/feature/symbollist/usecase"
)

// uniqueViolation は PostgreSQL の unique_violation エラーコードです。
const uniqueViolation = "23505"

// symbolPostgres はSymbolRepositoryインターフェースのgorm実装です。
type symbolPostgres struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolPostgres)(nil)

// NewSymbolRepository は指定されたDB接続でリポジトリを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolPostgres {
	return &symbolPostgres{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolPostgres) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes はsort_key順にアクティブな銘柄のコードのみを返します。
func (r *symbolPostgres) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Create は銘柄を登録します。コードが既に存在する場合は ErrSymbolExists を返します。
func (r *symbolPostgres) Create(ctx context.Context, s *entity.Symbol) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("code = ?", s.Code).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrSymbolExists
	}

	// 同時登録で事前チェックをすり抜けた場合は一意制約違反として届く
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSymbolExists
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
