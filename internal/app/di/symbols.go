package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	symboladapters "pricehistory/internal/feature/symbollist/adapters"
	"pricehistory/internal/feature/symbollist/usecase"
	"pricehistory/internal/platform/cache"
	"pricehistory/internal/platform/config"
)

// NewSymbolRepository creates the catalogue repository.
// If Redis is available, the gorm repository is wrapped in a read-through cache.
func NewSymbolRepository(db *gorm.DB, rdb *redis.Client, rc config.RedisConfig) usecase.SymbolRepository {
	repo := symboladapters.NewSymbolRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingSymbolRepository(rdb, rc.TTL, repo, "symbols")
}

// Seeds converts configured symbols into usecase seeds.
func Seeds(in []config.SymbolSeed) []usecase.Seed {
	out := make([]usecase.Seed, 0, len(in))
	for _, s := range in {
		out = append(out, usecase.Seed{Code: s.Code, Name: s.Name, Market: s.Market})
	}
	return out
}
