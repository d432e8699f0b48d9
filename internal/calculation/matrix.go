package calculation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	json "github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMatrixWorkers   = 8
	defaultMatrixCacheSize = 4096
)

type cellKey struct {
	fingerprint string
	years       int
	rate        string
}

// BalanceCache memoizes terminal balances across matrix requests. Entries are
// keyed by a content fingerprint of the profile, so edits never hit stale cells.
type BalanceCache struct {
	cache *lru.Cache[cellKey, decimal.Decimal]
}

// NewBalanceCache creates a cache holding up to size cells; size <= 0 uses the default.
func NewBalanceCache(size int) (*BalanceCache, error) {
	if size <= 0 {
		size = defaultMatrixCacheSize
	}
	c, err := lru.New[cellKey, decimal.Decimal](size)
	if err != nil {
		return nil, fmt.Errorf("create balance cache: %w", err)
	}
	return &BalanceCache{cache: c}, nil
}

// Len returns the number of cached cells.
func (bc *BalanceCache) Len() int {
	return bc.cache.Len()
}

// Purge drops every cached cell.
func (bc *BalanceCache) Purge() {
	bc.cache.Purge()
}

// Fingerprint hashes the canonical JSON encoding of a profile.
func Fingerprint(p *domain.Profile) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("fingerprint profile: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// MatrixRequest describes a rate × horizon grid.
type MatrixRequest struct {
	Profile     *domain.Profile
	YearOptions []int
	ReturnRates []decimal.Decimal
	Thresholds  domain.ColorThresholds
}

// ProjectionMatrix computes ProjectBalance for every (rate, years) pair.
// Cells are independent and computed concurrently; rows follow ReturnRates and
// columns follow YearOptions.
func (ce *CalculationEngine) ProjectionMatrix(ctx context.Context, req MatrixRequest) (*domain.ProjectionMatrix, error) {
	if req.Profile == nil {
		return nil, fmt.Errorf("matrix: profile is required")
	}
	var fp string
	if ce.Cache != nil {
		var err error
		if fp, err = Fingerprint(req.Profile); err != nil {
			return nil, err
		}
	}

	cells := make([][]domain.MatrixCell, len(req.ReturnRates))
	for i := range cells {
		cells[i] = make([]domain.MatrixCell, len(req.YearOptions))
	}

	workers := ce.Workers
	if workers <= 0 {
		workers = defaultMatrixWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for ri, rate := range req.ReturnRates {
		for yi, years := range req.YearOptions {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				balance := ce.cachedBalance(fp, req.Profile, years, rate)
				cells[ri][yi] = domain.MatrixCell{
					Years:      years,
					ReturnRate: rate,
					Balance:    balance,
					Tier:       req.Thresholds.Classify(balance),
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("matrix: %w", err)
	}

	ce.Logger.Debugf("matrix computed: %d rates x %d horizons", len(req.ReturnRates), len(req.YearOptions))
	return &domain.ProjectionMatrix{
		YearOptions: append([]int(nil), req.YearOptions...),
		ReturnRates: append([]decimal.Decimal(nil), req.ReturnRates...),
		Cells:       cells,
	}, nil
}

func (ce *CalculationEngine) cachedBalance(fp string, p *domain.Profile, years int, rate decimal.Decimal) decimal.Decimal {
	if ce.Cache == nil {
		return ProjectBalance(p, years, rate)
	}
	key := cellKey{fingerprint: fp, years: years, rate: rate.String()}
	if v, ok := ce.Cache.cache.Get(key); ok {
		return v
	}
	v := ProjectBalance(p, years, rate)
	ce.Cache.cache.Add(key, v)
	return v
}
