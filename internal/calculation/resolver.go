package calculation

import (
	"sort"
	"sync"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolveEffectiveValue returns the income or savings rate in effect for year:
// that year's override if set, else the nearest earlier override, else the
// profile's base value. Years below 1 always resolve to the base value.
func ResolveEffectiveValue(p *domain.Profile, year int, field domain.AdjustmentField) decimal.Decimal {
	for y := year; y >= 1; y-- {
		adj, ok := p.YearlyAdjustments[y]
		if !ok {
			continue
		}
		if v := adj.Value(field); v != nil {
			return *v
		}
	}
	return p.BaseValue(field)
}

type resolverKey struct {
	year  int
	field domain.AdjustmentField
}

// Resolver answers the same question as ResolveEffectiveValue using sorted
// override years and binary search, memoizing by (year, field). The profile
// must not be mutated while the Resolver is in use.
type Resolver struct {
	profile *domain.Profile
	years   map[domain.AdjustmentField][]int

	mu   sync.Mutex
	memo map[resolverKey]decimal.Decimal
}

// NewResolver indexes the profile's overrides.
func NewResolver(p *domain.Profile) *Resolver {
	r := &Resolver{
		profile: p,
		years:   make(map[domain.AdjustmentField][]int, 2),
		memo:    make(map[resolverKey]decimal.Decimal),
	}
	for _, y := range p.AdjustmentYears() {
		if y < 1 {
			continue
		}
		adj := p.YearlyAdjustments[y]
		for _, f := range []domain.AdjustmentField{domain.FieldIncome, domain.FieldSavingsRate} {
			if adj.Value(f) != nil {
				r.years[f] = append(r.years[f], y)
			}
		}
	}
	return r
}

// Value returns the effective value of field in year.
func (r *Resolver) Value(year int, field domain.AdjustmentField) decimal.Decimal {
	key := resolverKey{year: year, field: field}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.memo[key]; ok {
		return v
	}
	v := r.lookup(year, field)
	r.memo[key] = v
	return v
}

func (r *Resolver) lookup(year int, field domain.AdjustmentField) decimal.Decimal {
	keys := r.years[field]
	i := sort.Search(len(keys), func(i int) bool { return keys[i] > year }) - 1
	if i < 0 {
		return r.profile.BaseValue(field)
	}
	return *r.profile.YearlyAdjustments[keys[i]].Value(field)
}

// Contribution is the effective income × savings rate / 100 for year.
func (r *Resolver) Contribution(year int) decimal.Decimal {
	income := r.Value(year, domain.FieldIncome)
	rate := r.Value(year, domain.FieldSavingsRate)
	return income.Mul(rate).Div(decimal.NewFromInt(100))
}

// Overridden reports whether year sets field explicitly.
func (r *Resolver) Overridden(year int, field domain.AdjustmentField) bool {
	keys := r.years[field]
	i := sort.SearchInts(keys, year)
	return i < len(keys) && keys[i] == year
}
