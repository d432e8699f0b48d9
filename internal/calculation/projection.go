package calculation

import (
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/money"
	"github.com/shopspring/decimal"
)

// equityState tracks one originated mortgage inside a single projection.
type equityState struct {
	key       domain.EventID
	mortgage  domain.Mortgage
	schedule  Amortization
	homeValue decimal.Decimal
	remaining decimal.Decimal
}

func (s *equityState) equity() decimal.Decimal {
	return s.homeValue.Sub(s.remaining)
}

// simulation is the year-loop accumulator. It is built per query and never
// shared, so a Profile can be projected from many goroutines at once.
type simulation struct {
	profile  *domain.Profile
	growth   decimal.Decimal
	annotate bool

	liquid      decimal.Decimal
	income      decimal.Decimal
	savingsRate decimal.Decimal

	// mortgages keyed by position in profile.Events, kept in origination order.
	mortgages map[int]*equityState
	order     []int
}

func newSimulation(p *domain.Profile, returnRate decimal.Decimal, annotate bool) *simulation {
	return &simulation{
		profile:     p,
		growth:      money.GrowthFactor(returnRate),
		annotate:    annotate,
		liquid:      p.InitialSavings,
		income:      p.AnnualIncome,
		savingsRate: p.SavingsRate,
		mortgages:   make(map[int]*equityState),
	}
}

// step advances one year. The order is fixed: growth, overrides,
// contribution, events, home appreciation.
func (s *simulation) step(year int) []domain.EventAnnotation {
	var notes []domain.EventAnnotation

	// A non-positive balance is not grown.
	if s.liquid.IsPositive() {
		s.liquid = s.liquid.Mul(s.growth)
	}

	if s.profile.AdvancedMode {
		if adj, ok := s.profile.YearlyAdjustments[year]; ok {
			if adj.Income != nil {
				s.income = *adj.Income
				notes = s.note(notes, func() domain.EventAnnotation { return incomeAnnotation(*adj.Income) })
			}
			if adj.SavingsRate != nil {
				s.savingsRate = *adj.SavingsRate
				notes = s.note(notes, func() domain.EventAnnotation { return savingsAnnotation(*adj.SavingsRate) })
			}
		}
	}

	s.liquid = s.liquid.Add(s.income.Mul(money.Fraction(s.savingsRate)))

	if s.profile.AdvancedMode {
		for i, e := range s.profile.Events {
			if e.StartYear() <= 0 {
				continue
			}
			switch ev := e.(type) {
			case domain.OneTime:
				if ev.Year == year {
					s.liquid = s.liquid.Sub(ev.Amount)
					notes = s.note(notes, func() domain.EventAnnotation { return purchaseAnnotation(ev) })
				}
			case domain.Mortgage:
				notes = s.applyMortgage(i, ev, year, notes)
			}
		}
	}

	for _, i := range s.order {
		st := s.mortgages[i]
		st.homeValue = st.homeValue.Mul(s.growth)
	}
	return notes
}

func (s *simulation) applyMortgage(index int, m domain.Mortgage, year int, notes []domain.EventAnnotation) []domain.EventAnnotation {
	if m.Year == year {
		s.liquid = s.liquid.Sub(m.DownPayment)
		s.mortgages[index] = &equityState{
			key:       s.equityKey(m.ID, index),
			mortgage:  m,
			schedule:  NewAmortization(m.Principal(), m.InterestRate, m.MortgageTerm),
			homeValue: m.HouseCost,
			remaining: m.Principal(),
		}
		s.order = append(s.order, index)
		notes = s.note(notes, func() domain.EventAnnotation { return mortgageDownAnnotation(m) })
	}

	st, ok := s.mortgages[index]
	if !ok || !m.ActiveIn(year) || !st.schedule.Amortizes() {
		return notes
	}
	payment := st.schedule.AnnualPayment()
	s.liquid = s.liquid.Sub(payment)
	st.remaining = st.schedule.RemainingAfter((year - m.Year + 1) * 12)
	return s.note(notes, func() domain.EventAnnotation { return mortgagePaymentAnnotation(m, payment) })
}

// equityKey is the mortgage id, suffixed with the event position when an
// earlier mortgage in this projection already uses the id.
func (s *simulation) equityKey(id domain.EventID, index int) domain.EventID {
	for _, i := range s.order {
		if s.mortgages[i].key == id {
			return domain.EventID(fmt.Sprintf("%s#%d", id, index))
		}
	}
	return id
}

func (s *simulation) note(notes []domain.EventAnnotation, build func() domain.EventAnnotation) []domain.EventAnnotation {
	if !s.annotate {
		return notes
	}
	return append(notes, build())
}

func (s *simulation) totalEquity() decimal.Decimal {
	total := decimal.Zero
	for _, i := range s.order {
		total = total.Add(s.mortgages[i].equity())
	}
	return total
}

func (s *simulation) netWorth() decimal.Decimal {
	return s.liquid.Add(s.totalEquity())
}

func (s *simulation) record(year int, notes []domain.EventAnnotation) domain.YearRecord {
	equities := make(map[domain.EventID]domain.MortgageEquity, len(s.order))
	for _, i := range s.order {
		st := s.mortgages[i]
		equities[st.key] = domain.MortgageEquity{
			Description:        st.mortgage.Description,
			HomeValue:          money.RoundWhole(st.homeValue),
			RemainingPrincipal: money.RoundWhole(st.remaining),
			Equity:             money.RoundWhole(st.equity()),
		}
	}
	if notes == nil {
		notes = []domain.EventAnnotation{}
	}
	return domain.YearRecord{
		Year:             year,
		Balance:          money.RoundWhole(s.netWorth()),
		LiquidBalance:    money.RoundWhole(s.liquid),
		TotalEquity:      money.RoundWhole(s.totalEquity()),
		MortgageEquities: equities,
		Events:           notes,
	}
}

// ProjectBalance returns the net worth after years of growth, contributions
// and events, rounded to a whole currency unit. returnRate is in percent.
// years <= 0 returns the rounded initial savings.
func ProjectBalance(p *domain.Profile, years int, returnRate decimal.Decimal) decimal.Decimal {
	sim := newSimulation(p, returnRate, false)
	for year := 1; year <= years; year++ {
		sim.step(year)
	}
	return money.RoundWhole(sim.netWorth())
}

// maxPrealloc bounds the capacity reserved up front for a trajectory.
const maxPrealloc = 1024

// ProjectTrajectory returns years+1 records (years 0..years) with per-year
// annotations and the mortgage equity breakdown. MortgageEquities is keyed by
// event id; a repeated id is suffixed with "#<event position>" so the entries
// always sum to TotalEquity.
func ProjectTrajectory(p *domain.Profile, years int, returnRate decimal.Decimal) domain.Trajectory {
	if years < 0 {
		years = 0
	}
	sim := newSimulation(p, returnRate, true)
	out := make(domain.Trajectory, 0, min(years, maxPrealloc)+1)
	out = append(out, sim.record(0, nil))
	for year := 1; year <= years; year++ {
		notes := sim.step(year)
		out = append(out, sim.record(year, notes))
	}
	return out
}
