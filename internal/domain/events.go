package domain

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// EventType discriminates the Event union on the wire.
type EventType string

const (
	EventOneTime  EventType = "one_time"
	EventMortgage EventType = "mortgage"
)

// EventID identifies an event. Older saved states used numeric ids, so both
// JSON strings and numbers are accepted.
type EventID string

func (id *EventID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = EventID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	*id = EventID(data)
	return nil
}

// Event is a discrete financial event. The set of implementations is closed:
// OneTime and Mortgage.
type Event interface {
	Kind() EventType
	EventKey() EventID
	StartYear() int
	isEvent()
}

// OneTime is a single balance deduction in Year.
type OneTime struct {
	ID          EventID         `yaml:"id" json:"id"`
	Year        int             `yaml:"year" json:"year"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Description string          `yaml:"description" json:"description"`
}

func (OneTime) Kind() EventType     { return EventOneTime }
func (e OneTime) EventKey() EventID { return e.ID }
func (e OneTime) StartYear() int    { return e.Year }
func (OneTime) isEvent()            {}

// Mortgage opens an amortizing loan in Year, active through Year+MortgageTerm-1.
// InterestRate is an annual percent.
type Mortgage struct {
	ID           EventID         `yaml:"id" json:"id"`
	Year         int             `yaml:"year" json:"year"`
	HouseCost    decimal.Decimal `yaml:"house_cost" json:"houseCost"`
	DownPayment  decimal.Decimal `yaml:"down_payment" json:"downPayment"`
	InterestRate decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
	MortgageTerm int             `yaml:"mortgage_term" json:"mortgageTerm"`
	Description  string          `yaml:"description" json:"description"`
}

func (Mortgage) Kind() EventType     { return EventMortgage }
func (e Mortgage) EventKey() EventID { return e.ID }
func (e Mortgage) StartYear() int    { return e.Year }
func (Mortgage) isEvent()            {}

// Principal is the financed amount.
func (e Mortgage) Principal() decimal.Decimal {
	return e.HouseCost.Sub(e.DownPayment)
}

// ActiveIn reports whether payments are due in year.
func (e Mortgage) ActiveIn(year int) bool {
	return e.Year <= year && year < e.Year+e.MortgageTerm
}

// EndYear is the last payment year.
func (e Mortgage) EndYear() int {
	return e.Year + e.MortgageTerm - 1
}

// EventList preserves event order; same-year events apply in list order.
type EventList []Event

// Find returns the event with the given id.
func (l EventList) Find(id EventID) (Event, bool) {
	for _, e := range l {
		if e.EventKey() == id {
			return e, true
		}
	}
	return nil, false
}

// Without returns a copy of the list with the event id removed.
func (l EventList) Without(id EventID) EventList {
	out := make(EventList, 0, len(l))
	for _, e := range l {
		if e.EventKey() != id {
			out = append(out, e)
		}
	}
	return out
}

type eventEnvelope struct {
	Type EventType `yaml:"type" json:"type"`
}

type oneTimeWire struct {
	Type    EventType `yaml:"type" json:"type"`
	OneTime `yaml:",inline"`
}

type mortgageWire struct {
	Type     EventType `yaml:"type" json:"type"`
	Mortgage `yaml:",inline"`
}

func wireEvent(e Event) (any, error) {
	switch ev := e.(type) {
	case OneTime:
		return oneTimeWire{Type: EventOneTime, OneTime: ev}, nil
	case Mortgage:
		return mortgageWire{Type: EventMortgage, Mortgage: ev}, nil
	default:
		return nil, fmt.Errorf("unsupported event %T", e)
	}
}

func (l EventList) wire() ([]any, error) {
	out := make([]any, 0, len(l))
	for _, e := range l {
		w, err := wireEvent(e)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// normalizeEventType maps the wire discriminator to an EventType. Entries
// saved before mortgages existed carry no type and are one-time purchases.
func normalizeEventType(t EventType) EventType {
	s := strings.ToLower(strings.TrimSpace(string(t)))
	switch s {
	case "", "one_time", "onetime", "purchase":
		return EventOneTime
	}
	return EventType(s)
}

func (l EventList) MarshalJSON() ([]byte, error) {
	w, err := l.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func (l *EventList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	events := make(EventList, 0, len(raw))
	for i, r := range raw {
		var env eventEnvelope
		if err := json.Unmarshal(r, &env); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		switch normalizeEventType(env.Type) {
		case EventOneTime:
			var e OneTime
			if err := json.Unmarshal(r, &e); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			events = append(events, e)
		case EventMortgage:
			var e Mortgage
			if err := json.Unmarshal(r, &e); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			events = append(events, e)
		default:
			return fmt.Errorf("event %d: unknown event type %q", i, env.Type)
		}
	}
	*l = events
	return nil
}

func (l EventList) MarshalYAML() (interface{}, error) {
	return l.wire()
}

func (l *EventList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: events must be a list", value.Line)
	}
	if len(value.Content) == 0 {
		*l = nil
		return nil
	}
	events := make(EventList, 0, len(value.Content))
	for i, n := range value.Content {
		var env eventEnvelope
		if err := n.Decode(&env); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		switch normalizeEventType(env.Type) {
		case EventOneTime:
			var e OneTime
			if err := n.Decode(&e); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			events = append(events, e)
		case EventMortgage:
			var e Mortgage
			if err := n.Decode(&e); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			events = append(events, e)
		default:
			return fmt.Errorf("event %d: unknown event type %q", i, env.Type)
		}
	}
	*l = events
	return nil
}

func eventsEqual(a, b Event) bool {
	switch x := a.(type) {
	case OneTime:
		y, ok := b.(OneTime)
		return ok && x.ID == y.ID && x.Year == y.Year && x.Amount.Equal(y.Amount) && x.Description == y.Description
	case Mortgage:
		y, ok := b.(Mortgage)
		return ok && x.ID == y.ID && x.Year == y.Year && x.HouseCost.Equal(y.HouseCost) &&
			x.DownPayment.Equal(y.DownPayment) && x.InterestRate.Equal(y.InterestRate) &&
			x.MortgageTerm == y.MortgageTerm && x.Description == y.Description
	}
	return false
}
