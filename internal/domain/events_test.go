package domain

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleProfile() *Profile {
	rate := decimal.NewFromInt(30)
	income := decimal.NewFromInt(120000)
	return &Profile{
		AnnualIncome:   decimal.NewFromInt(100000),
		InitialSavings: decimal.NewFromInt(10000),
		SavingsRate:    decimal.NewFromInt(20),
		AdvancedMode:   true,
		YearlyAdjustments: map[int]Adjustment{
			3: {SavingsRate: &rate},
			5: {Income: &income},
		},
		Events: EventList{
			OneTime{ID: "1", Year: 2, Amount: decimal.NewFromInt(25000), Description: "Car"},
			Mortgage{
				ID:           "2",
				Year:         4,
				HouseCost:    decimal.NewFromInt(400000),
				DownPayment:  decimal.NewFromInt(80000),
				InterestRate: decimal.NewFromFloat(6.5),
				MortgageTerm: 30,
				Description:  "House",
			},
		},
	}
}

func TestProfile_JSONRoundTrip(t *testing.T) {
	p := sampleProfile()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"mortgage"`)
	assert.Contains(t, string(data), `"type":"one_time"`)
	assert.Contains(t, string(data), `"houseCost"`)

	var back Profile
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, p.Equal(&back))
}

func TestProfile_YAMLRoundTrip(t *testing.T) {
	p := sampleProfile()
	data, err := yaml.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: mortgage")
	assert.Contains(t, string(data), "house_cost")

	var back Profile
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.True(t, p.Equal(&back))
}

func TestEventList_UnmarshalJSONLegacyEntries(t *testing.T) {
	data := []byte(`[
		{"id": 1700000000000, "year": 3, "amount": 15000, "description": "Wedding"},
		{"id": "m", "type": "Mortgage", "year": 5, "houseCost": "300000", "downPayment": 60000, "interestRate": 6, "mortgageTerm": 30},
		{"id": "x", "type": "purchase", "year": 1, "amount": 10}
	]`)
	var l EventList
	require.NoError(t, json.Unmarshal(data, &l))
	require.Len(t, l, 3)

	ot, ok := l[0].(OneTime)
	require.True(t, ok)
	assert.Equal(t, EventID("1700000000000"), ot.ID)
	assert.True(t, ot.Amount.Equal(decimal.NewFromInt(15000)))

	m, ok := l[1].(Mortgage)
	require.True(t, ok)
	assert.True(t, m.Principal().Equal(decimal.NewFromInt(240000)))
	assert.Equal(t, 34, m.EndYear())

	assert.Equal(t, EventOneTime, l[2].Kind())
}

func TestEventList_UnknownTypeFails(t *testing.T) {
	var l EventList
	err := json.Unmarshal([]byte(`[{"id":"a","type":"lottery","year":1}]`), &l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lottery")

	err = yaml.Unmarshal([]byte("- id: a\n  type: lottery\n  year: 1\n"), &l)
	require.Error(t, err)
}

func TestEventList_EmptyDecodesToNil(t *testing.T) {
	var l EventList
	require.NoError(t, json.Unmarshal([]byte(`[]`), &l))
	assert.Nil(t, l)
}

func TestMortgage_ActiveIn(t *testing.T) {
	m := Mortgage{Year: 3, MortgageTerm: 2}
	tests := []struct {
		year int
		want bool
	}{
		{2, false},
		{3, true},
		{4, true},
		{5, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.ActiveIn(tt.year), "year %d", tt.year)
	}
	assert.False(t, Mortgage{Year: 1, MortgageTerm: 0}.ActiveIn(1))
}

func TestEventList_Helpers(t *testing.T) {
	l := sampleProfile().Events
	e, ok := l.Find("2")
	require.True(t, ok)
	assert.Equal(t, EventMortgage, e.Kind())
	assert.Equal(t, 4, e.StartYear())

	_, ok = l.Find("nope")
	assert.False(t, ok)

	rest := l.Without("1")
	assert.Len(t, rest, 1)
	assert.Len(t, l, 2)
}
