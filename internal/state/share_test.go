package state

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareCode_RoundTrip(t *testing.T) {
	profiles := map[string]*domain.Profile{
		"example": config.NewInputParser().CreateExampleProfile(),
		"simple": {
			AnnualIncome:   decimal.NewFromInt(55000),
			InitialSavings: decimal.NewFromFloat(1234.56),
			SavingsRate:    decimal.NewFromFloat(12.5),
		},
	}
	for name, p := range profiles {
		t.Run(name, func(t *testing.T) {
			code, err := EncodeShareCode(p)
			require.NoError(t, err)
			assert.NotContains(t, code, "=")
			assert.NotContains(t, code, "+")
			assert.NotContains(t, code, "/")

			back, err := DecodeShareCode(code)
			require.NoError(t, err)
			assert.True(t, p.Equal(back))
		})
	}
}

func TestDecodeShareCode_AcceptsPadding(t *testing.T) {
	raw := `{"annualIncome":1,"initialSavings":2,"savingsRate":3}`
	padded := base64.URLEncoding.EncodeToString([]byte(raw))
	require.True(t, strings.HasSuffix(padded, "="))

	p, err := DecodeShareCode(padded)
	require.NoError(t, err)
	assert.True(t, p.SavingsRate.Equal(decimal.NewFromInt(3)))
}

func TestDecodeShareCode_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":      "",
		"not base64": "***",
		"not json":   base64.RawURLEncoding.EncodeToString([]byte("hello")),
		"missing":    base64.RawURLEncoding.EncodeToString([]byte(`{"annualIncome":1}`)),
	}
	for name, code := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeShareCode(code)
			assert.ErrorIs(t, err, ErrInvalidShareCode)
		})
	}

	_, err := DecodeShareCode(base64.RawURLEncoding.EncodeToString([]byte(`{"annualIncome":1}`)))
	assert.ErrorIs(t, err, config.ErrMissingField)
}

func TestShareURL_RoundTrip(t *testing.T) {
	p := config.NewInputParser().CreateExampleProfile()
	link, err := ShareURL("https://planner.example.com/app?theme=dark", p)
	require.NoError(t, err)
	assert.Contains(t, link, "theme=dark")
	assert.Contains(t, link, ShareParam+"=")

	back, err := ProfileFromURL(link)
	require.NoError(t, err)
	assert.True(t, p.Equal(back))

	_, err = ProfileFromURL("https://planner.example.com/app")
	assert.ErrorIs(t, err, ErrInvalidShareCode)
}
