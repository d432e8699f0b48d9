package output_test

import (
	"path/filepath"
	"strings"
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/output"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{output.FormatCurrency(stddec.NewFromFloat(1234567.5)), "$1,234,568"},
		{output.FormatCurrency(stddec.NewFromInt(-42000)), "-$42,000"},
		{output.FormatCurrency(stddec.Zero), "$0"},
		{output.FormatMillions(stddec.NewFromInt(1_234_567)), "$1.23M"},
		{output.FormatPercentage(stddec.NewFromFloat(6.5)), "6.5%"},
		{output.FormatPercentage(stddec.NewFromInt(7)), "7%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got)
	}
}

func TestSaveProfile(t *testing.T) {
	parser := config.NewInputParser()
	p := parser.CreateExampleProfile()
	dir := t.TempDir()

	for _, name := range []string{"profile.yaml", "profile.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, output.SaveProfile(p, path))
		back, err := parser.LoadFromFile(path)
		require.NoError(t, err, name)
		assert.True(t, p.Equal(back), name)
	}
}

func simpleReport() *domain.ProjectionReport {
	return &domain.ProjectionReport{
		Years:      1,
		ReturnRate: stddec.NewFromInt(7),
		Trajectory: domain.Trajectory{
			{Year: 0, Balance: stddec.NewFromInt(100)},
			{Year: 1, Balance: stddec.NewFromInt(107)},
		},
	}
}

func TestGenerateReport_WritesFiles(t *testing.T) {
	dir := t.TempDir()

	paths, err := output.GenerateReport(simpleReport(), "json", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.True(t, strings.HasSuffix(paths[0], ".json"))
	assert.FileExists(t, paths[0])

	paths, err = output.GenerateReport(simpleReport(), "csv-matrix", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.True(t, strings.HasSuffix(paths[0], ".csv"))

	paths, err = output.GenerateReport(simpleReport(), "all", dir)
	require.NoError(t, err)
	assert.Len(t, paths, 3)
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := output.GenerateReport(simpleReport(), "definitely-not-a-format", t.TempDir())
	require.ErrorIs(t, err, output.ErrUnsupportedFormat)
	msg := err.Error()
	assert.Contains(t, msg, "unsupported report format")
	assert.Contains(t, msg, "Try one of:")
	assert.Contains(t, msg, "console-lite")
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json"}, output.AvailableFormatterNames())
	assert.Contains(t, output.AvailableFormatAliases(), "verbose")
}
