package main

import (
	"fmt"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// horizonFlags are the --years / --rate pair shared by the projection commands.
// Negative values fall back to the configured defaults.
type horizonFlags struct {
	years int
	rate  float64
}

func (h *horizonFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&h.years, "years", "y", -1, "projection horizon in years (default from settings)")
	cmd.Flags().Float64VarP(&h.rate, "rate", "r", -1, "annual return rate in percent (default from settings)")
}

func (h *horizonFlags) resolve(s *config.Settings) (int, decimal.Decimal, error) {
	years := s.Defaults.Years
	if h.years >= 0 {
		years = h.years
	}
	if err := s.CheckHorizon(years); err != nil {
		return 0, decimal.Zero, fmt.Errorf("--years: %w", err)
	}
	rate := s.DefaultReturnRate()
	if h.rate >= 0 {
		rate = decimal.NewFromFloat(h.rate)
	}
	return years, rate, nil
}

func (a *app) newProjectCmd() *cobra.Command {
	var h horizonFlags
	cmd := &cobra.Command{
		Use:   "project [profile-file]",
		Short: "Print the projected net worth after the horizon",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(args)
			if err != nil {
				return err
			}
			years, rate, err := h.resolve(a.settings)
			if err != nil {
				return err
			}
			balance := a.engine().ProjectBalance(p, years, rate)
			fmt.Fprintf(cmd.OutOrStdout(), "Net worth after %d years at %s: %s\n",
				years, output.FormatPercentage(rate), output.FormatCurrency(balance))
			return nil
		},
	}
	h.register(cmd)
	return cmd
}

// reportCmdOptions are shared by the commands that render a ProjectionReport.
type reportCmdOptions struct {
	horizonFlags
	format    string
	outputDir string
	matrix    bool
}

func (a *app) buildReport(cmd *cobra.Command, args []string, opts *reportCmdOptions) (*domain.ProjectionReport, error) {
	p, err := a.loadProfile(args)
	if err != nil {
		return nil, err
	}
	years, rate, err := opts.resolve(a.settings)
	if err != nil {
		return nil, err
	}
	req := calculation.ReportRequest{
		Profile:    p,
		Years:      years,
		ReturnRate: rate,
		Thresholds: a.settings.Thresholds(),
	}
	if opts.matrix {
		req.YearOptions = a.settings.Projections.YearOptions
		req.ReturnRates = a.settings.ReturnRates()
	}
	report, err := a.engine().RunReport(cmd.Context(), req)
	if err != nil {
		return nil, err
	}
	report.Assumptions = output.GenerateAssumptions(report)
	report.Warnings = a.parser.Warnings(p, &a.settings.Sliders)
	return report, nil
}

// render prints the report in the chosen format, or writes report files when
// an output directory is set.
func (a *app) render(cmd *cobra.Command, report *domain.ProjectionReport, opts *reportCmdOptions) error {
	if opts.outputDir != "" {
		paths, err := output.GenerateReport(report, opts.format, opts.outputDir)
		for _, path := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		}
		return err
	}
	f := output.GetFormatterByName(opts.format)
	if f == nil {
		return fmt.Errorf("%w: %q (use --output-dir for multi-file formats)", output.ErrUnsupportedFormat, opts.format)
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (a *app) reportCommand(use, short, defaultFormat string, matrix bool) *cobra.Command {
	opts := &reportCmdOptions{matrix: matrix}
	cmd := &cobra.Command{
		Use:   use + " [profile-file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.buildReport(cmd, args, opts)
			if err != nil {
				return err
			}
			return a.render(cmd, report, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", defaultFormat, "output format: console, console-lite, csv, detailed-csv, html, json, all")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "write report files into this directory instead of stdout")
	return cmd
}

func (a *app) newTrajectoryCmd() *cobra.Command {
	return a.reportCommand("trajectory", "Print the year-by-year projection", "detailed-csv", false)
}

func (a *app) newMatrixCmd() *cobra.Command {
	return a.reportCommand("matrix", "Print net worth for every configured horizon and return rate", "csv", true)
}

func (a *app) newReportCmd() *cobra.Command {
	return a.reportCommand("report", "Render the full projection report", "console", true)
}

func (a *app) newResolveCmd() *cobra.Command {
	var (
		year    int
		field   string
		through int
	)
	cmd := &cobra.Command{
		Use:   "resolve [profile-file]",
		Short: "Print the effective income or savings rate for a year",
		Long: `Print the effective income or savings rate for a year.

With --through N, print the income, savings rate and contribution in force
for every year from 1 to N. Values set by a yearly adjustment are marked *.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("through") {
				if through < 1 {
					return fmt.Errorf("--through must be at least 1, got %d", through)
				}
				if err := a.settings.CheckHorizon(through); err != nil {
					return fmt.Errorf("--through: %w", err)
				}
				printSchedule(cmd, a.engine().ResolveSchedule(p, through))
				return nil
			}
			f := domain.AdjustmentField(field)
			v, err := a.engine().ResolveEffectiveValue(p, year, f)
			if err != nil {
				return err
			}
			if f == domain.FieldIncome {
				fmt.Fprintf(cmd.OutOrStdout(), "Year %d income: %s\n", year, output.FormatCurrency(v))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Year %d savings rate: %s\n", year, output.FormatPercentage(v))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 1, "projection year")
	cmd.Flags().StringVar(&field, "field", string(domain.FieldIncome), "income or savingsRate")
	cmd.Flags().IntVar(&through, "through", 0, "print every year from 1 through this year")
	return cmd
}

func printSchedule(cmd *cobra.Command, schedule []calculation.EffectiveYear) {
	mark := func(overridden bool) string {
		if overridden {
			return "*"
		}
		return ""
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s %-16s %-14s %s\n", "Year", "Income", "Savings Rate", "Contribution")
	for _, ey := range schedule {
		fmt.Fprintf(out, "%-6d %-16s %-14s %s\n", ey.Year,
			output.FormatCurrency(ey.Income)+mark(ey.IncomeOverridden),
			output.FormatPercentage(ey.SavingsRate)+mark(ey.SavingsRateOverridden),
			output.FormatCurrency(ey.Contribution))
	}
}

func (a *app) newGoalCmd() *cobra.Command {
	var (
		h       horizonFlags
		target  float64
		maxRate float64
	)
	cmd := &cobra.Command{
		Use:   "goal [profile-file]",
		Short: "Find the savings rate needed to reach a target net worth",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(args)
			if err != nil {
				return err
			}
			years, rate, err := h.resolve(a.settings)
			if err != nil {
				return err
			}
			res, err := a.engine().CalculateBreakEvenSavingsRate(p, years, rate,
				decimal.NewFromFloat(target), decimal.NewFromFloat(maxRate))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target:              %s in %d years at %s\n", output.FormatCurrency(res.Target), res.Years, output.FormatPercentage(res.ReturnRate))
			fmt.Fprintf(out, "Savings rate needed: %s\n", output.FormatPercentage(res.SavingsRate))
			fmt.Fprintf(out, "Annual contribution: %s\n", output.FormatCurrency(res.AnnualContribution))
			fmt.Fprintf(out, "Projected net worth: %s\n", output.FormatCurrency(res.ProjectedBalance))
			if n, ok := calculation.YearsToTarget(p, rate, res.Target, years); ok {
				fmt.Fprintf(out, "At the current rate: reached in year %d\n", n)
			} else {
				fmt.Fprintf(out, "At the current rate: not reached within %d years\n", years)
			}
			return nil
		},
	}
	h.register(cmd)
	cmd.Flags().Float64Var(&target, "target", 1000000, "target net worth")
	cmd.Flags().Float64Var(&maxRate, "max-rate", 100, "highest savings rate to consider, in percent")
	return cmd
}

func (a *app) newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example advanced-mode profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "example_profile.yaml"
			if len(args) > 0 {
				filename = args[0]
			}
			if err := output.SaveProfile(a.parser.CreateExampleProfile(), filename); err != nil {
				return fmt.Errorf("failed to write example profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example profile written to %s\n", filename)
			return nil
		},
	}
}
