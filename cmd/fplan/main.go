package main

import (
	"fmt"
	"os"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/logging"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand.
type app struct {
	configFile string
	logLevel   string
	logFormat  string

	settings *config.Settings
	logger   *logging.Logger
	parser   *config.InputParser
}

func newRootCmd() *cobra.Command {
	a := &app{parser: config.NewInputParser()}

	root := &cobra.Command{
		Use:   "fplan",
		Short: "Net worth projection planner",
		Long: `fplan projects liquid savings and home equity year by year from an income,
a savings rate and an optional list of yearly adjustments, purchases and mortgages.

Profiles are YAML or JSON files. Commands that take [profile-file] fall back to
the configured default profile when it is omitted.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "settings file (default: ./fplan.yaml or $HOME/.fplan/fplan.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		a.newProjectCmd(),
		a.newTrajectoryCmd(),
		a.newMatrixCmd(),
		a.newReportCmd(),
		a.newResolveCmd(),
		a.newGoalCmd(),
		a.newExampleCmd(),
		a.newAdjustCmd(),
		a.newEventCmd(),
		a.newShareCmd(),
		a.newStateCmd(),
		a.newServeCmd(),
	)
	return root
}

func (a *app) initialize(cmd *cobra.Command) error {
	a.logger = logging.NewLogger(logging.LogConfig{
		Level:  a.logLevel,
		Format: a.logFormat,
		Output: cmd.ErrOrStderr(),
	})
	settings, err := config.LoadSettings(a.configFile)
	if err != nil {
		return err
	}
	a.settings = settings
	return nil
}

func (a *app) engine() *calculation.CalculationEngine {
	ce := calculation.NewCalculationEngine()
	ce.SetLogger(a.logger)
	return ce
}

// loadProfile reads the profile named by args[0], or the configured default
// profile when no file is given. Advisory warnings are logged.
func (a *app) loadProfile(args []string) (*domain.Profile, error) {
	var p *domain.Profile
	if len(args) == 0 || args[0] == "" {
		p = a.settings.DefaultProfile()
	} else {
		loaded, err := a.parser.LoadFromFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		p = loaded
	}
	for _, w := range a.parser.Warnings(p, &a.settings.Sliders) {
		a.logger.Warnf("%s", w)
	}
	return p, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
