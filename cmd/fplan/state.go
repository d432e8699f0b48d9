package main

import (
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/output"
	"github.com/rpgo/networth-planner/internal/state"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) store() *state.Store {
	s := state.NewStore(a.settings.StateDir)
	s.SetLogger(a.logger)
	return s
}

func (a *app) newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Save, load or clear the persisted planner state",
	}
	cmd.AddCommand(a.newStateSaveCmd(), a.newStateLoadCmd(), a.newStateClearCmd())
	return cmd
}

func (a *app) newStateSaveCmd() *cobra.Command {
	var (
		years int
		rate  float64
	)
	cmd := &cobra.Command{
		Use:   "save [profile-file]",
		Short: "Persist a profile and the selected matrix cell",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(args)
			if err != nil {
				return err
			}
			st := &domain.PlannerState{Profile: *p}
			if cmd.Flags().Changed("years") || cmd.Flags().Changed("rate") {
				st.SelectedCell = &domain.CellRef{Years: years, ReturnRate: decimal.NewFromFloat(rate)}
			}
			store := a.store()
			if err := store.Save(st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "State saved to %s\n", store.Path())
			return nil
		},
	}
	cmd.Flags().IntVarP(&years, "years", "y", 0, "selected matrix horizon")
	cmd.Flags().Float64VarP(&rate, "rate", "r", 0, "selected matrix return rate")
	return cmd
}

func (a *app) newStateLoadCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Print the persisted profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store().Load()
			if err != nil {
				return err
			}
			if st == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved state")
				return nil
			}
			if c := st.SelectedCell; c != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Selected cell: %d years at %s\n", c.Years, output.FormatPercentage(c.ReturnRate))
			}
			return a.emitProfile(cmd, &st.Profile, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the profile to this file instead of stdout")
	return cmd
}

func (a *app) newStateClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the persisted state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "State cleared")
			return nil
		},
	}
}
