package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// saveProfile validates p and writes it back to filename in its original format.
func (a *app) saveProfile(p *domain.Profile, filename string) error {
	if err := a.parser.ValidateProfile(p); err != nil {
		return err
	}
	if err := output.SaveProfile(p, filename); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (a *app) newAdjustCmd() *cobra.Command {
	var (
		year  int
		field string
		value float64
		unset bool
	)
	cmd := &cobra.Command{
		Use:   "adjust <profile-file>",
		Short: "Set or clear a yearly income or savings rate override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(args)
			if err != nil {
				return err
			}
			f := domain.AdjustmentField(field)
			if !f.Valid() {
				return fmt.Errorf("unknown adjustment field %q", field)
			}
			if year < 1 {
				return fmt.Errorf("year must be at least 1, got %d", year)
			}
			if unset {
				p.SetAdjustment(year, f, nil)
			} else {
				if !cmd.Flags().Changed("value") {
					return fmt.Errorf("--value or --clear is required")
				}
				v := decimal.NewFromFloat(value)
				p.SetAdjustment(year, f, &v)
			}
			if err := a.saveProfile(p, args[0]); err != nil {
				return err
			}
			if unset {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s override for year %d\n", f, year)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %v from year %d\n", f, value, year)
			}
			if !p.AdvancedMode {
				a.logger.Warnf("advanced mode is off: the override has no effect until advanced_mode is enabled")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 1, "first year the override applies")
	cmd.Flags().StringVar(&field, "field", string(domain.FieldIncome), "income or savingsRate")
	cmd.Flags().Float64Var(&value, "value", 0, "new value (currency for income, percent for savingsRate)")
	cmd.Flags().BoolVar(&unset, "clear", false, "remove the override instead of setting it")
	return cmd
}

func (a *app) newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "List, add and remove purchases and mortgages in a profile",
	}
	cmd.AddCommand(a.newEventListCmd(), a.newEventAddCmd(), a.newEventRemoveCmd())
	return cmd
}

func (a *app) newEventListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <profile-file>",
		Short: "List the events in a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(p.Events) == 0 {
				fmt.Fprintln(out, "No events")
				return nil
			}
			for _, e := range p.Events {
				switch ev := e.(type) {
				case domain.OneTime:
					fmt.Fprintf(out, "%-36s  year %-3d  purchase  %s  %s\n", ev.ID, ev.Year, output.FormatCurrency(ev.Amount), ev.Description)
				case domain.Mortgage:
					fmt.Fprintf(out, "%-36s  year %-3d  mortgage  %s (down %s, %s, %d yrs, last payment year %d)  %s\n", ev.ID, ev.Year,
						output.FormatCurrency(ev.HouseCost), output.FormatCurrency(ev.DownPayment),
						output.FormatPercentage(ev.InterestRate), ev.MortgageTerm, ev.EndYear(), ev.Description)
				}
			}
			return nil
		},
	}
}

func (a *app) newEventAddCmd() *cobra.Command {
	var (
		kind         string
		year         int
		amount       float64
		description  string
		houseCost    float64
		downPayment  float64
		interestRate float64
		term         int
	)
	cmd := &cobra.Command{
		Use:   "add <profile-file>",
		Short: "Append a one-time purchase or a mortgage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(args)
			if err != nil {
				return err
			}
			if year < 1 {
				return fmt.Errorf("year must be at least 1, got %d", year)
			}
			id := domain.EventID(uuid.NewString())
			switch domain.EventType(kind) {
			case domain.EventOneTime, "purchase":
				p.Events = append(p.Events, domain.OneTime{
					ID:          id,
					Year:        year,
					Amount:      decimal.NewFromFloat(amount),
					Description: description,
				})
			case domain.EventMortgage:
				p.Events = append(p.Events, domain.Mortgage{
					ID:           id,
					Year:         year,
					HouseCost:    decimal.NewFromFloat(houseCost),
					DownPayment:  decimal.NewFromFloat(downPayment),
					InterestRate: decimal.NewFromFloat(interestRate),
					MortgageTerm: term,
					Description:  description,
				})
			default:
				return fmt.Errorf("unknown event type %q (use one_time or mortgage)", kind)
			}
			if err := a.saveProfile(p, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added event %s\n", id)
			if !p.AdvancedMode {
				a.logger.Warnf("advanced mode is off: the event has no effect until advanced_mode is enabled")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", string(domain.EventOneTime), "one_time or mortgage")
	cmd.Flags().IntVar(&year, "year", 1, "year the event happens")
	cmd.Flags().Float64Var(&amount, "amount", 0, "purchase amount (one_time)")
	cmd.Flags().StringVar(&description, "description", "", "label shown in projections")
	cmd.Flags().Float64Var(&houseCost, "house-cost", 0, "house price (mortgage)")
	cmd.Flags().Float64Var(&downPayment, "down-payment", 0, "down payment (mortgage)")
	cmd.Flags().Float64Var(&interestRate, "interest-rate", 0, "annual interest rate in percent (mortgage)")
	cmd.Flags().IntVar(&term, "term", 30, "mortgage term in years (mortgage)")
	return cmd
}

func (a *app) newEventRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <profile-file> <event-id>",
		Short: "Remove an event by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(args[:1])
			if err != nil {
				return err
			}
			id := domain.EventID(args[1])
			if _, ok := p.Events.Find(id); !ok {
				return fmt.Errorf("no event with id %q", id)
			}
			p.Events = p.Events.Without(id)
			if err := a.saveProfile(p, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed event %s\n", id)
			return nil
		},
	}
}
