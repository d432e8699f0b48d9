package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/output"
)

// Prints the yearly amortization schedule of every mortgage in a profile.
// Usage: print_schedule [profile-file]
func main() {
	parser := config.NewInputParser()
	profile := parser.CreateExampleProfile()
	if len(os.Args) > 1 {
		p, err := parser.LoadFromFile(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		profile = p
	}

	found := false
	for _, e := range profile.Events {
		m, ok := e.(domain.Mortgage)
		if !ok {
			continue
		}
		found = true
		a := calculation.NewAmortization(m.Principal(), m.InterestRate, m.MortgageTerm)
		fmt.Printf("=== %s (%s) ===\n", m.Description, m.ID)
		fmt.Printf("Principal: %s  Rate: %s  Term: %d years  Monthly: %s\n",
			output.FormatCurrency(m.Principal()), output.FormatPercentage(m.InterestRate), m.MortgageTerm,
			output.FormatCurrency(a.MonthlyPayment()))
		if !a.Amortizes() {
			fmt.Println("No payments: zero rate or term")
			continue
		}
		fmt.Printf("%-5s %14s %14s %14s %14s\n", "Year", "Payment", "Interest", "Principal", "Remaining")
		for _, row := range a.YearlySchedule() {
			fmt.Printf("%-5d %14s %14s %14s %14s\n", row.Year,
				output.FormatCurrency(row.Payment), output.FormatCurrency(row.Interest),
				output.FormatCurrency(row.Principal), output.FormatCurrency(row.Remaining))
		}
		fmt.Println()
	}
	if !found {
		fmt.Println("Profile has no mortgages")
	}
}
