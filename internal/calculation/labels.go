package calculation

import (
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/money"
	"github.com/shopspring/decimal"
)

func incomeAnnotation(v decimal.Decimal) domain.EventAnnotation {
	return domain.EventAnnotation{
		Type:  domain.AnnotationIncome,
		Label: "Income: $" + money.Group(v, 3),
	}
}

func savingsAnnotation(v decimal.Decimal) domain.EventAnnotation {
	return domain.EventAnnotation{
		Type:  domain.AnnotationSavings,
		Label: "Savings Rate: " + v.String() + "%",
	}
}

func purchaseAnnotation(e domain.OneTime) domain.EventAnnotation {
	return domain.EventAnnotation{
		Type:  domain.AnnotationPurchase,
		Label: describe(e.Description, "Purchase") + ": -$" + money.Group(e.Amount, 3),
	}
}

func mortgageDownAnnotation(e domain.Mortgage) domain.EventAnnotation {
	return domain.EventAnnotation{
		Type:  domain.AnnotationMortgageDown,
		Label: describe(e.Description, "Mortgage") + " down payment: -$" + money.Group(e.DownPayment, 3),
	}
}

func mortgagePaymentAnnotation(e domain.Mortgage, annual decimal.Decimal) domain.EventAnnotation {
	return domain.EventAnnotation{
		Type:  domain.AnnotationMortgagePayment,
		Label: describe(e.Description, "Mortgage") + " payment: -$" + money.Group(money.RoundWhole(annual), 0) + "/yr",
	}
}

func describe(description, fallback string) string {
	if description == "" {
		return fallback
	}
	return description
}
