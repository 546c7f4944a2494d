package sales

import (
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// discrepancyThreshold is the fixed tolerance in currency units. A day is
// balanced while the absolute overall discrepancy stays at or below it.
var discrepancyThreshold = decimal.NewFromInt(10)

// ChannelFigures are the raw end-of-day inputs. The *Amount fields hold the
// expected figure per channel, the cash/total fields the counted actuals.
type ChannelFigures struct {
	FrontRegisterAmount decimal.Decimal
	BackRegisterAmount  decimal.Decimal
	CreditCardAmount    decimal.Decimal
	OTC1Amount          decimal.Decimal
	OTC2Amount          decimal.Decimal

	FrontRegisterCash decimal.Decimal
	BackRegisterCash  decimal.Decimal
	CreditCardTotal   decimal.Decimal
	OTC1Total         decimal.Decimal
	OTC2Total         decimal.Decimal
}

// Reconciliation holds the derived figures. Negative discrepancies are
// shortfalls, positive ones surplus.
type Reconciliation struct {
	FrontDiscrepancy   decimal.Decimal
	BackDiscrepancy    decimal.Decimal
	TotalExpected      decimal.Decimal
	TotalActual        decimal.Decimal
	OverallDiscrepancy decimal.Decimal
	Status             enums.SalesStatus
}

// Reconcile derives the discrepancy figures from the channel inputs. It is
// invoked exactly once per record, before the insert.
func Reconcile(in ChannelFigures) Reconciliation {
	out := Reconciliation{
		FrontDiscrepancy: in.FrontRegisterCash.Sub(in.FrontRegisterAmount),
		BackDiscrepancy:  in.BackRegisterCash.Sub(in.BackRegisterAmount),
		TotalExpected: in.FrontRegisterAmount.
			Add(in.BackRegisterAmount).
			Add(in.CreditCardAmount).
			Add(in.OTC1Amount).
			Add(in.OTC2Amount),
		TotalActual: in.FrontRegisterCash.
			Add(in.BackRegisterCash).
			Add(in.CreditCardTotal).
			Add(in.OTC1Total).
			Add(in.OTC2Total),
	}
	out.OverallDiscrepancy = out.TotalActual.Sub(out.TotalExpected)
	out.Status = enums.SalesStatusBalanced
	if out.Significant() {
		out.Status = enums.SalesStatusDiscrepancy
	}
	return out
}

// Significant reports whether the overall discrepancy exceeds the tolerance.
func (r Reconciliation) Significant() bool {
	return r.OverallDiscrepancy.Abs().GreaterThan(discrepancyThreshold)
}
