package metro

import "github.com/shopspring/decimal"

// Tariff holds the network-wide prices
type Tariff struct {
	BaseFare  decimal.Decimal // charged for every one-way ticket
	StageFare decimal.Decimal // charged per hop
	PassPrice decimal.Decimal // monthly pass, also charged on renewal
}

// DefaultTariff returns base fare 20, stage fare 5 and pass price 3000
func DefaultTariff() Tariff {
	return Tariff{
		BaseFare:  decimal.NewFromInt(20),
		StageFare: decimal.NewFromInt(5),
		PassPrice: decimal.NewFromInt(3000),
	}
}

// TicketPrice returns the one-way ticket price for a trip of hops stages
func (t Tariff) TicketPrice(hops int) decimal.Decimal {
	return t.StageFare.Mul(decimal.NewFromInt(int64(hops))).Add(t.BaseFare)
}
