package metro

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DailyIncome is one row of an income report
type DailyIncome struct {
	Date   time.Time
	Amount decimal.Decimal
}

// TotalIncome sums every station's ledger per date. Dates without sales are
// absent from the result.
func (n *Network) TotalIncome() map[time.Time]decimal.Decimal {
	total := make(map[time.Time]decimal.Decimal)
	for _, line := range n.Lines() {
		for _, s := range line.stations {
			for day, amount := range s.office.Sales() {
				total[day] = total[day].Add(amount)
			}
		}
	}
	return total
}

// IncomeReport returns the network income ascending by date
func (n *Network) IncomeReport() []DailyIncome {
	return sortIncome(n.TotalIncome())
}

// StationIncome returns the ledger of one station ascending by date
func (n *Network) StationIncome(name string) ([]DailyIncome, error) {
	s, err := n.FindStation(name)
	if err != nil {
		return nil, err
	}
	return sortIncome(s.office.Sales()), nil
}

func sortIncome(sales map[time.Time]decimal.Decimal) []DailyIncome {
	rows := make([]DailyIncome, 0, len(sales))
	for day, amount := range sales {
		rows = append(rows, DailyIncome{Date: day, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}
