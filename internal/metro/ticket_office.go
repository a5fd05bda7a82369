package metro

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// TicketOffice accumulates a station's revenue per sale date
type TicketOffice struct {
	mu    sync.Mutex
	sales map[time.Time]decimal.Decimal
}

// NewTicketOffice creates an empty ledger
func NewTicketOffice() *TicketOffice {
	return &TicketOffice{sales: make(map[time.Time]decimal.Decimal)}
}

// Record adds amount to the running total of the sale date
func (o *TicketOffice) Record(saleDate time.Time, amount decimal.Decimal) {
	day := DateOf(saleDate)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.sales[day] = o.sales[day].Add(amount)
}

// Total returns the revenue of a single day, zero when nothing was sold
func (o *TicketOffice) Total(saleDate time.Time) decimal.Decimal {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sales[DateOf(saleDate)]
}

// Sales returns a copy of the ledger
func (o *TicketOffice) Sales() map[time.Time]decimal.Decimal {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make(map[time.Time]decimal.Decimal, len(o.sales))
	for day, amount := range o.sales {
		out[day] = amount
	}
	return out
}

// Dates returns the days with at least one sale, ascending
func (o *TicketOffice) Dates() []time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()

	days := make([]time.Time, 0, len(o.sales))
	for day := range o.sales {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
