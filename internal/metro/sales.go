package metro

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SellTicketOnStation sells a one-way ticket at the seller station
func (n *Network) SellTicketOnStation(saleDate time.Time, seller, from, to string) (decimal.Decimal, error) {
	start, err := n.FindStation(from)
	if err != nil {
		return decimal.Zero, err
	}
	end, err := n.FindStation(to)
	if err != nil {
		return decimal.Zero, err
	}
	office, err := n.FindStation(seller)
	if err != nil {
		return decimal.Zero, err
	}
	if start == end {
		return decimal.Zero, fmt.Errorf("%w: destination %s equals departure station", ErrInvalidOperation, start.name)
	}
	return office.SellOneWayTicket(saleDate, start, end)
}

// SellPassOnStation sells a new monthly pass at the seller station
func (n *Network) SellPassOnStation(saleDate time.Time, seller string) (Pass, error) {
	office, err := n.FindStation(seller)
	if err != nil {
		return Pass{}, err
	}
	return office.SellPass(saleDate)
}

// RenewPassOnStation renews a pass at the seller station
func (n *Network) RenewPassOnStation(saleDate time.Time, serial, seller string) (Pass, error) {
	office, err := n.FindStation(seller)
	if err != nil {
		return Pass{}, err
	}
	return office.RenewPass(serial, saleDate)
}
