package metro

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransferTarget names a station on another line reachable as a transfer
type TransferTarget struct {
	Color LineColor
	Name  string
}

// Station is a stop on exactly one line.
// Next and previous stations are derived from the position on the line.
type Station struct {
	name       string
	line       *Line
	position   int
	travelTime time.Duration // to the next station, zero at the terminus
	transfers  []*Station
	office     *TicketOffice
}

func newStation(name string, line *Line, position int) *Station {
	return &Station{
		name:     name,
		line:     line,
		position: position,
		office:   NewTicketOffice(),
	}
}

// Name returns the station name as registered
func (s *Station) Name() string {
	return s.name
}

// Line returns the line the station belongs to
func (s *Station) Line() *Line {
	return s.line
}

// Position returns the zero-based index of the station on its line
func (s *Station) Position() int {
	return s.position
}

// Next returns the successor on the line, nil at the terminus
func (s *Station) Next() *Station {
	return s.line.at(s.position + 1)
}

// Previous returns the predecessor on the line, nil at the origin
func (s *Station) Previous() *Station {
	return s.line.at(s.position - 1)
}

// IsOrigin reports whether the station has no predecessor
func (s *Station) IsOrigin() bool {
	return s.position == 0
}

// IsTerminus reports whether the station has no successor
func (s *Station) IsTerminus() bool {
	return s.Next() == nil
}

// TravelTimeToNext returns the travel time to the successor
func (s *Station) TravelTimeToNext() time.Duration {
	return s.travelTime
}

// Transfers returns the stations on other lines linked to this one
func (s *Station) Transfers() []*Station {
	out := make([]*Station, len(s.transfers))
	copy(out, s.transfers)
	return out
}

// TransferTo returns the first linked station on the given line, or nil
func (s *Station) TransferTo(line *Line) *Station {
	for _, t := range s.transfers {
		if t.line == line {
			return t
		}
	}
	return nil
}

// HasTransferTo reports whether a transfer to the given line exists here
func (s *Station) HasTransferTo(line *Line) bool {
	return s.TransferTo(line) != nil
}

func (s *Station) linkedTo(other *Station) bool {
	for _, t := range s.transfers {
		if t == other {
			return true
		}
	}
	return false
}

// TicketOffice returns the station's sales ledger
func (s *Station) TicketOffice() *TicketOffice {
	return s.office
}

func (s *Station) network() *Network {
	return s.line.network
}

// SellOneWayTicket prices a trip between from and to, records the sale in
// this station's office and returns the price.
func (s *Station) SellOneWayTicket(saleDate time.Time, from, to *Station) (decimal.Decimal, error) {
	if from == to {
		return decimal.Zero, fmt.Errorf("%w: destination %s equals departure station", ErrInvalidOperation, from.name)
	}

	n := s.network()
	hops, err := n.Distance(from, to)
	if err != nil {
		return decimal.Zero, err
	}

	price := n.tariff.TicketPrice(hops)
	s.office.Record(saleDate, price)
	return price, nil
}

// SellPass issues a new monthly pass and records its price
func (s *Station) SellPass(saleDate time.Time) (Pass, error) {
	n := s.network()
	pass, err := n.IssuePass(saleDate)
	if err != nil {
		return Pass{}, err
	}
	s.office.Record(saleDate, n.tariff.PassPrice)
	return pass, nil
}

// RenewPass extends an existing pass to one month past saleDate and records
// the pass price.
func (s *Station) RenewPass(serial string, saleDate time.Time) (Pass, error) {
	n := s.network()
	pass, err := n.RenewPass(serial, saleDate)
	if err != nil {
		return Pass{}, err
	}
	s.office.Record(saleDate, n.tariff.PassPrice)
	return pass, nil
}

func (s *Station) String() string {
	return fmt.Sprintf("%s (%s)", s.name, s.line.color)
}
