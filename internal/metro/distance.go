package metro

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Distance returns the number of hops between two stations using at most one
// line change.
func (n *Network) Distance(start, end *Station) (int, error) {
	if start == nil || end == nil {
		return 0, fmt.Errorf("%w: station is nil", ErrNotFound)
	}
	if start == end {
		return 0, nil
	}
	if start.line == end.line {
		return hopsOnLine(start, end)
	}

	from, to, err := start.line.FindTransferTo(end.line)
	if err != nil {
		return 0, &PathError{Start: start.name, End: end.name}
	}

	first, err := hopsOnLine(start, from)
	if err != nil {
		return 0, err
	}
	second, err := hopsOnLine(to, end)
	if err != nil {
		return 0, err
	}
	return first + second, nil
}

// DistanceByName resolves both stations network-wide and returns their distance
func (n *Network) DistanceByName(from, to string) (int, error) {
	start, err := n.FindStation(from)
	if err != nil {
		return 0, err
	}
	end, err := n.FindStation(to)
	if err != nil {
		return 0, err
	}
	return n.Distance(start, end)
}

// Quote returns the hop count and one-way ticket price between two stations
func (n *Network) Quote(from, to *Station) (int, decimal.Decimal, error) {
	if from == to {
		return 0, decimal.Zero, fmt.Errorf("%w: destination %s equals departure station", ErrInvalidOperation, from.name)
	}
	hops, err := n.Distance(from, to)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return hops, n.tariff.TicketPrice(hops), nil
}

// hopsOnLine walks forward from start; when the terminus comes first it walks
// forward from end instead.
func hopsOnLine(start, end *Station) (int, error) {
	if hops := forwardHops(start, end); hops >= 0 {
		return hops, nil
	}
	if hops := forwardHops(end, start); hops >= 0 {
		return hops, nil
	}
	return 0, &PathError{Start: start.name, End: end.name}
}

// forwardHops counts successor links from a to b, -1 if b is not ahead of a
func forwardHops(a, b *Station) int {
	if a.line != b.line || b.position < a.position {
		return -1
	}
	return b.position - a.position
}
