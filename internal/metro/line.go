package metro

import (
	"fmt"
	"time"
)

// Line is the ordered sequence of stations of one color.
// Insertion order is the physical order along the line.
type Line struct {
	color    LineColor
	network  *Network
	stations []*Station
	byName   map[string]*Station
}

func newLine(network *Network, color LineColor) *Line {
	return &Line{
		color:   color,
		network: network,
		byName:  make(map[string]*Station),
	}
}

// Color returns the line color
func (l *Line) Color() LineColor {
	return l.color
}

// Stations returns the stations in line order
func (l *Line) Stations() []*Station {
	out := make([]*Station, len(l.stations))
	copy(out, l.stations)
	return out
}

// Len returns the number of stations on the line
func (l *Line) Len() int {
	return len(l.stations)
}

// Origin returns the first station, nil for an empty line
func (l *Line) Origin() *Station {
	return l.at(0)
}

// Terminus returns the last station, nil for an empty line
func (l *Line) Terminus() *Station {
	return l.at(len(l.stations) - 1)
}

func (l *Line) at(position int) *Station {
	if position < 0 || position >= len(l.stations) {
		return nil
	}
	return l.stations[position]
}

// Station looks a station up by name, ignoring case
func (l *Line) Station(name string) (*Station, error) {
	s, ok := l.byName[nameKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: station %q on line %s", ErrNotFound, name, l.color)
	}
	return s, nil
}

// FindTransferTo returns the first station in line order that has a transfer
// to other, together with the linked station on other. The first candidate
// wins even if a later one would give a shorter trip.
func (l *Line) FindTransferTo(other *Line) (from, to *Station, err error) {
	for _, s := range l.stations {
		if t := s.TransferTo(other); t != nil {
			return s, t, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: no transfer between lines %s and %s", ErrUnreachable, l.color, other.color)
}

// TravelTime sums the travel times between two stations of this line
func (l *Line) TravelTime(a, b *Station) (time.Duration, error) {
	if a.line != l || b.line != l {
		return 0, &PathError{Start: a.name, End: b.name}
	}
	lo, hi := a.position, b.position
	if lo > hi {
		lo, hi = hi, lo
	}
	var total time.Duration
	for _, s := range l.stations[lo:hi] {
		total += s.travelTime
	}
	return total, nil
}

func (l *Line) append(s *Station, travelTime time.Duration) {
	if prev := l.Terminus(); prev != nil {
		prev.travelTime = travelTime
	}
	l.stations = append(l.stations, s)
	l.byName[nameKey(s.name)] = s
}

func (l *Line) String() string {
	return fmt.Sprintf("%s line (%d stations)", l.color, len(l.stations))
}
