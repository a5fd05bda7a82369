package metro

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Network owns the lines of one city metro, the tariff and the pass registry
type Network struct {
	city     string
	lines    map[LineColor]*Line
	order    []LineColor
	stations map[string]*Station
	pending  map[string][]pendingTransfer
	tariff   Tariff
	passes   *passRegistry
}

type pendingTransfer struct {
	from  *Station
	color LineColor
}

// Option configures a Network at construction
type Option func(*Network)

// WithTariff overrides the default prices
func WithTariff(t Tariff) Option {
	return func(n *Network) {
		n.tariff = t
	}
}

// WithPassCapacity overrides the pass serial number limit
func WithPassCapacity(capacity int) Option {
	return func(n *Network) {
		n.passes.capacity = capacity
	}
}

// NewNetwork creates an empty network for a city
func NewNetwork(city string, opts ...Option) *Network {
	n := &Network{
		city:     city,
		lines:    make(map[LineColor]*Line),
		stations: make(map[string]*Station),
		pending:  make(map[string][]pendingTransfer),
		tariff:   DefaultTariff(),
		passes:   newPassRegistry(DefaultPassCapacity),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// City returns the city name
func (n *Network) City() string {
	return n.city
}

// Tariff returns the prices in effect
func (n *Network) Tariff() Tariff {
	return n.tariff
}

// AddLine registers a new line
func (n *Network) AddLine(color LineColor) error {
	if !color.Valid() {
		return fmt.Errorf("%w: unknown line color %q", ErrInvalidConstruction, color)
	}
	if _, exists := n.lines[color]; exists {
		return fmt.Errorf("%w: line %s already exists", ErrInvalidConstruction, color)
	}
	n.lines[color] = newLine(n, color)
	n.order = append(n.order, color)
	return nil
}

// AddFirstStation sets the origin station of an empty line
func (n *Network) AddFirstStation(color LineColor, name string, transfers ...TransferTarget) error {
	line, err := n.Line(color)
	if err != nil {
		return err
	}
	if err := n.checkStationName(name); err != nil {
		return err
	}
	if line.Len() > 0 {
		return fmt.Errorf("%w: line %s already has a first station", ErrInvalidConstruction, color)
	}
	if err := n.checkTransfers(color, name, transfers); err != nil {
		return err
	}

	n.register(line, name, 0, transfers)
	return nil
}

// AddLastStation appends a station after the current terminus of a line
func (n *Network) AddLastStation(color LineColor, name string, travelTime time.Duration, transfers ...TransferTarget) error {
	line, err := n.Line(color)
	if err != nil {
		return err
	}
	if err := n.checkStationName(name); err != nil {
		return err
	}
	previous := line.Terminus()
	if previous == nil {
		return fmt.Errorf("%w: line %s has no stations", ErrInvalidConstruction, color)
	}
	if previous.Next() != nil {
		return fmt.Errorf("%w: station %s already has a next station", ErrInvalidConstruction, previous.name)
	}
	if travelTime <= 0 {
		return fmt.Errorf("%w: travel time to %s must be greater than zero", ErrInvalidConstruction, name)
	}
	if err := n.checkTransfers(color, name, transfers); err != nil {
		return err
	}

	n.register(line, name, travelTime, transfers)
	return nil
}

func (n *Network) checkStationName(name string) error {
	key := nameKey(name)
	if key == "" {
		return fmt.Errorf("%w: station name is empty", ErrInvalidConstruction)
	}
	if _, exists := n.stations[key]; exists {
		return fmt.Errorf("%w: station %s already exists", ErrInvalidConstruction, name)
	}
	return nil
}

func (n *Network) checkTransfers(color LineColor, name string, transfers []TransferTarget) error {
	for _, t := range transfers {
		if !t.Color.Valid() {
			return fmt.Errorf("%w: transfer from %s to unknown line %q", ErrInvalidConstruction, name, t.Color)
		}
		if t.Color == color {
			return fmt.Errorf("%w: transfer from %s to its own line %s", ErrInvalidConstruction, name, color)
		}
		if nameKey(t.Name) == "" {
			return fmt.Errorf("%w: transfer from %s has no target name", ErrInvalidConstruction, name)
		}
		if target, ok := n.stations[nameKey(t.Name)]; ok && target.line.color != t.Color {
			return fmt.Errorf("%w: transfer target %s is on line %s, not %s",
				ErrInvalidConstruction, target.name, target.line.color, t.Color)
		}
	}
	return nil
}

// register mutates the network; all checks must have passed
func (n *Network) register(line *Line, name string, travelTime time.Duration, transfers []TransferTarget) {
	s := newStation(name, line, line.Len())
	line.append(s, travelTime)

	key := nameKey(name)
	n.stations[key] = s

	// declarations made before this station existed
	var unresolved []pendingTransfer
	for _, p := range n.pending[key] {
		if p.color == line.color {
			link(p.from, s)
		} else {
			unresolved = append(unresolved, p)
		}
	}
	if len(unresolved) > 0 {
		n.pending[key] = unresolved
	} else {
		delete(n.pending, key)
	}

	for _, t := range transfers {
		if target, ok := n.stations[nameKey(t.Name)]; ok {
			link(s, target)
			continue
		}
		n.pending[nameKey(t.Name)] = append(n.pending[nameKey(t.Name)], pendingTransfer{from: s, color: t.Color})
	}
}

func link(a, b *Station) {
	if !a.linkedTo(b) {
		a.transfers = append(a.transfers, b)
	}
	if !b.linkedTo(a) {
		b.transfers = append(b.transfers, a)
	}
}

// Validate checks that every declared transfer was resolved and that the
// transfer relation is symmetric.
func (n *Network) Validate() error {
	var problems []string

	keys := make([]string, 0, len(n.pending))
	for key := range n.pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, p := range n.pending[key] {
			problems = append(problems, fmt.Sprintf("%s -> %s/%s", p.from.name, p.color, key))
		}
	}

	for _, color := range n.order {
		for _, s := range n.lines[color].stations {
			for _, t := range s.transfers {
				if !t.linkedTo(s) {
					problems = append(problems, fmt.Sprintf("%s -> %s is one-way", s.name, t.name))
				}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: unresolved transfers: %s", ErrInvalidConstruction, strings.Join(problems, "; "))
	}
	return nil
}

// Line returns the line of the given color
func (n *Network) Line(color LineColor) (*Line, error) {
	line, ok := n.lines[color]
	if !ok {
		return nil, fmt.Errorf("%w: line %s", ErrNotFound, color)
	}
	return line, nil
}

// Lines returns all lines in registration order
func (n *Network) Lines() []*Line {
	out := make([]*Line, 0, len(n.order))
	for _, color := range n.order {
		out = append(out, n.lines[color])
	}
	return out
}

// Station looks a station up on a given line
func (n *Network) Station(color LineColor, name string) (*Station, error) {
	line, err := n.Line(color)
	if err != nil {
		return nil, err
	}
	return line.Station(name)
}

// FindStation looks a station up by name across all lines, ignoring case
func (n *Network) FindStation(name string) (*Station, error) {
	s, ok := n.stations[nameKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: station %q", ErrNotFound, name)
	}
	return s, nil
}

func (n *Network) String() string {
	return fmt.Sprintf("%s metro (%d lines)", n.city, len(n.order))
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
