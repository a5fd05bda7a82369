package metro

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultPassCapacity is the serial number limit of a network
const DefaultPassCapacity = 10000

const serialPrefix = "a"

// Pass is a monthly travel pass
type Pass struct {
	Serial    string
	ExpiresOn time.Time
}

// ValidAt reports whether the pass is still valid on the given date
func (p Pass) ValidAt(date time.Time) bool {
	return p.ExpiresOn.After(DateOf(date))
}

type passRegistry struct {
	mu       sync.Mutex
	capacity int
	issued   int
	expiries map[string]time.Time
}

func newPassRegistry(capacity int) *passRegistry {
	return &passRegistry{
		capacity: capacity,
		expiries: make(map[string]time.Time),
	}
}

// IssuePass creates a pass valid for one month from saleDate
func (n *Network) IssuePass(saleDate time.Time) (Pass, error) {
	r := n.passes
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.issued + 1
	if next >= r.capacity {
		return Pass{}, fmt.Errorf("%w: limit of %d passes reached", ErrCapacityExhausted, r.capacity)
	}
	r.issued = next

	pass := Pass{Serial: FormatSerial(next), ExpiresOn: AddMonth(saleDate)}
	r.expiries[pass.Serial] = pass.ExpiresOn
	return pass, nil
}

// RenewPass sets the expiry of an existing pass to one month past saleDate.
// Remaining time is not carried over.
func (n *Network) RenewPass(serial string, saleDate time.Time) (Pass, error) {
	r := n.passes
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.expiries[serial]; !ok {
		return Pass{}, fmt.Errorf("%w: pass %s", ErrNotFound, serial)
	}
	pass := Pass{Serial: serial, ExpiresOn: AddMonth(saleDate)}
	r.expiries[serial] = pass.ExpiresOn
	return pass, nil
}

// IsPassValid reports whether the pass expires strictly after referenceDate
func (n *Network) IsPassValid(serial string, referenceDate time.Time) (bool, error) {
	pass, err := n.Pass(serial)
	if err != nil {
		return false, err
	}
	return pass.ValidAt(referenceDate), nil
}

// Pass returns a registered pass
func (n *Network) Pass(serial string) (Pass, error) {
	r := n.passes
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.expiries[serial]
	if !ok {
		return Pass{}, fmt.Errorf("%w: pass %s", ErrNotFound, serial)
	}
	return Pass{Serial: serial, ExpiresOn: expiry}, nil
}

// PassesIssued returns how many serial numbers have been handed out
func (n *Network) PassesIssued() int {
	n.passes.mu.Lock()
	defer n.passes.mu.Unlock()
	return n.passes.issued
}

// RestorePass registers a pass read back from storage. The serial sequence
// continues after the highest restored serial.
func (n *Network) RestorePass(pass Pass) error {
	seq, err := ParseSerial(pass.Serial)
	if err != nil {
		return err
	}

	r := n.passes
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq >= r.capacity {
		return fmt.Errorf("%w: pass %s is beyond the limit of %d", ErrCapacityExhausted, pass.Serial, r.capacity)
	}
	r.expiries[pass.Serial] = DateOf(pass.ExpiresOn)
	if seq > r.issued {
		r.issued = seq
	}
	return nil
}

// FormatSerial renders a sequence number as a pass serial, e.g. a0001
func FormatSerial(seq int) string {
	return fmt.Sprintf("%s%04d", serialPrefix, seq)
}

// ParseSerial extracts the sequence number from a pass serial
func ParseSerial(serial string) (int, error) {
	digits, ok := strings.CutPrefix(serial, serialPrefix)
	if !ok || digits == "" {
		return 0, fmt.Errorf("%w: malformed pass serial %q", ErrInvalidOperation, serial)
	}
	seq, err := strconv.Atoi(digits)
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("%w: malformed pass serial %q", ErrInvalidOperation, serial)
	}
	return seq, nil
}
