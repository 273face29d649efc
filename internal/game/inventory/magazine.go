package inventory

import "fmt"

// Magazine holds the rounds loaded into one firearm.
// Invariant: 0 <= Loaded <= Capacity.
type Magazine struct {
	Loaded   int
	Capacity int
}

// NewMagazine returns a fully loaded Magazine.
//
// Precondition: capacity > 0 (panics otherwise).
func NewMagazine(capacity int) *Magazine {
	if capacity <= 0 {
		panic(fmt.Sprintf("inventory: NewMagazine: capacity must be > 0, got %d", capacity))
	}
	return &Magazine{Loaded: capacity, Capacity: capacity}
}

// Draw removes up to n rounds and returns how many were removed.
// A burst longer than what remains fires the remainder.
//
// Postcondition: 0 <= result <= max(n, 0) and Loaded decreased by result.
func (m *Magazine) Draw(n int) int {
	if n <= 0 || m.Loaded <= 0 {
		return 0
	}
	drawn := min(n, m.Loaded)
	m.Loaded -= drawn
	return drawn
}

// Missing returns the rounds needed to fill the magazine.
func (m *Magazine) Missing() int { return m.Capacity - m.Loaded }

// IsEmpty reports whether no rounds are loaded.
func (m *Magazine) IsEmpty() bool { return m.Loaded <= 0 }

// IsFull reports whether Loaded == Capacity.
func (m *Magazine) IsFull() bool { return m.Loaded >= m.Capacity }

// Refill loads the magazine to capacity and returns the rounds added.
func (m *Magazine) Refill() int {
	added := m.Missing()
	m.Loaded = m.Capacity
	return added
}
