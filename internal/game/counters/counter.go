package counters

// Counters manages the counters on a single card.
type Counters struct {
	counts map[CounterType]int
}

// NewCounters creates an empty collection.
func NewCounters() *Counters {
	return &Counters{counts: make(map[CounterType]int)}
}

// Add puts amount counters of the named type on the card. Non-positive
// amounts are ignored.
func (cs *Counters) Add(name string, amount int) {
	if amount <= 0 {
		return
	}
	cs.counts[Normalize(name)] += amount
}

// Count returns the number of counters of the named type.
func (cs *Counters) Count(name string) int {
	if cs == nil {
		return 0
	}
	return cs.counts[Normalize(name)]
}

// Total returns the number of counters of every type.
func (cs *Counters) Total() int {
	if cs == nil {
		return 0
	}
	total := 0
	for _, n := range cs.counts {
		total += n
	}
	return total
}

// Boost sums the power/toughness change of all boost counters.
func (cs *Counters) Boost() (power, toughness int) {
	if cs == nil {
		return 0, 0
	}
	for ct, n := range cs.counts {
		if p, t, ok := ct.Boost(); ok {
			power += p * n
			toughness += t * n
		}
	}
	return power, toughness
}

// Copy creates a deep copy of the collection.
func (cs *Counters) Copy() *Counters {
	cpy := NewCounters()
	if cs == nil {
		return cpy
	}
	for ct, n := range cs.counts {
		cpy.counts[ct] = n
	}
	return cpy
}
