package rules

import (
	"fmt"
	"sync"
)

// CostPaymentStack tracks the abilities whose costs are currently being paid,
// innermost last. Per Rule 605.3c a mana ability that is being activated
// can't be activated again until it has resolved, so a payment for an ability
// already on the stack is refused.
type CostPaymentStack struct {
	mu      sync.RWMutex
	paying  []string
	members map[string]bool
}

// NewCostPaymentStack creates an empty cost payment stack.
func NewCostPaymentStack() *CostPaymentStack {
	return &CostPaymentStack{
		paying:  make([]string, 0, 4),
		members: make(map[string]bool),
	}
}

// Begin marks the start of paying the costs of an ability.
func (cps *CostPaymentStack) Begin(abilityID string) error {
	cps.mu.Lock()
	defer cps.mu.Unlock()

	if cps.members[abilityID] {
		return fmt.Errorf("ability %s is already being paid for", abilityID)
	}
	cps.paying = append(cps.paying, abilityID)
	cps.members[abilityID] = true
	return nil
}

// List returns a copy of the ability ids being paid for (innermost last).
func (cps *CostPaymentStack) List() []string {
	cps.mu.RLock()
	defer cps.mu.RUnlock()
	cpy := make([]string, len(cps.paying))
	copy(cpy, cps.paying)
	return cpy
}

// Reset abandons every payment in progress.
func (cps *CostPaymentStack) Reset() {
	cps.mu.Lock()
	defer cps.mu.Unlock()
	cps.paying = cps.paying[:0]
	cps.members = make(map[string]bool)
}
