package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostPaymentStack_BeginKeepsOrder(t *testing.T) {
	cps := NewCostPaymentStack()

	require.NoError(t, cps.Begin("spell-1"))
	require.NoError(t, cps.Begin("mana-1"))
	assert.Equal(t, []string{"spell-1", "mana-1"}, cps.List())

	list := cps.List()
	list[0] = "changed"
	assert.Equal(t, []string{"spell-1", "mana-1"}, cps.List())
}

func TestCostPaymentStack_RejectsReentry(t *testing.T) {
	cps := NewCostPaymentStack()

	require.NoError(t, cps.Begin("mana-1"))
	err := cps.Begin("mana-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already being paid for")

	cps.Reset()
	assert.Empty(t, cps.List())
	assert.NoError(t, cps.Begin("mana-1"))
}
