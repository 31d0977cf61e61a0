package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounters_Add(t *testing.T) {
	cs := NewCounters()
	cs.Add("Charge", 2)
	cs.Add("charge", 1)
	cs.Add("charge", 0)
	cs.Add("charge", -4)

	assert.Equal(t, 3, cs.Count("CHARGE"))
	assert.Equal(t, 3, cs.Total())
	assert.Equal(t, 0, cs.Count("time"))

	var none *Counters
	assert.Equal(t, 0, none.Count("charge"))
	assert.Equal(t, 0, none.Total())
}

func TestCounters_Boost(t *testing.T) {
	cs := NewCounters()
	cs.Add("P1P1", 3)
	cs.Add("-1/-1", 1)
	cs.Add("+1/+0", 2)
	cs.Add("loyalty", 4)

	power, toughness := cs.Boost()
	assert.Equal(t, 4, power)
	assert.Equal(t, 2, toughness)
	assert.Equal(t, 10, cs.Total())
}

func TestCounters_CopyIsIndependent(t *testing.T) {
	cs := NewCounters()
	cs.Add("time", 3)

	cpy := cs.Copy()
	cpy.Add("time", 1)

	assert.Equal(t, 3, cs.Count("time"))
	assert.Equal(t, 4, cpy.Count("time"))
}

func TestCounterType_Boost(t *testing.T) {
	_, _, ok := CounterTypeLoyalty.Boost()
	assert.False(t, ok)

	p, tough, ok := Normalize("m1m1").Boost()
	assert.True(t, ok)
	assert.Equal(t, -1, p)
	assert.Equal(t, -1, tough)
}
