package counters

// CounterType represents a type of counter.
type CounterType string

const (
	// Power/toughness boost counters
	CounterTypeP1P1 CounterType = "+1/+1"
	CounterTypeM1M1 CounterType = "-1/-1"
	CounterTypeP1P0 CounterType = "+1/+0"
	CounterTypeP0P1 CounterType = "+0/+1"
	CounterTypeM0M1 CounterType = "-0/-1"

	// Non-boost counters used by card text
	CounterTypeCharge CounterType = "charge"
	CounterTypeGrowth CounterType = "growth"
)
