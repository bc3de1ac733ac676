package types

import "fmt"

// Interval is the closed bound [LB,UB] attached to every temporal operator.
// Invariant I2 requires LB <= UB and LB >= 0 for any interval reachable
// past type checking.
type Interval struct {
	LB int
	UB int
}

func NewInterval(lb, ub int) Interval {
	return Interval{LB: lb, UB: ub}
}

func (i Interval) Valid() bool {
	return i.LB >= 0 && i.LB <= i.UB
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d,%d]", i.LB, i.UB)
}

func (i Interval) Equal(other Interval) bool {
	return i.LB == other.LB && i.UB == other.UB
}

// Width is the number of time steps spanned by the interval.
func (i Interval) Width() int {
	return i.UB - i.LB
}

// Union returns the smallest interval containing both i and other, used by
// the rewrite optimizer's interval-coalescing rules.
func (i Interval) Union(other Interval) Interval {
	lb := i.LB
	if other.LB < lb {
		lb = other.LB
	}
	ub := i.UB
	if other.UB > ub {
		ub = other.UB
	}
	return Interval{LB: lb, UB: ub}
}
