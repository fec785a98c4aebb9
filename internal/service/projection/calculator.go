package projection

import (
	"errors"

	"github.com/attendly/attendly-backend/internal/domain/subject"
)

// DefaultTarget is the minimum attendance percentage a subject must keep.
const DefaultTarget = 75

var ErrInvalidTarget = errors.New("target percentage must be between 1 and 99")

// Calculator derives attendance metrics from a subject's counters.
// All arithmetic is done on integers so results are exact.
type Calculator struct {
	target int
}

func NewCalculator(target int) (*Calculator, error) {
	if target < 1 || target > 99 {
		return nil, ErrInvalidTarget
	}
	return &Calculator{target: target}, nil
}

func (c *Calculator) Target() int {
	return c.target
}

// Calculate returns every derived metric for state. state must satisfy State.Validate.
func (c *Calculator) Calculate(state subject.State) subject.Metrics {
	m := subject.Metrics{
		AttendancePercentage:   c.Percentage(state),
		RemainingClasses:       c.Remaining(state),
		CanReachTarget:         c.CanReachTarget(state),
		BestPossiblePercentage: c.BestPossiblePercentage(state),
		CanMiss:                c.CanMiss(state),
		MustAttend:             c.MustAttend(state),
	}
	if state.Bounded() {
		m.MustAttendOutOfRemaining = c.remainingPlan(state)
	}
	return m
}

// Percentage is attended over total when the total is known, otherwise over held.
func (c *Calculator) Percentage(state subject.State) subject.Percentage {
	if state.Bounded() {
		return round1(state.ClassesAttended, *state.TotalClasses)
	}
	if state.ClassesHeld == 0 {
		return 0
	}
	return round1(state.ClassesAttended, state.ClassesHeld)
}

// Remaining is nil when the total is unknown.
func (c *Calculator) Remaining(state subject.State) *int {
	if !state.Bounded() {
		return nil
	}
	remaining := c.remaining(state)
	return &remaining
}

func (c *Calculator) CanReachTarget(state subject.State) bool {
	if !state.Bounded() {
		return true
	}
	maxAttended := state.ClassesAttended + c.remaining(state)
	return maxAttended*100 >= c.target*(*state.TotalClasses)
}

func (c *Calculator) BestPossiblePercentage(state subject.State) subject.Percentage {
	if !state.Bounded() {
		return 1000
	}
	return round1(state.ClassesAttended+c.remaining(state), *state.TotalClasses)
}

// CanMiss is how many classes may still be skipped. When the total is known it
// never exceeds the classes left to hold.
func (c *Calculator) CanMiss(state subject.State) int {
	if state.Bounded() {
		canMiss := state.ClassesAttended - c.requiredAttendance(*state.TotalClasses)
		return min(max(canMiss, 0), c.remaining(state))
	}

	// floor(attended - target/100*held), scaled by 100
	surplus := 100*state.ClassesAttended - c.target*state.ClassesHeld
	if surplus <= 0 {
		return 0
	}
	return surplus / 100
}

// MustAttend is how many consecutive classes must be attended to reach the
// target. For a bounded subject that cannot reach it, the result is the
// number of classes left; pair it with CanReachTarget.
func (c *Calculator) MustAttend(state subject.State) int {
	if c.Percentage(state) >= subject.Percentage(c.target*10) {
		return 0
	}

	if state.Bounded() {
		stillNeed := c.requiredAttendance(*state.TotalClasses) - state.ClassesAttended
		return min(stillNeed, c.remaining(state))
	}

	// smallest x with (attended+x)/(held+x) >= target/100
	numerator := c.target*state.ClassesHeld - 100*state.ClassesAttended
	if numerator <= 0 {
		return 0
	}
	return ceilDiv(numerator, 100-c.target)
}

func (c *Calculator) remainingPlan(state subject.State) *subject.RemainingPlan {
	remaining := c.remaining(state)
	stillNeed := max(0, c.requiredAttendance(*state.TotalClasses)-state.ClassesAttended)
	return &subject.RemainingPlan{
		Needed:     min(stillNeed, remaining),
		Remaining:  remaining,
		Impossible: stillNeed > remaining,
	}
}

func (c *Calculator) remaining(state subject.State) int {
	return max(0, *state.TotalClasses-state.ClassesHeld)
}

// requiredAttendance is ceil(target/100 * total).
func (c *Calculator) requiredAttendance(total int) int {
	return ceilDiv(c.target*total, 100)
}

// round1 returns num/den*100 rounded half-up to one decimal, in tenths.
func round1(num, den int) subject.Percentage {
	return subject.Percentage((2000*num + den) / (2 * den))
}

func ceilDiv(num, den int) int {
	return (num + den - 1) / den
}
