package subject

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeTheory    Type = "THEORY"
	TypePractical Type = "PRACTICAL"
	TypeTutorial  Type = "TUTORIAL"
)

type Subject struct {
	ID              string
	UserID          string
	SemesterID      string
	Name            string
	Type            Type
	TotalClasses    *int
	ClassesHeld     int
	ClassesAttended int
	CreatedAt       time.Time

	// Join
	SemesterName *string
}

// State returns the counters the projection engine works on.
func (s *Subject) State() State {
	return State{
		ClassesHeld:     s.ClassesHeld,
		ClassesAttended: s.ClassesAttended,
		TotalClasses:    s.TotalClasses,
	}
}

// IsComplete reports whether every planned class has been held.
func (s *Subject) IsComplete() bool {
	return s.TotalClasses != nil && s.ClassesHeld >= *s.TotalClasses
}

// State is the recorded attendance of a subject.
type State struct {
	ClassesHeld     int
	ClassesAttended int
	TotalClasses    *int
}

// Bounded reports whether the planned number of classes is known.
func (s State) Bounded() bool {
	return s.TotalClasses != nil && *s.TotalClasses > 0
}

// Validate checks the invariants every stored state must hold.
func (s State) Validate() error {
	if s.ClassesHeld < 0 || s.ClassesAttended < 0 {
		return ErrNegativeCount
	}
	if s.ClassesAttended > s.ClassesHeld {
		return ErrAttendedExceedsHeld
	}
	if s.TotalClasses != nil {
		if *s.TotalClasses < 1 {
			return ErrInvalidTotalClasses
		}
		if s.ClassesHeld > *s.TotalClasses {
			return ErrHeldExceedsTotal
		}
	}
	return nil
}

// Percentage is a percentage expressed in tenths, so 12.5% is Percentage(125).
type Percentage int

func (p Percentage) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -1)
}

func (p Percentage) Float64() float64 {
	return p.Decimal().InexactFloat64()
}

func (p Percentage) String() string {
	return p.Decimal().StringFixed(1)
}

// MarshalJSON always writes one fractional digit.
func (p Percentage) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// Metrics is derived from a State on every read and never stored.
type Metrics struct {
	AttendancePercentage     Percentage     `json:"attendance_percentage"`
	RemainingClasses         *int           `json:"remaining_classes"`
	CanReachTarget           bool           `json:"can_reach_target"`
	BestPossiblePercentage   Percentage     `json:"best_possible_percentage"`
	CanMiss                  int            `json:"can_miss"`
	MustAttend               int            `json:"must_attend"`
	MustAttendOutOfRemaining *RemainingPlan `json:"must_attend_out_of_remaining,omitempty"`
}

// RemainingPlan is the "X out of Y" view of a bounded subject.
type RemainingPlan struct {
	Needed     int  `json:"needed"`
	Remaining  int  `json:"remaining"`
	Impossible bool `json:"impossible"`
}
