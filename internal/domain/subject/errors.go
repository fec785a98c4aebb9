package subject

import "errors"

var (
	ErrSubjectNotFound     = errors.New("subject not found")
	ErrNegativeCount       = errors.New("class counts cannot be negative")
	ErrAttendedExceedsHeld = errors.New("classes attended cannot exceed classes held")
	ErrHeldExceedsTotal    = errors.New("classes held cannot exceed total classes in semester")
	ErrInvalidTotalClasses = errors.New("total classes must be at least 1")
	ErrTermComplete        = errors.New("all classes for this subject have been completed")
)

// Event names published when a subject changes.
const (
	EventUpdated = "subject.updated"
	EventDeleted = "subject.deleted"
)
