package semester

import "errors"

var (
	ErrSemesterNotFound = errors.New("semester not found")
	ErrInvalidDateRange = errors.New("end date must be after start date")
)

// EventDeleted is published after a semester and its subjects are removed.
const EventDeleted = "semester.deleted"
