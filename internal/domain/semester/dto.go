package semester

import (
	"strings"
	"time"

	"github.com/attendly/attendly-backend/internal/pkg/validator"
)

type CreateSemesterRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // YYYY-MM-DD or RFC3339
	EndDate   string `json:"end_date"`   // YYYY-MM-DD or RFC3339

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateSemesterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if validator.ExceedsLength(r.Name, 255) {
		errs.Add("name", "name must not exceed 255 characters")
	}

	var startOK, endOK bool
	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	} else if r.Start, startOK = parseDate(r.StartDate); !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}

	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	} else if r.End, endOK = parseDate(r.EndDate); !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if startOK && endOK && !r.End.After(r.Start) {
		errs.Add("end_date", "end_date must be after start_date")
	}

	return errs.Err()
}

type UpdateSemesterRequest struct {
	ID        string  `json:"-"`
	Name      *string `json:"name,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	Start *time.Time `json:"-"`
	End   *time.Time `json:"-"`
}

func (r *UpdateSemesterRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		if validator.ExceedsLength(trimmed, 255) {
			errs.Add("name", "name must not exceed 255 characters")
		}
	}

	if r.StartDate != nil && *r.StartDate != "" {
		if start, ok := parseDate(*r.StartDate); ok {
			r.Start = &start
		} else {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}

	if r.EndDate != nil && *r.EndDate != "" {
		if end, ok := parseDate(*r.EndDate); ok {
			r.End = &end
		} else {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

// Apply merges the request into s and re-checks the date range.
func (r *UpdateSemesterRequest) Apply(s *Semester) error {
	if r.Name != nil && *r.Name != "" {
		s.Name = *r.Name
	}
	if r.Start != nil {
		s.StartDate = *r.Start
	}
	if r.End != nil {
		s.EndDate = *r.End
	}
	if !s.EndDate.After(s.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

type SemesterResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	CreatedAt string `json:"created_at"`
}

// parseDate accepts YYYY-MM-DD or RFC3339 and keeps only the calendar day,
// since semesters are stored as DATE columns.
func parseDate(s string) (time.Time, bool) {
	if t, ok := validator.IsValidDate(s); ok {
		return t, true
	}
	t, ok := validator.IsValidDateTime(s)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
