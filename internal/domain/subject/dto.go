package subject

import (
	"strings"

	"github.com/attendly/attendly-backend/internal/pkg/validator"
)

var validTypes = []string{string(TypeTheory), string(TypePractical), string(TypeTutorial)}

type CreateSubjectRequest struct {
	SemesterID      string `json:"semester_id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	TotalClasses    *int   `json:"total_classes"`
	ClassesHeld     *int   `json:"classes_held"`
	ClassesAttended *int   `json:"classes_attended"`
}

func (r *CreateSubjectRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if validator.ExceedsLength(r.Name, 255) {
		errs.Add("name", "name must not exceed 255 characters")
	}

	if validator.IsEmpty(r.SemesterID) {
		errs.Add("semester_id", "semester_id is required")
	} else if !validator.IsValidUUID(r.SemesterID) {
		errs.Add("semester_id", "semester_id must be a valid UUID")
	}

	if r.Type == "" {
		r.Type = string(TypeTheory)
	}
	if !validator.IsInSlice(r.Type, validTypes) {
		errs.Add("type", "type must be one of: THEORY, PRACTICAL, TUTORIAL")
	}

	errs = append(errs, validateCounts(r.TotalClasses, r.ClassesHeld, r.ClassesAttended)...)

	return errs.Err()
}

// State builds the initial counters. A missing or zero total means the term length is unknown.
func (r *CreateSubjectRequest) State() State {
	var state State
	if r.TotalClasses != nil && *r.TotalClasses > 0 {
		total := *r.TotalClasses
		state.TotalClasses = &total
	}
	if r.ClassesHeld != nil {
		state.ClassesHeld = *r.ClassesHeld
	}
	if r.ClassesAttended != nil {
		state.ClassesAttended = *r.ClassesAttended
	}
	return state
}

type UpdateSubjectRequest struct {
	ID              string  `json:"-"`
	Name            *string `json:"name,omitempty"`
	Type            *string `json:"type,omitempty"`
	TotalClasses    *int    `json:"total_classes,omitempty"`
	ClassesHeld     *int    `json:"classes_held,omitempty"`
	ClassesAttended *int    `json:"classes_attended,omitempty"`
}

func (r *UpdateSubjectRequest) Validate() error {
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

	if r.Type != nil && *r.Type != "" && !validator.IsInSlice(*r.Type, validTypes) {
		errs.Add("type", "type must be one of: THEORY, PRACTICAL, TUTORIAL")
	}

	return errs.Err()
}

// Apply merges the request into s. Counts are clamped at zero and a
// non-positive total clears the cap.
func (r *UpdateSubjectRequest) Apply(s *Subject) {
	if r.Name != nil && *r.Name != "" {
		s.Name = *r.Name
	}
	if r.Type != nil && *r.Type != "" {
		s.Type = Type(*r.Type)
	}
	if r.TotalClasses != nil {
		if *r.TotalClasses > 0 {
			total := *r.TotalClasses
			s.TotalClasses = &total
		} else {
			s.TotalClasses = nil
		}
	}
	if r.ClassesHeld != nil {
		s.ClassesHeld = max(0, *r.ClassesHeld)
	}
	if r.ClassesAttended != nil {
		s.ClassesAttended = max(0, *r.ClassesAttended)
	}
}

type MarkAttendanceRequest struct {
	ID       string `json:"-"`
	Attended *bool  `json:"attended"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if r.Attended == nil {
		errs.Add("attended", "attended is required")
	}

	return errs.Err()
}

type SubjectFilter struct {
	SemesterID *string `json:"semester_id,omitempty"`
}

func (f *SubjectFilter) Validate() error {
	if f.SemesterID != nil && !validator.IsValidUUID(*f.SemesterID) {
		return validator.ValidationErrors{{
			Field:   "semester_id",
			Message: "semester_id must be a valid UUID",
		}}
	}
	return nil
}

type SubjectResponse struct {
	ID              string  `json:"id"`
	SemesterID      string  `json:"semester_id"`
	SemesterName    *string `json:"semester_name,omitempty"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	TotalClasses    *int    `json:"total_classes"`
	ClassesHeld     int     `json:"classes_held"`
	ClassesAttended int     `json:"classes_attended"`
	CreatedAt       string  `json:"created_at"`
	Metrics
}

func validateCounts(total, held, attended *int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if held != nil && *held < 0 {
		errs.Add("classes_held", "classes_held must not be negative")
	}
	if attended != nil && *attended < 0 {
		errs.Add("classes_attended", "classes_attended must not be negative")
	}
	if total != nil && *total < 0 {
		errs.Add("total_classes", "total_classes must not be negative")
	}

	return errs
}
