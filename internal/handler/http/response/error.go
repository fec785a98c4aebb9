package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendly-backend/internal/domain/auth"
	"github.com/attendly/attendly-backend/internal/domain/semester"
	"github.com/attendly/attendly-backend/internal/domain/subject"
	"github.com/attendly/attendly-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "EMAIL_TAKEN", "Email already registered")

	// Semester domain errors
	case errors.Is(err, semester.ErrSemesterNotFound):
		NotFound(w, "Semester not found")
	case errors.Is(err, semester.ErrInvalidDateRange):
		BadRequest(w, err.Error(), map[string]string{"end_date": "end_date must be after start_date"})

	// Subject domain errors
	case errors.Is(err, subject.ErrSubjectNotFound):
		NotFound(w, "Subject not found")
	case errors.Is(err, subject.ErrTermComplete):
		Conflict(w, "TERM_COMPLETE", err.Error())
	case errors.Is(err, subject.ErrNegativeCount),
		errors.Is(err, subject.ErrAttendedExceedsHeld),
		errors.Is(err, subject.ErrHeldExceedsTotal),
		errors.Is(err, subject.ErrInvalidTotalClasses):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
