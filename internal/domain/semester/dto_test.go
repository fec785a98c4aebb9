package semester

import (
	"testing"
	"time"

	"github.com/attendly/attendly-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func TestCreateSemesterRequest_Validate(t *testing.T) {
	t.Run("valid dates are parsed", func(t *testing.T) {
		req := CreateSemesterRequest{Name: " Fall 2025 ", StartDate: "2025-08-01", EndDate: "2025-12-15"}

		require.NoError(t, req.Validate())
		assert.Equal(t, "Fall 2025", req.Name)
		assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), req.Start)
		assert.Equal(t, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), req.End)
	})

	t.Run("rfc3339 accepted", func(t *testing.T) {
		req := CreateSemesterRequest{Name: "Spring", StartDate: "2026-01-10T00:00:00Z", EndDate: "2026-05-30T00:00:00Z"}

		assert.NoError(t, req.Validate())
		assert.Equal(t, time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC), req.End)
	})

	t.Run("times on the same day", func(t *testing.T) {
		req := CreateSemesterRequest{Name: "Same day", StartDate: "2025-01-01T08:00:00Z", EndDate: "2025-01-01T12:00:00Z"}

		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Equal(t, "end_date must be after start_date", errs.ToMap()["end_date"])
	})

	t.Run("end before start", func(t *testing.T) {
		req := CreateSemesterRequest{Name: "Backwards", StartDate: "2025-12-15", EndDate: "2025-08-01"}

		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Equal(t, "end_date must be after start_date", errs.ToMap()["end_date"])
	})

	t.Run("same day is rejected", func(t *testing.T) {
		req := CreateSemesterRequest{Name: "One day", StartDate: "2025-08-01", EndDate: "2025-08-01"}

		assert.Error(t, req.Validate())
	})

	t.Run("missing fields", func(t *testing.T) {
		req := CreateSemesterRequest{}

		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		fields := errs.ToMap()
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "start_date")
		assert.Contains(t, fields, "end_date")
	})

	t.Run("bad date format", func(t *testing.T) {
		req := CreateSemesterRequest{Name: "Typo", StartDate: "01/08/2025", EndDate: "2025-12-15"}

		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "start_date")
	})
}

func TestUpdateSemesterRequest_Apply(t *testing.T) {
	current := func() Semester {
		return Semester{
			Name:      "Fall 2025",
			StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		s := current()
		req := UpdateSemesterRequest{ID: "01923f6e-8c3a-7b2e-9d4f-5a6b7c8d9e0f", EndDate: strPtr("2026-01-10")}
		require.NoError(t, req.Validate())

		require.NoError(t, req.Apply(&s))
		assert.Equal(t, "Fall 2025", s.Name)
		assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), s.EndDate)
	})

	t.Run("merged range is re-checked", func(t *testing.T) {
		s := current()
		req := UpdateSemesterRequest{ID: "01923f6e-8c3a-7b2e-9d4f-5a6b7c8d9e0f", StartDate: strPtr("2026-02-01")}
		require.NoError(t, req.Validate())

		assert.ErrorIs(t, req.Apply(&s), ErrInvalidDateRange)
	})

	t.Run("end time on the start day is rejected", func(t *testing.T) {
		s := current()
		req := UpdateSemesterRequest{ID: "01923f6e-8c3a-7b2e-9d4f-5a6b7c8d9e0f", EndDate: strPtr("2025-08-01T23:59:00+07:00")}
		require.NoError(t, req.Validate())

		assert.ErrorIs(t, req.Apply(&s), ErrInvalidDateRange)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := UpdateSemesterRequest{ID: "abc"}

		assert.Error(t, req.Validate())
	})
}
