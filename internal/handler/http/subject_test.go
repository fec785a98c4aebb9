package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/attendly/attendly-backend/internal/domain/subject"
	"github.com/attendly/attendly-backend/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubjectService struct {
	subject.SubjectService
	lastFilter subject.SubjectFilter
	lastMark   subject.MarkAttendanceRequest
	lastUserID string
	err        error
}

func (s *stubSubjectService) ListSubjects(ctx context.Context, filter subject.SubjectFilter) ([]subject.SubjectResponse, error) {
	s.lastFilter = filter
	s.lastUserID, _ = jwt.UserIDFromContext(ctx)
	return []subject.SubjectResponse{}, s.err
}

func (s *stubSubjectService) CreateSubject(ctx context.Context, req subject.CreateSubjectRequest) (subject.SubjectResponse, error) {
	if err := req.Validate(); err != nil {
		return subject.SubjectResponse{}, err
	}
	return subject.SubjectResponse{ID: testSubjectID, Name: req.Name}, s.err
}

func (s *stubSubjectService) MarkAttendance(ctx context.Context, req subject.MarkAttendanceRequest) (subject.SubjectResponse, error) {
	s.lastMark = req
	if s.err != nil {
		return subject.SubjectResponse{}, s.err
	}
	if err := req.Validate(); err != nil {
		return subject.SubjectResponse{}, err
	}

	total := 40
	remaining := 39
	return subject.SubjectResponse{
		ID:              req.ID,
		TotalClasses:    &total,
		ClassesHeld:     1,
		ClassesAttended: 1,
		Metrics: subject.Metrics{
			AttendancePercentage:   1000,
			RemainingClasses:       &remaining,
			CanReachTarget:         true,
			BestPossiblePercentage: 1000,
			CanMiss:                10,
			MustAttend:             0,
			MustAttendOutOfRemaining: &subject.RemainingPlan{
				Needed:    29,
				Remaining: 39,
			},
		},
	}, nil
}

func TestSubjectHandler_ListPassesFilter(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/subjects?semester_id="+testSemesterID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, f.subjects.lastFilter.SemesterID)
	assert.Equal(t, testSemesterID, *f.subjects.lastFilter.SemesterID)
	assert.Equal(t, testUserID, f.subjects.lastUserID)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
}

func TestSubjectHandler_MarkAttendance(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPatch, "/api/v1/subjects/"+testSubjectID+"/attendance", map[string]bool{"attended": true}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, testSubjectID, f.subjects.lastMark.ID)
	require.NotNil(t, f.subjects.lastMark.Attended)
	assert.True(t, *f.subjects.lastMark.Attended)

	var body map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &body))
	assert.Equal(t, 100.0, body["attendance_percentage"])
	assert.Equal(t, true, body["can_reach_target"])
	assert.EqualValues(t, 10, body["can_miss"])
	assert.EqualValues(t, 0, body["must_attend"])
	plan, ok := body["must_attend_out_of_remaining"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 29, plan["needed"])
	assert.EqualValues(t, 39, plan["remaining"])
	assert.Equal(t, false, plan["impossible"])
}

func TestSubjectHandler_MarkAttendance_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{name: "missing attended", body: map[string]any{}, wantStatus: http.StatusUnprocessableEntity, wantCode: "VALIDATION_ERROR"},
		{name: "term complete", body: map[string]bool{"attended": false}, serviceErr: subject.ErrTermComplete, wantStatus: http.StatusConflict, wantCode: "TERM_COMPLETE"},
		{name: "not found", body: map[string]bool{"attended": true}, serviceErr: subject.ErrSubjectNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture()
			f.subjects.err = tt.serviceErr

			rec := f.do(t, http.MethodPatch, "/api/v1/subjects/"+testSubjectID+"/attendance", tt.body, true)
			require.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestSubjectHandler_Create(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/subjects", subject.CreateSubjectRequest{
		SemesterID: testSemesterID,
		Name:       "Distributed Systems",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/subjects", subject.CreateSubjectRequest{Name: "No semester"}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
