package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/attendly/attendly-backend/internal/domain/auth"
	"github.com/attendly/attendly-backend/internal/domain/semester"
	"github.com/attendly/attendly-backend/internal/domain/subject"
	"github.com/attendly/attendly-backend/internal/domain/user"
	"github.com/attendly/attendly-backend/internal/pkg/jwt"
	"github.com/attendly/attendly-backend/internal/pkg/sse"
	"github.com/attendly/attendly-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	testUserID        = "01923f6e-0000-7000-8000-000000000001"
	testSubjectID     = "01923f6e-0000-7000-8000-0000000000aa"
	testSemesterID    = "01923f6e-0000-7000-8000-0000000000bb"
)

type routerFixture struct {
	router     *chi.Mux
	hub        *sse.Hub
	jwtService jwt.Service
	auth       *stubAuthService
	semesters  *stubSemesterService
	subjects   *stubSubjectService
}

func newRouterFixture() routerFixture {
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	f := routerFixture{
		hub:        sse.NewHub(),
		jwtService: jwtService,
		auth:       &stubAuthService{me: user.UserResponse{Email: "me@example.com"}},
		semesters:  &stubSemesterService{},
		subjects:   &stubSubjectService{},
	}
	f.router = NewRouter(
		RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewAuthHandler(jwtService, f.auth),
		NewSemesterHandler(f.semesters),
		NewSubjectHandler(f.subjects),
		NewEventsHandler(f.hub),
	)
	return f
}

func (f routerFixture) do(t *testing.T, method, target string, body any, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		token, _, err := f.jwtService.GenerateAccessToken(testUserID, "me@example.com")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int64 `json:"total_items"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/subjects", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/auth/me", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RejectsRefreshTokenAsBearer(t *testing.T) {
	f := newRouterFixture()

	refreshToken, _, err := f.jwtService.GenerateRefreshToken(testUserID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/subjects", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleError_Mapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: validator.ValidationErrors{{Field: "name", Message: "name is required"}}, wantStatus: http.StatusUnprocessableEntity},
		{err: subject.ErrAttendedExceedsHeld, wantStatus: http.StatusBadRequest},
		{err: subject.ErrHeldExceedsTotal, wantStatus: http.StatusBadRequest},
		{err: semester.ErrInvalidDateRange, wantStatus: http.StatusBadRequest},
		{err: auth.ErrEmailAlreadyExists, wantStatus: http.StatusConflict},
		{err: auth.ErrRefreshTokenRevoked, wantStatus: http.StatusUnauthorized},
		{err: context.DeadlineExceeded, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			f := newRouterFixture()
			f.subjects.err = tt.err

			rec := f.do(t, http.MethodGet, "/api/v1/subjects", nil, true)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
