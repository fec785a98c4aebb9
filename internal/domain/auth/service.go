package auth

import (
	"context"

	"github.com/attendly/attendly-backend/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (user.UserResponse, error)
}
