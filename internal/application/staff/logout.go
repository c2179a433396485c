package staff

import (
	"context"
	"time"

	"github.com/pkozlowski/bookstore/pkg/jwt"
)

// LogoutUseCase invalidates the current access token and drops the session.
type LogoutUseCase struct {
	sessions  SessionStore
	accessTTL time.Duration
}

// NewLogoutUseCase creates the use case. sessions may be nil, in which case
// logout is a no-op and tokens simply expire.
func NewLogoutUseCase(sessions SessionStore, accessTTL time.Duration) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, accessTTL: accessTTL}
}

// Execute blacklists the token for its remaining lifetime and deletes the
// session.
func (uc *LogoutUseCase) Execute(ctx context.Context, staffID uint, token string) error {
	if uc.sessions == nil {
		return nil
	}
	if err := uc.sessions.AddToBlacklist(ctx, token, uc.accessTTL); err != nil {
		return err
	}
	return uc.sessions.DeleteSession(ctx, staffID)
}

// RefreshUseCase exchanges a refresh token for a new access token.
type RefreshUseCase struct {
	tokens *jwt.Manager
}

// NewRefreshUseCase creates the use case.
func NewRefreshUseCase(tokens *jwt.Manager) *RefreshUseCase {
	return &RefreshUseCase{tokens: tokens}
}

// RefreshResponse carries the new access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Execute validates the refresh token and issues a new access token.
func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	access, err := uc.tokens.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{AccessToken: access}, nil
}
