package staff

import (
	"context"
	"log"
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/staff"
	"github.com/pkozlowski/bookstore/pkg/jwt"
)

// SessionStore is the slice of the redis session store the auth flow needs.
// Nil-able; without it logins still work, logout only expires naturally.
type SessionStore interface {
	SaveSession(ctx context.Context, staffID uint, sessionData map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, staffID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase authenticates a staff account and issues tokens.
type LoginUseCase struct {
	staffSvc   staff.Service
	tokens     *jwt.Manager
	sessions   SessionStore
	refreshTTL time.Duration
}

// NewLoginUseCase creates the use case. sessions may be nil.
func NewLoginUseCase(staffSvc staff.Service, tokens *jwt.Manager, sessions SessionStore, refreshTTL time.Duration) *LoginUseCase {
	return &LoginUseCase{
		staffSvc:   staffSvc,
		tokens:     tokens,
		sessions:   sessions,
		refreshTTL: refreshTTL,
	}
}

// LoginResponse is the token pair plus the account it belongs to.
type LoginResponse struct {
	StaffID  uint           `json:"staff_id"`
	Email    string         `json:"email"`
	Nickname string         `json:"nickname"`
	Tokens   *jwt.TokenPair `json:"tokens"`
}

// Execute verifies the credentials, issues a token pair and records the
// session. Session recording is best effort; a redis outage must not lock
// staff out.
func (uc *LoginUseCase) Execute(ctx context.Context, email, password string) (*LoginResponse, error) {
	account, err := uc.staffSvc.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	pair, err := uc.tokens.GenerateToken(account.ID, account.Email, account.Nickname)
	if err != nil {
		return nil, err
	}

	if uc.sessions != nil {
		session := map[string]interface{}{
			"email":    account.Email,
			"login_at": time.Now().Format(time.RFC3339),
		}
		if err := uc.sessions.SaveSession(ctx, account.ID, session, uc.refreshTTL); err != nil {
			log.Printf("[auth] saving session for staff %d: %v", account.ID, err)
		}
	}

	return &LoginResponse{
		StaffID:  account.ID,
		Email:    account.Email,
		Nickname: account.Nickname,
		Tokens:   pair,
	}, nil
}
