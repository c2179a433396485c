package staff

import (
	"context"
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/staff"
)

// RegisterUseCase creates a staff account.
type RegisterUseCase struct {
	staffSvc staff.Service
}

// NewRegisterUseCase creates the use case.
func NewRegisterUseCase(staffSvc staff.Service) *RegisterUseCase {
	return &RegisterUseCase{staffSvc: staffSvc}
}

// RegisterRequest carries the new account credentials.
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
}

// RegisterResponse returns the created account, never the password hash.
type RegisterResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// Execute validates, hashes and persists the account.
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	account, err := uc.staffSvc.Register(ctx, req.Email, req.Password, req.Nickname)
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{
		ID:        account.ID,
		Email:     account.Email,
		Nickname:  account.Nickname,
		CreatedAt: account.CreatedAt,
	}, nil
}
