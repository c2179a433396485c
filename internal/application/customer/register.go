package customer

import (
	"context"
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/customer"
)

// RegisterUseCase creates a customer record.
type RegisterUseCase struct {
	customerSvc customer.Service
}

// NewRegisterUseCase creates the use case.
func NewRegisterUseCase(customerSvc customer.Service) *RegisterUseCase {
	return &RegisterUseCase{customerSvc: customerSvc}
}

// RegisterRequest carries the new customer. Name and email are required;
// the rest is optional.
type RegisterRequest struct {
	Name    string
	Email   string
	Phone   string
	Street  string
	City    string
	Country string
}

// RegisterResponse returns the assigned identifier with the stored fields.
type RegisterResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Street    string    `json:"street,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Execute validates and persists the customer. Email uniqueness is the
// store's unique index; duplicates surface as a conflict error.
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	addr := customer.Address{
		Street:  req.Street,
		City:    req.City,
		Country: req.Country,
	}
	c, err := uc.customerSvc.Register(ctx, req.Name, req.Email, req.Phone, addr)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Street:    c.Street,
		City:      c.City,
		Country:   c.Country,
		CreatedAt: c.CreatedAt,
	}, nil
}
