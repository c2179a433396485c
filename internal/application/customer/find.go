package customer

import (
	"context"
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/domain/purchase"
)

// FindUseCase resolves a customer reference and decorates the record with
// their purchase count.
type FindUseCase struct {
	customerSvc  customer.Service
	purchaseRepo purchase.Repository
}

// NewFindUseCase creates the use case.
func NewFindUseCase(customerSvc customer.Service, purchaseRepo purchase.Repository) *FindUseCase {
	return &FindUseCase{customerSvc: customerSvc, purchaseRepo: purchaseRepo}
}

// FindResponse is the customer record with purchase activity.
type FindResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Street    string    `json:"street,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	Purchases int64     `json:"purchases"`
	CreatedAt time.Time `json:"created_at"`
}

// Execute resolves the reference (id or exact name).
func (uc *FindUseCase) Execute(ctx context.Context, ref customer.Ref) (*FindResponse, error) {
	c, err := uc.customerSvc.FindCustomer(ctx, ref)
	if err != nil {
		return nil, err
	}

	count, err := uc.purchaseRepo.CountByCustomerID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return &FindResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Street:    c.Street,
		City:      c.City,
		Country:   c.Country,
		Purchases: count,
		CreatedAt: c.CreatedAt,
	}, nil
}
