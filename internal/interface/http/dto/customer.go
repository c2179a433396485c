package dto

import (
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/customer"
)

// RegisterCustomerRequest is the customer registration payload.
type RegisterCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// CustomerResponse is the registry record as rendered to clients.
type CustomerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Street    string    `json:"street,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCustomerResponse converts a domain customer.
func NewCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Street:    c.Street,
		City:      c.City,
		Country:   c.Country,
		CreatedAt: c.CreatedAt,
	}
}

// NewCustomerListResponse converts a page of domain customers.
func NewCustomerListResponse(customers []*customer.Customer) []*CustomerResponse {
	out := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = NewCustomerResponse(c)
	}
	return out
}
