package customer

import (
	"time"
)

// Customer is the registry aggregate root. Email is the business-unique
// field (enforced by the store's unique index). The address lives inline on
// the customer row; the legacy side table brought nothing but joins.
type Customer struct {
	ID        uint
	Name      string
	Email     string
	Phone     string // optional
	Street    string // optional
	City      string // optional
	Country   string // optional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address groups the optional postal fields at registration time.
type Address struct {
	Street  string
	City    string
	Country string
}

// NewCustomer creates a customer entity; validation happens in the service.
func NewCustomer(name, email, phone string, addr Address) *Customer {
	now := time.Now()
	return &Customer{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Street:    addr.Street,
		City:      addr.City,
		Country:   addr.Country,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateContact replaces the optional contact fields that are non-empty.
func (c *Customer) UpdateContact(phone string, addr Address) {
	if phone != "" {
		c.Phone = phone
	}
	if addr.Street != "" {
		c.Street = addr.Street
	}
	if addr.City != "" {
		c.City = addr.City
	}
	if addr.Country != "" {
		c.Country = addr.Country
	}
	c.UpdatedAt = time.Now()
}
