package customer

import (
	"context"
	"regexp"
	"strings"
)

// Service holds registration business rules: field validation and email
// format checking. Email uniqueness is left to the store's unique index;
// checking it application-side would just reintroduce a race the index
// already closes.
type Service interface {
	// Register validates and persists a new customer.
	Register(ctx context.Context, name, email, phone string, addr Address) (*Customer, error)

	// FindCustomer resolves an explicit reference.
	FindCustomer(ctx context.Context, ref Ref) (*Customer, error)

	// ListCustomers returns all customers, paged.
	ListCustomers(ctx context.Context, page, pageSize int) ([]*Customer, int64, error)
}

type service struct {
	repo Repository
}

// NewService creates the customer domain service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, phone string, addr Address) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" {
		return nil, ErrMissingFields
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	c := NewCustomer(name, email, strings.TrimSpace(phone), addr)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) FindCustomer(ctx context.Context, ref Ref) (*Customer, error) {
	if ref.IsZero() {
		return nil, ErrEmptyRef
	}
	return s.repo.FindByRef(ctx, ref)
}

func (s *service) ListCustomers(ctx context.Context, page, pageSize int) ([]*Customer, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

// emailPattern is the local-part@domain.tld shape required at registration.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
