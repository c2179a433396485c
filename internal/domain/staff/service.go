package staff

import (
	"context"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// Service covers staff account rules: email/password validation, bcrypt
// hashing on registration, hash comparison on login. Email uniqueness is
// the store's unique index, mapped by the repository.
type Service interface {
	Register(ctx context.Context, email, password, nickname string) (*Staff, error)
	Login(ctx context.Context, email, password string) (*Staff, error)
}

type service struct {
	repo Repository
}

// NewService creates the staff domain service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password, nickname string) (*Staff, error) {
	if !emailPattern.MatchString(email) {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid email address")
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}
	if len(nickname) < 2 || len(nickname) > 50 {
		return nil, apperrors.New(apperrors.CodeValidation, "nickname must be 2-50 characters")
	}

	// bcrypt salts internally; cost 12 balances hardness against login
	// latency.
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "hashing password failed")
	}

	account := NewStaff(email, string(hashed), nickname)
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Staff, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "password verification failed")
	}
	return account, nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return ErrWeakPassword
	}
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
