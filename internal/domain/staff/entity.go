package staff

import (
	"time"
)

// Staff is an administrator account for the management panel. Password holds
// a bcrypt hash; the plaintext never leaves the service layer.
type Staff struct {
	ID        uint
	Email     string
	Password  string // bcrypt hash
	Nickname  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStaff creates a staff entity from an already-hashed password.
func NewStaff(email, hashedPassword, nickname string) *Staff {
	now := time.Now()
	return &Staff{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
