package customer

import (
	"strconv"
	"strings"
)

// Ref identifies a customer by numeric identifier or by display name, as an
// explicit variant rather than a string-shape guess.
type Ref struct {
	id   uint
	name string
	byID bool
}

// ByID references a customer by identifier.
func ByID(id uint) Ref {
	return Ref{id: id, byID: true}
}

// ByName references a customer by exact display name.
func ByName(name string) Ref {
	return Ref{name: name}
}

// IsID reports whether the reference is by identifier.
func (r Ref) IsID() bool { return r.byID }

// ID returns the identifier; only meaningful when IsID is true.
func (r Ref) ID() uint { return r.id }

// Name returns the display name; only meaningful when IsID is false.
func (r Ref) Name() string { return r.name }

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool { return !r.byID && r.name == "" }

func (r Ref) String() string {
	if r.byID {
		return "id:" + strconv.FormatUint(uint64(r.id), 10)
	}
	return "name:" + r.name
}

// ParseRef applies the legacy digits-means-id classification for
// single-field inputs at the presentation edge.
func ParseRef(s string) Ref {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}
	}
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return ByID(uint(n))
	}
	return ByName(s)
}
