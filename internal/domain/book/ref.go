package book

import (
	"strconv"
	"strings"
)

// Ref identifies a book either by numeric identifier or by title. The two
// cases are explicit variants instead of a digits-string heuristic, so a
// title that happens to be all digits can still be addressed as a title.
type Ref struct {
	id    uint
	title string
	byID  bool
}

// ByID references a book by its identifier.
func ByID(id uint) Ref {
	return Ref{id: id, byID: true}
}

// ByTitle references a book by exact or partial title.
func ByTitle(title string) Ref {
	return Ref{title: title}
}

// IsID reports whether the reference is by identifier.
func (r Ref) IsID() bool { return r.byID }

// ID returns the identifier; only meaningful when IsID is true.
func (r Ref) ID() uint { return r.id }

// Title returns the title; only meaningful when IsID is false.
func (r Ref) Title() string { return r.title }

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool { return !r.byID && r.title == "" }

func (r Ref) String() string {
	if r.byID {
		return "id:" + strconv.FormatUint(uint64(r.id), 10)
	}
	return "title:" + r.title
}

// ParseRef classifies a raw string the way the legacy interface did:
// all-digits means identifier, anything else means title. Presentation
// layers use this for single-field inputs; a purely numeric title is
// misclassified here and must be addressed with ByTitle explicitly.
func ParseRef(s string) Ref {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}
	}
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return ByID(uint(n))
	}
	return ByTitle(s)
}
