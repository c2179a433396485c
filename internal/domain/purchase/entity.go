package purchase

import (
	"time"
)

// Purchase is one immutable ledger entry: a customer bought a quantity of a
// book at a point in time. Price is the unit price captured at purchase
// time, so later catalog price changes never rewrite history. There is no
// update operation; entries disappear only as a cascade of customer removal.
type Purchase struct {
	ID         uint
	CustomerID uint
	BookID     uint
	Quantity   int
	UnitPrice  int64 // cents, snapshot of the book price at purchase time
	Total      int64 // cents, UnitPrice * Quantity
	CreatedAt  time.Time
	ExpiresAt  *time.Time // optional access expiry (duration in months)
}

// NewPurchase creates a ledger entry. Quantity is validated by the buy use
// case before the entry is built.
func NewPurchase(customerID, bookID uint, quantity int, unitPrice int64, months int) *Purchase {
	now := time.Now()
	p := &Purchase{
		CustomerID: customerID,
		BookID:     bookID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Total:      unitPrice * int64(quantity),
		CreatedAt:  now,
	}
	if months > 0 {
		expiry := now.AddDate(0, months, 0)
		p.ExpiresAt = &expiry
	}
	return p
}

// HistoryEntry is a ledger row joined with the book it references, for the
// per-customer purchase history report.
type HistoryEntry struct {
	PurchaseID uint
	BookID     uint
	BookTitle  string
	Quantity   int
	UnitPrice  int64
	Total      int64
	CreatedAt  time.Time
	ExpiresAt  *time.Time
}
