package mysql

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Legacy identifier bases. Books start at 101, customers at 201; the ranges
// predate this rewrite and live on in exported data, so they are kept.
const (
	bookIDBase     = 101
	customerIDBase = 201
)

// nextTableID returns max(id)+1 for the table, or base when it is empty.
//
// It MUST be called on a transactional handle that covers the subsequent
// insert. The max is read under SELECT ... FOR UPDATE: a plain consistent
// read takes no locks, so two concurrent creates would both see the same
// maximum and collide on the primary key. The locking read serializes them
// at the tail of the index; the loser blocks until the winner commits and
// then sees the fresh maximum. The purchase ledger does not use this, it
// rides on AUTO_INCREMENT.
func nextTableID(tx *gorm.DB, table string, base uint) (uint, error) {
	var maxID *uint
	row := tx.Table(table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("MAX(id)").
		Row()
	if err := row.Scan(&maxID); err != nil {
		return 0, fmt.Errorf("scanning max id of %s: %w", table, err)
	}
	if maxID == nil || *maxID < base {
		return base, nil
	}
	return *maxID + 1, nil
}
