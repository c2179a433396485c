package mysql

import (
	"time"
)

// GORM models live here, separate from the domain entities; repositories
// translate between the two. This is the single canonical schema: the
// divergent legacy shapes collapse into these three tables plus staff.

// BookModel is the books table. Identifiers are assigned by nextTableID
// inside the insert transaction (not AUTO_INCREMENT) so the 101-based
// sequence survives from the legacy data. title+author carries the
// uniqueness constraint for catalog entries.
type BookModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false"`
	Title     string    `gorm:"uniqueIndex:uniq_title_author,length:191;size:200;not null"`
	Author    string    `gorm:"uniqueIndex:uniq_title_author;size:100;not null"`
	Genre     string    `gorm:"index;size:50"`
	Price     int64     `gorm:"not null"` // cents
	Stock     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// CustomerModel is the customers table; the legacy address side table is
// inlined. Email has the uniqueness index that backs registration.
type CustomerModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"index;size:100;not null"`
	Email     string `gorm:"uniqueIndex;size:100;not null"`
	Phone     string `gorm:"size:30"`
	Street    string `gorm:"size:100"`
	City      string `gorm:"size:60"`
	Country   string `gorm:"index;size:60"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CustomerModel) TableName() string {
	return "customers"
}

// PurchaseModel is the append-only purchase ledger. AUTO_INCREMENT ids,
// price snapshot at purchase time, optional access expiry. Rows are deleted
// only by the customer-removal cascade.
type PurchaseModel struct {
	ID         uint       `gorm:"primaryKey"`
	CustomerID uint       `gorm:"index;not null"`
	BookID     uint       `gorm:"index;not null"`
	Quantity   int        `gorm:"not null"`
	UnitPrice  int64      `gorm:"not null"`
	Total      int64      `gorm:"not null"`
	CreatedAt  time.Time  `gorm:"index"`
	ExpiresAt  *time.Time `gorm:""`
}

func (PurchaseModel) TableName() string {
	return "purchases"
}

// StaffModel is the admin accounts table.
type StaffModel struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:100;not null"`
	Password  string `gorm:"size:255;not null"`
	Nickname  string `gorm:"size:50;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StaffModel) TableName() string {
	return "staff"
}
