package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pkozlowski/bookstore/internal/application/report"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// reportRepository implements the read-only report queries. Popularity and
// revenue aggregate over the purchases table; the legacy per-customer text
// files are gone and nothing here reads outside the store.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates the report repository.
func NewReportRepository(db *gorm.DB) report.Repository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Totals(ctx context.Context) (*report.Totals, error) {
	db := dbFromContext(ctx, r.db)
	var t report.Totals

	if err := db.Model(&BookModel{}).Count(&t.Books).Error; err != nil {
		return nil, apperrors.Wrap(err, "counting books failed")
	}
	if err := db.Model(&CustomerModel{}).Count(&t.Customers).Error; err != nil {
		return nil, apperrors.Wrap(err, "counting customers failed")
	}
	if err := db.Model(&PurchaseModel{}).Count(&t.Purchases).Error; err != nil {
		return nil, apperrors.Wrap(err, "counting purchases failed")
	}
	return &t, nil
}

func (r *reportRepository) PopularBooks(ctx context.Context, limit int) ([]*report.PopularBook, error) {
	var rows []*report.PopularBook
	err := dbFromContext(ctx, r.db).
		Table("purchases").
		Select("books.id AS book_id, books.title, books.author, books.price, books.stock, SUM(purchases.quantity) AS units_sold").
		Joins("JOIN books ON books.id = purchases.book_id").
		Group("books.id, books.title, books.author, books.price, books.stock").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "querying popular books failed")
	}
	return rows, nil
}

func (r *reportRepository) NewestBooks(ctx context.Context, since time.Time) ([]*report.RecentBook, error) {
	var rows []*report.RecentBook
	err := dbFromContext(ctx, r.db).
		Model(&BookModel{}).
		Select("id AS book_id, title, author, genre, price, stock, created_at").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "querying newest books failed")
	}
	return rows, nil
}

func (r *reportRepository) LowStockBooks(ctx context.Context, threshold int) ([]*report.LowStockBook, error) {
	var rows []*report.LowStockBook
	err := dbFromContext(ctx, r.db).
		Model(&BookModel{}).
		Select("id AS book_id, title, author, stock").
		Where("stock < ?", threshold).
		Order("stock ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "querying low-stock books failed")
	}
	return rows, nil
}

func (r *reportRepository) Revenue(ctx context.Context, trailingWindow time.Duration) (*report.RevenueTotals, error) {
	db := dbFromContext(ctx, r.db)
	var totals report.RevenueTotals

	// COALESCE so an empty ledger sums to 0, not NULL.
	err := db.Model(&PurchaseModel{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totals.AllTime).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "summing all-time revenue failed")
	}

	cutoff := time.Now().Add(-trailingWindow)
	err = db.Model(&PurchaseModel{}).
		Select("COALESCE(SUM(total), 0)").
		Where("created_at >= ?", cutoff).
		Scan(&totals.Trailing30Days).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "summing trailing revenue failed")
	}
	return &totals, nil
}

func (r *reportRepository) CustomersByCountry(ctx context.Context) ([]*report.CountryCount, error) {
	var rows []*report.CountryCount
	err := dbFromContext(ctx, r.db).
		Model(&CustomerModel{}).
		Select("country, COUNT(*) AS customers").
		Where("country <> ''").
		Group("country").
		Order("customers DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "querying customers by country failed")
	}
	return rows, nil
}
