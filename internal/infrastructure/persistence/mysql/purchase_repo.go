package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pkozlowski/bookstore/internal/domain/purchase"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// purchaseRepository implements purchase.Repository on MySQL. The ledger is
// append-only; this type exposes no update path.
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates the purchase repository.
func NewPurchaseRepository(db *gorm.DB) purchase.Repository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	model := &PurchaseModel{
		CustomerID: p.CustomerID,
		BookID:     p.BookID,
		Quantity:   p.Quantity,
		UnitPrice:  p.UnitPrice,
		Total:      p.Total,
		CreatedAt:  p.CreatedAt,
		ExpiresAt:  p.ExpiresAt,
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "recording purchase failed")
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	return nil
}

func (r *purchaseRepository) FindByID(ctx context.Context, id uint) (*purchase.Purchase, error) {
	var model PurchaseModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrPurchaseNotFound
		}
		return nil, apperrors.Wrap(err, "querying purchase failed")
	}
	return toPurchaseEntity(&model), nil
}

func (r *purchaseRepository) DeleteByCustomerID(ctx context.Context, customerID uint) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("customer_id = ?", customerID).
		Delete(&PurchaseModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "deleting purchases failed")
	}
	return result.RowsAffected, nil
}

func (r *purchaseRepository) CountByCustomerID(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).
		Model(&PurchaseModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "counting purchases failed")
	}
	return count, nil
}

// HistoryByCustomerID joins the ledger with book titles, newest first. Rows
// whose book was since removed keep the entry with an empty title (LEFT
// JOIN); the ledger outlives the catalog.
func (r *purchaseRepository) HistoryByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*purchase.HistoryEntry, int64, error) {
	db := dbFromContext(ctx, r.db)

	var total int64
	if err := db.Model(&PurchaseModel{}).Where("customer_id = ?", customerID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "counting purchase history failed")
	}

	var rows []struct {
		ID        uint
		BookID    uint
		Title     string
		Quantity  int
		UnitPrice int64
		Total     int64
		CreatedAt time.Time
		ExpiresAt *time.Time
	}

	offset := (page - 1) * pageSize
	err := db.Table("purchases").
		Select("purchases.id, purchases.book_id, books.title, purchases.quantity, purchases.unit_price, purchases.total, purchases.created_at, purchases.expires_at").
		Joins("LEFT JOIN books ON books.id = purchases.book_id").
		Where("purchases.customer_id = ?", customerID).
		Order("purchases.created_at DESC").
		Limit(pageSize).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "querying purchase history failed")
	}

	entries := make([]*purchase.HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = &purchase.HistoryEntry{
			PurchaseID: row.ID,
			BookID:     row.BookID,
			BookTitle:  row.Title,
			Quantity:   row.Quantity,
			UnitPrice:  row.UnitPrice,
			Total:      row.Total,
			CreatedAt:  row.CreatedAt,
			ExpiresAt:  row.ExpiresAt,
		}
	}
	return entries, total, nil
}

func toPurchaseEntity(model *PurchaseModel) *purchase.Purchase {
	return &purchase.Purchase{
		ID:         model.ID,
		CustomerID: model.CustomerID,
		BookID:     model.BookID,
		Quantity:   model.Quantity,
		UnitPrice:  model.UnitPrice,
		Total:      model.Total,
		CreatedAt:  model.CreatedAt,
		ExpiresAt:  model.ExpiresAt,
	}
}
