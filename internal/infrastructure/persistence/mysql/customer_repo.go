package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pkozlowski/bookstore/internal/domain/customer"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// customerRepository implements customer.Repository on MySQL.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates the customer repository.
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

// Create inserts the customer with an identifier computed inside the same
// transaction as the insert (max+1 over the customers table, base 201).
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	db := dbFromContext(ctx, r.db)

	return db.Transaction(func(tx *gorm.DB) error {
		id, err := nextTableID(tx, CustomerModel{}.TableName(), customerIDBase)
		if err != nil {
			return apperrors.Wrap(err, "assigning customer id failed")
		}

		model := &CustomerModel{
			ID:        id,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Street:    c.Street,
			City:      c.City,
			Country:   c.Country,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}

		if err := tx.Create(model).Error; err != nil {
			if isDuplicateError(err) {
				return customer.ErrEmailDuplicate
			}
			return apperrors.Wrap(err, "creating customer failed")
		}

		c.ID = model.ID
		c.CreatedAt = model.CreatedAt
		c.UpdatedAt = model.UpdatedAt
		return nil
	})
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "querying customer failed")
	}
	return toCustomerEntity(&model), nil
}

func (r *customerRepository) FindByRef(ctx context.Context, ref customer.Ref) (*customer.Customer, error) {
	if ref.IsID() {
		return r.FindByID(ctx, ref.ID())
	}

	var model CustomerModel
	err := dbFromContext(ctx, r.db).
		Where("name = ?", ref.Name()).
		Order("id").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "querying customer failed")
	}
	return toCustomerEntity(&model), nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model CustomerModel
	err := dbFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "querying customer failed")
	}
	return toCustomerEntity(&model), nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	model := &CustomerModel{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Street:    c.Street,
		City:      c.City,
		Country:   c.Country,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return customer.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "updating customer failed")
	}
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *customerRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	result := dbFromContext(ctx, r.db).Delete(&CustomerModel{}, id)
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "deleting customer failed")
	}
	return result.RowsAffected, nil
}

func (r *customerRepository) List(ctx context.Context, page, pageSize int) ([]*customer.Customer, int64, error) {
	var models []CustomerModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&CustomerModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "counting customers failed")
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "listing customers failed")
	}

	customers := make([]*customer.Customer, len(models))
	for i := range models {
		customers[i] = toCustomerEntity(&models[i])
	}
	return customers, total, nil
}

func toCustomerEntity(model *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Street:    model.Street,
		City:      model.City,
		Country:   model.Country,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
