package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pkozlowski/bookstore/internal/domain/staff"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// staffRepository implements staff.Repository on MySQL.
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates the staff repository.
func NewStaffRepository(db *gorm.DB) staff.Repository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, s *staff.Staff) error {
	model := &StaffModel{
		Email:     s.Email,
		Password:  s.Password,
		Nickname:  s.Nickname,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return staff.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "creating staff account failed")
	}
	s.ID = model.ID
	return nil
}

func (r *staffRepository) FindByID(ctx context.Context, id uint) (*staff.Staff, error) {
	var model StaffModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, staff.ErrStaffNotFound
		}
		return nil, apperrors.Wrap(err, "querying staff account failed")
	}
	return toStaffEntity(&model), nil
}

func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	var model StaffModel
	err := dbFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, staff.ErrStaffNotFound
		}
		return nil, apperrors.Wrap(err, "querying staff account failed")
	}
	return toStaffEntity(&model), nil
}

func toStaffEntity(model *StaffModel) *staff.Staff {
	return &staff.Staff{
		ID:        model.ID,
		Email:     model.Email,
		Password:  model.Password,
		Nickname:  model.Nickname,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
