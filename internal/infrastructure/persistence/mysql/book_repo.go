package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pkozlowski/bookstore/internal/domain/book"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// bookRepository implements book.Repository on MySQL. It translates between
// domain entities and GORM models and maps store errors to domain errors.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates the book repository.
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create inserts the book with an identifier computed inside the same
// transaction as the insert (max+1 over the books table, base 101).
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	db := dbFromContext(ctx, r.db)

	return db.Transaction(func(tx *gorm.DB) error {
		id, err := nextTableID(tx, BookModel{}.TableName(), bookIDBase)
		if err != nil {
			return apperrors.Wrap(err, "assigning book id failed")
		}

		model := &BookModel{
			ID:        id,
			Title:     b.Title,
			Author:    b.Author,
			Genre:     b.Genre,
			Price:     b.Price,
			Stock:     b.Stock,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		}

		if err := tx.Create(model).Error; err != nil {
			if isDuplicateError(err) {
				return book.ErrTitleAuthorDuplicate
			}
			return apperrors.Wrap(err, "creating book failed")
		}

		b.ID = model.ID
		b.CreatedAt = model.CreatedAt
		b.UpdatedAt = model.UpdatedAt
		return nil
	})
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "querying book failed")
	}
	return toBookEntity(&model), nil
}

// FindByRef resolves an explicit reference. Title lookups try an exact
// match before falling back to a substring match; the oldest match wins.
func (r *bookRepository) FindByRef(ctx context.Context, ref book.Ref) (*book.Book, error) {
	if ref.IsID() {
		return r.FindByID(ctx, ref.ID())
	}

	db := dbFromContext(ctx, r.db)

	var model BookModel
	err := db.Where("title = ?", ref.Title()).Order("id").First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Where("title LIKE ?", "%"+ref.Title()+"%").Order("id").First(&model).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "querying book failed")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Price:     b.Price,
		Stock:     b.Stock,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrTitleAuthorDuplicate
		}
		return apperrors.Wrap(err, "updating book failed")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// DeleteByRef removes every matching book and reports the count. For title
// references an exact match is tried first; only when it removes nothing is
// the substring match attempted, so "Dune" never wipes "Dune Messiah" when
// an exact "Dune" row exists.
func (r *bookRepository) DeleteByRef(ctx context.Context, ref book.Ref) (int64, error) {
	db := dbFromContext(ctx, r.db)

	if ref.IsID() {
		result := db.Delete(&BookModel{}, ref.ID())
		if result.Error != nil {
			return 0, apperrors.Wrap(result.Error, "deleting book failed")
		}
		return result.RowsAffected, nil
	}

	var removed int64
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("title = ?", ref.Title()).Delete(&BookModel{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		if removed > 0 {
			return nil
		}
		result = tx.Where("title LIKE ?", "%"+ref.Title()+"%").Delete(&BookModel{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, apperrors.Wrap(err, "deleting book failed")
	}
	return removed, nil
}

func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&BookModel{})

	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ? OR genre LIKE ?", keyword, keyword, keyword)
	}
	if params.Author != "" {
		query = query.Where("author = ?", params.Author)
	}
	if params.Genre != "" {
		query = query.Where("genre = ?", params.Genre)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "counting books failed")
	}

	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	offset := (params.Page - 1) * params.PageSize
	if err := query.Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "listing books failed")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// LockByID loads the book under SELECT ... FOR UPDATE so a purchase holds
// the row until its transaction ends. Must run on a transactional context.
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "locking book failed")
	}
	return toBookEntity(&model), nil
}

// UpdateStock applies the delta with a guard so stock can never go
// negative: UPDATE books SET stock = stock + ? WHERE id = ? AND
// stock + ? >= 0. Zero rows affected means either a missing book or an
// insufficient balance; a follow-up read disambiguates.
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := dbFromContext(ctx, r.db)

	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "updating stock failed")
	}

	if result.RowsAffected == 0 {
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "querying book failed")
		}
		return book.ErrInsufficientStock
	}
	return nil
}

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Genre:     model.Genre,
		Price:     model.Price,
		Stock:     model.Stock,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
