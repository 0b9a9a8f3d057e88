package repositories

import (
	"context"
	"errors"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/core/domain"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return dbFromContext(ctx, r.db).Create(book).Error
}

// GetByID gets a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := dbFromContext(ctx, r.db).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List lists books, newest first
func (r *bookRepository) List(ctx context.Context, limit, offset int) ([]*models.Book, error) {
	var books []*models.Book
	err := dbFromContext(ctx, r.db).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	return books, err
}

// Search finds books by title, author or publisher
func (r *bookRepository) Search(ctx context.Context, query string) ([]*models.Book, error) {
	var books []*models.Book
	pattern := "%" + query + "%"
	err := dbFromContext(ctx, r.db).
		Where("title LIKE ? OR author LIKE ? OR publisher LIKE ?",
			pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&books).Error
	return books, err
}

// Update updates a book. Never touches available_quantity; that counter
// belongs to the loan engine.
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	return dbFromContext(ctx, r.db).
		Model(book).
		Omit("available_quantity").
		Updates(map[string]interface{}{
			"category":     book.Category,
			"title":        book.Title,
			"type":         book.Type,
			"author":       book.Author,
			"publisher":    book.Publisher,
			"publish_year": book.PublishYear,
			"quantity":     book.Quantity,
		}).Error
}

// Delete hard deletes a book
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return dbFromContext(ctx, r.db).Delete(&models.Book{}, id).Error
}

// Count counts all book titles
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).Model(&models.Book{}).Count(&total).Error
	return total, err
}

// DecrementAvailable atomically takes one copy off the shelf:
//
//	UPDATE books SET available_quantity = available_quantity - 1
//	WHERE id = ? AND available_quantity > 0
//
// Zero rows affected means either the book is missing or no copies are
// free; a follow-up read disambiguates.
func (r *bookRepository) DecrementAvailable(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)
	result := db.Model(&models.Book{}).
		Where("id = ? AND available_quantity > 0", id).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var book models.Book
		if err := db.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookNotFound
			}
			return err
		}
		return domain.ErrBookNotAvailable
	}
	return nil
}

// IncrementAvailable puts one copy back on the shelf
func (r *bookRepository) IncrementAvailable(ctx context.Context, id uint) error {
	return dbFromContext(ctx, r.db).Model(&models.Book{}).
		Where("id = ?", id).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity + 1")).Error
}
