package services

import (
	"context"
	"errors"
	"strings"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/adapters/persistence/repositories"
	"pustakahub/internal/core/domain"

	"gorm.io/gorm"
)

// BookService handles catalog business logic
type BookService struct {
	bookRepo repositories.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// BookInput represents create/update book input
type BookInput struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	PublishYear int    `json:"publish_year"`
	Quantity    int    `json:"quantity"`
}

func (in *BookInput) validate() error {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Author) == "" ||
		strings.TrimSpace(in.Category) == "" ||
		strings.TrimSpace(in.Type) == "" ||
		strings.TrimSpace(in.Publisher) == "" {
		return domain.ErrInvalidInput
	}
	if in.PublishYear <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create catalogs a new title. All copies start on the shelf.
func (s *BookService) Create(ctx context.Context, input *BookInput) (*models.Book, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	book := &models.Book{
		Category:          strings.TrimSpace(input.Category),
		Title:             strings.TrimSpace(input.Title),
		Type:              strings.TrimSpace(input.Type),
		Author:            strings.TrimSpace(input.Author),
		Publisher:         strings.TrimSpace(input.Publisher),
		PublishYear:       input.PublishYear,
		Quantity:          quantity,
		AvailableQuantity: quantity,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID gets a book by ID
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// List lists a page of books, or all matches when a search query is given.
// Returns the page and the total row count.
func (s *BookService) List(ctx context.Context, search string, limit, offset int) ([]*models.Book, int64, error) {
	if search != "" {
		books, err := s.bookRepo.Search(ctx, search)
		if err != nil {
			return nil, 0, err
		}
		return books, int64(len(books)), nil
	}

	books, err := s.bookRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.bookRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// Update updates catalog fields. Editing quantity does not reconcile
// available_quantity; the availability counter is owned by the loan engine
// and librarians reconcile shelf counts manually.
func (s *BookService) Update(ctx context.Context, id uint, input *BookInput) (*models.Book, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Category = strings.TrimSpace(input.Category)
	book.Title = strings.TrimSpace(input.Title)
	book.Type = strings.TrimSpace(input.Type)
	book.Author = strings.TrimSpace(input.Author)
	book.Publisher = strings.TrimSpace(input.Publisher)
	book.PublishYear = input.PublishYear
	if input.Quantity > 0 {
		book.Quantity = input.Quantity
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes a title from the catalog
func (s *BookService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.bookRepo.Delete(ctx, id)
}
