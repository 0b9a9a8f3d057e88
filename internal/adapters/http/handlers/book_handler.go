package handlers

import (
	"errors"
	"strconv"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/core/domain"
	"pustakahub/internal/core/services"
	"pustakahub/internal/pkg/pagination"
	"pustakahub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// BookRequest represents create/update book request
type BookRequest struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	PublishYear int    `json:"publish_year"`
	Quantity    int    `json:"quantity"`
}

func bookResponses(books []*models.Book) []*models.BookResponse {
	out := make([]*models.BookResponse, len(books))
	for i, b := range books {
		out[i] = b.ToResponse()
	}
	return out
}

// Create catalogs a new book
// @Summary Create book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BookRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.Create(c.Context(), &services.BookInput{
		Category:    req.Category,
		Title:       req.Title,
		Type:        req.Type,
		Author:      req.Author,
		Publisher:   req.Publisher,
		PublishYear: req.PublishYear,
		Quantity:    req.Quantity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Category, title, type, author, publisher and publish year are required")
		}
		return response.InternalServerError(c, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}

// List lists books
// @Summary List books
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by title, author or publisher"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	books, total, err := h.bookService.List(c.Context(), c.Query("search"), params.Limit, params.Offset)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}
	return response.Success(c, "Books retrieved successfully",
		pagination.NewResponse(bookResponses(books), params, total))
}

// GetByID gets a book by ID
// @Summary Get book by ID
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.bookService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}

// Update updates catalog fields of a book
// @Summary Update book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body BookRequest true "Book data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.Update(c.Context(), uint(id), &services.BookInput{
		Category:    req.Category,
		Title:       req.Title,
		Type:        req.Type,
		Author:      req.Author,
		Publisher:   req.Publisher,
		PublishYear: req.PublishYear,
		Quantity:    req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Category, title, type, author, publisher and publish year are required")
		default:
			return response.InternalServerError(c, "Failed to update book")
		}
	}

	return response.Success(c, "Book updated successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}

// Delete removes a book from the catalog
// @Summary Delete book
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	if err := h.bookService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to delete book")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
