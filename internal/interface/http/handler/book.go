package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appinventory "github.com/pkozlowski/bookstore/internal/application/inventory"
	appreport "github.com/pkozlowski/bookstore/internal/application/report"
	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/internal/interface/http/dto"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
	"github.com/pkozlowski/bookstore/pkg/response"
)

// BookHandler serves the catalog endpoints.
type BookHandler struct {
	addBook     *appinventory.AddBookUseCase
	removeBook  *appinventory.RemoveBookUseCase
	adjustStock *appinventory.AdjustStockUseCase
	bookSvc     book.Service
	queries     *appreport.Queries
}

// NewBookHandler creates the handler.
func NewBookHandler(
	addBook *appinventory.AddBookUseCase,
	removeBook *appinventory.RemoveBookUseCase,
	adjustStock *appinventory.AdjustStockUseCase,
	bookSvc book.Service,
	queries *appreport.Queries,
) *BookHandler {
	return &BookHandler{
		addBook:     addBook,
		removeBook:  removeBook,
		adjustStock: adjustStock,
		bookSvc:     bookSvc,
		queries:     queries,
	}
}

// AddBook adds a catalog entry.
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "book"
// @Success      200 {object} response.Response{data=inventory.AddBookResponse}
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.CodeBindError, "invalid request: "+err.Error())
		return
	}

	result, err := h.addBook.Execute(c.Request.Context(), appinventory.AddBookRequest{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
		Price:  req.Price,
		Stock:  req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBook resolves a reference (id or title) to a single book.
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        ref path string true "book id or title"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /api/v1/books/{ref} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	ref := book.ParseRef(c.Param("ref"))

	b, err := h.bookSvc.GetBook(c.Request.Context(), ref)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeBookNotFound) {
			response.SuccessWithMessage(c, "no book matched", nil)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// ListBooks runs a paged catalog search.
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        page query int false "page"
// @Param        page_size query int false "page size"
// @Param        keyword query string false "matches title, author or genre"
// @Param        author query string false "exact author"
// @Param        genre query string false "exact genre"
// @Param        sort query string false "price_asc | price_desc | created_at_desc"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	params := book.ListParams{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
		Keyword:  c.Query("keyword"),
		Author:   c.Query("author"),
		Genre:    c.Query("genre"),
		SortBy:   c.Query("sort"),
	}

	books, total, err := h.queries.ListBooks(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	if total == 0 {
		response.SuccessWithMessage(c, "no books matched", response.NewPageData([]*dto.BookResponse{}, 0, params.Page, params.PageSize))
		return
	}
	response.SuccessWithPage(c, dto.NewBookListResponse(books), total, params.Page, params.PageSize)
}

// RemoveBook deletes by reference and reports how many entries matched.
// @Summary      Remove a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        ref path string true "book id or title"
// @Success      200 {object} response.Response{data=inventory.RemoveBookResponse}
// @Router       /api/v1/books/{ref} [delete]
func (h *BookHandler) RemoveBook(c *gin.Context) {
	ref := book.ParseRef(c.Param("ref"))

	result, err := h.removeBook.Execute(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Removed == 0 {
		response.SuccessWithMessage(c, "no book matched, nothing removed", result)
		return
	}
	response.Success(c, result)
}

// AdjustStock applies a signed delta to a book's stock.
// @Summary      Adjust stock
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ref path int true "book id"
// @Param        request body dto.AdjustStockRequest true "delta"
// @Success      200 {object} response.Response{data=inventory.AdjustStockResponse}
// @Router       /api/v1/books/{ref}/stock [patch]
func (h *BookHandler) AdjustStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("ref"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, apperrors.CodeBindError, "book id must be numeric")
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.CodeBindError, "invalid request: "+err.Error())
		return
	}

	result, err := h.adjustStock.Execute(c.Request.Context(), uint(id), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// queryInt reads an integer query parameter with a default.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
