package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/pkozlowski/bookstore/internal/application/inventory"
	appreport "github.com/pkozlowski/bookstore/internal/application/report"
	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/interface/http/dto"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
	"github.com/pkozlowski/bookstore/pkg/response"
)

// PurchaseHandler serves the sales endpoints.
type PurchaseHandler struct {
	buyBook *appinventory.BuyBookUseCase
	queries *appreport.Queries
}

// NewPurchaseHandler creates the handler.
func NewPurchaseHandler(buyBook *appinventory.BuyBookUseCase, queries *appreport.Queries) *PurchaseHandler {
	return &PurchaseHandler{buyBook: buyBook, queries: queries}
}

// BuyBook records a sale: one ledger entry plus the matching stock
// decrement, atomically.
// @Summary      Buy a book
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BuyBookRequest true "purchase"
// @Success      200 {object} response.Response{data=inventory.BuyBookResponse}
// @Router       /api/v1/purchases [post]
func (h *PurchaseHandler) BuyBook(c *gin.Context) {
	var req dto.BuyBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.CodeBindError, "invalid request: "+err.Error())
		return
	}

	result, err := h.buyBook.Execute(c.Request.Context(), appinventory.BuyBookRequest{
		CustomerRef: customer.ParseRef(req.Customer),
		BookRef:     book.ParseRef(req.Book),
		Quantity:    req.Quantity,
		Months:      req.Months,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// PurchaseHistory lists a customer's purchases, most recent first.
// @Summary      Customer purchase history
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        ref path string true "customer id or name"
// @Param        page query int false "page"
// @Param        page_size query int false "page size"
// @Success      200 {object} response.Response{data=report.HistoryResponse}
// @Router       /api/v1/customers/{ref}/purchases [get]
func (h *PurchaseHandler) PurchaseHistory(c *gin.Context) {
	ref := customer.ParseRef(c.Param("ref"))
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 20)

	result, err := h.queries.PurchaseHistory(c.Request.Context(), ref, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Total == 0 {
		response.SuccessWithMessage(c, "no purchases recorded", result)
		return
	}
	response.Success(c, result)
}
