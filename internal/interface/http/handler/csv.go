package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pkozlowski/bookstore/internal/interface/csvio"
	"github.com/pkozlowski/bookstore/pkg/response"
)

// CSVHandler serves bulk import/export. Imports take the CSV as the request
// body; exports stream text/csv back.
type CSVHandler struct {
	books     *csvio.BookCSV
	customers *csvio.CustomerCSV
}

// NewCSVHandler creates the handler.
func NewCSVHandler(books *csvio.BookCSV, customers *csvio.CustomerCSV) *CSVHandler {
	return &CSVHandler{books: books, customers: customers}
}

// ImportBooks loads catalog rows from a CSV body.
// @Summary      Import books from CSV
// @Tags         csv
// @Accept       text/csv
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=csvio.ImportResult}
// @Router       /api/v1/csv/books [post]
func (h *CSVHandler) ImportBooks(c *gin.Context) {
	result, err := h.books.Import(c.Request.Context(), c.Request.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ExportBooks streams the catalog as CSV.
// @Summary      Export books to CSV
// @Tags         csv
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200 {string} string "csv"
// @Router       /api/v1/csv/books [get]
func (h *CSVHandler) ExportBooks(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="books.csv"`)
	if err := h.books.Export(c.Request.Context(), c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// ImportCustomers loads registry rows from a CSV body.
// @Summary      Import customers from CSV
// @Tags         csv
// @Accept       text/csv
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=csvio.ImportResult}
// @Router       /api/v1/csv/customers [post]
func (h *CSVHandler) ImportCustomers(c *gin.Context) {
	result, err := h.customers.Import(c.Request.Context(), c.Request.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ExportCustomers streams the registry as CSV.
// @Summary      Export customers to CSV
// @Tags         csv
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200 {string} string "csv"
// @Router       /api/v1/csv/customers [get]
func (h *CSVHandler) ExportCustomers(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="customers.csv"`)
	if err := h.customers.Export(c.Request.Context(), c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
