package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/pkozlowski/bookstore/internal/application/report"
	"github.com/pkozlowski/bookstore/pkg/response"
)

// ReportHandler serves the read-only report endpoints. Empty results come
// back as successes with an explanatory message.
type ReportHandler struct {
	queries *appreport.Queries
}

// NewReportHandler creates the handler.
func NewReportHandler(queries *appreport.Queries) *ReportHandler {
	return &ReportHandler{queries: queries}
}

// Overview returns the headline counters.
// @Summary      Store overview
// @Tags         reports
// @Produce      json
// @Success      200 {object} response.Response{data=report.Totals}
// @Router       /api/v1/reports/overview [get]
func (h *ReportHandler) Overview(c *gin.Context) {
	totals, err := h.queries.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, totals)
}

// PopularBooks ranks books by units sold.
// @Summary      Most popular books
// @Tags         reports
// @Produce      json
// @Param        limit query int false "top N, default 10"
// @Success      200 {object} response.Response{data=[]report.PopularBook}
// @Router       /api/v1/reports/popular [get]
func (h *ReportHandler) PopularBooks(c *gin.Context) {
	rows, err := h.queries.PopularBooks(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(rows) == 0 {
		response.SuccessWithMessage(c, "no purchases recorded yet", []*appreport.PopularBook{})
		return
	}
	response.Success(c, rows)
}

// NewestBooks lists titles added within the last N days.
// @Summary      Newest books
// @Tags         reports
// @Produce      json
// @Param        days query int false "window in days, default 30"
// @Success      200 {object} response.Response{data=[]report.RecentBook}
// @Router       /api/v1/reports/newest [get]
func (h *ReportHandler) NewestBooks(c *gin.Context) {
	rows, err := h.queries.NewestBooks(c.Request.Context(), queryInt(c, "days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(rows) == 0 {
		response.SuccessWithMessage(c, "no books added in the window", []*appreport.RecentBook{})
		return
	}
	response.Success(c, rows)
}

// LowStock lists books under the restock threshold.
// @Summary      Low-stock books
// @Tags         reports
// @Produce      json
// @Param        threshold query int false "stock threshold, default 5"
// @Success      200 {object} response.Response{data=[]report.LowStockBook}
// @Router       /api/v1/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *gin.Context) {
	rows, err := h.queries.LowStock(c.Request.Context(), queryInt(c, "threshold", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(rows) == 0 {
		response.SuccessWithMessage(c, "no books below the threshold", []*appreport.LowStockBook{})
		return
	}
	response.Success(c, rows)
}

// Revenue sums the ledger, all-time and trailing 30 days.
// @Summary      Revenue totals
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=report.RevenueTotals}
// @Router       /api/v1/reports/revenue [get]
func (h *ReportHandler) Revenue(c *gin.Context) {
	totals, err := h.queries.Revenue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, totals)
}

// CustomersByCountry counts registered customers per country.
// @Summary      Customers by country
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]report.CountryCount}
// @Router       /api/v1/reports/countries [get]
func (h *ReportHandler) CustomersByCountry(c *gin.Context) {
	rows, err := h.queries.CustomersByCountry(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(rows) == 0 {
		response.SuccessWithMessage(c, "no customers with a recorded country", []*appreport.CountryCount{})
		return
	}
	response.Success(c, rows)
}
