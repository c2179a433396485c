package handler

import (
	"github.com/gin-gonic/gin"

	appcustomer "github.com/pkozlowski/bookstore/internal/application/customer"
	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/interface/http/dto"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
	"github.com/pkozlowski/bookstore/pkg/response"
)

// CustomerHandler serves the customer registry endpoints.
type CustomerHandler struct {
	register    *appcustomer.RegisterUseCase
	remove      *appcustomer.RemoveUseCase
	find        *appcustomer.FindUseCase
	customerSvc customer.Service
}

// NewCustomerHandler creates the handler.
func NewCustomerHandler(
	register *appcustomer.RegisterUseCase,
	remove *appcustomer.RemoveUseCase,
	find *appcustomer.FindUseCase,
	customerSvc customer.Service,
) *CustomerHandler {
	return &CustomerHandler{
		register:    register,
		remove:      remove,
		find:        find,
		customerSvc: customerSvc,
	}
}

// Register creates a customer record.
// @Summary      Register a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RegisterCustomerRequest true "customer"
// @Success      200 {object} response.Response{data=customer.RegisterResponse}
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) Register(c *gin.Context) {
	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.CodeBindError, "invalid request: "+err.Error())
		return
	}

	result, err := h.register.Execute(c.Request.Context(), appcustomer.RegisterRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Street:  req.Street,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Find resolves a customer reference (id or name).
// @Summary      Find a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        ref path string true "customer id or name"
// @Success      200 {object} response.Response{data=customer.FindResponse}
// @Router       /api/v1/customers/{ref} [get]
func (h *CustomerHandler) Find(c *gin.Context) {
	ref := customer.ParseRef(c.Param("ref"))

	result, err := h.find.Execute(c.Request.Context(), ref)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeCustomerNotFound) {
			response.SuccessWithMessage(c, "no customer matched", nil)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// List returns all customers, newest first.
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "page"
// @Param        page_size query int false "page size"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 20)

	customers, total, err := h.customerSvc.ListCustomers(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewCustomerListResponse(customers), total, page, pageSize)
}

// Remove deletes a customer and their purchase rows in one transaction.
// @Summary      Remove a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        ref path string true "customer id or name"
// @Success      200 {object} response.Response{data=customer.RemoveResponse}
// @Router       /api/v1/customers/{ref} [delete]
func (h *CustomerHandler) Remove(c *gin.Context) {
	ref := customer.ParseRef(c.Param("ref"))

	result, err := h.remove.Execute(c.Request.Context(), ref)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeCustomerNotFound) {
			response.SuccessWithMessage(c, "no customer matched, nothing removed",
				&appcustomer.RemoveResponse{})
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
