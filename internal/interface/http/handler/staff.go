package handler

import (
	"github.com/gin-gonic/gin"

	appstaff "github.com/pkozlowski/bookstore/internal/application/staff"
	"github.com/pkozlowski/bookstore/internal/interface/http/dto"
	"github.com/pkozlowski/bookstore/internal/interface/http/middleware"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
	"github.com/pkozlowski/bookstore/pkg/response"
)

// StaffHandler serves the staff account and auth endpoints.
type StaffHandler struct {
	register *appstaff.RegisterUseCase
	login    *appstaff.LoginUseCase
	logout   *appstaff.LogoutUseCase
	refresh  *appstaff.RefreshUseCase
}

// NewStaffHandler creates the handler.
func NewStaffHandler(
	register *appstaff.RegisterUseCase,
	login *appstaff.LoginUseCase,
	logout *appstaff.LogoutUseCase,
	refresh *appstaff.RefreshUseCase,
) *StaffHandler {
	return &StaffHandler{
		register: register,
		login:    login,
		logout:   logout,
		refresh:  refresh,
	}
}

// Register creates a staff account.
// @Summary      Register staff
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterStaffRequest true "account"
// @Success      200 {object} response.Response{data=staff.RegisterResponse}
// @Router       /api/v1/staff/register [post]
func (h *StaffHandler) Register(c *gin.Context) {
	var req dto.RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.CodeBindError, "invalid request: "+err.Error())
		return
	}

	result, err := h.register.Execute(c.Request.Context(), appstaff.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Login verifies credentials and returns a token pair.
// @Summary      Staff login
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "credentials"
// @Success      200 {object} response.Response{data=staff.LoginResponse}
// @Router       /api/v1/staff/login [post]
func (h *StaffHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.CodeBindError, "invalid request: "+err.Error())
		return
	}

	result, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// A missing account and a wrong password must be indistinguishable,
		// same code and same message, so the endpoint cannot be used to
		// enumerate which emails exist.
		if apperrors.IsCode(err, apperrors.CodeStaffNotFound) ||
			apperrors.IsCode(err, apperrors.CodeInvalidPassword) {
			response.ErrorWithCode(c, apperrors.CodeInvalidPassword, "wrong email or password")
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout revokes the current access token.
// @Summary      Staff logout
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/staff/logout [post]
func (h *StaffHandler) Logout(c *gin.Context) {
	staffID := middleware.MustGetStaffID(c)
	token := middleware.GetToken(c)

	if err := h.logout.Execute(c.Request.Context(), staffID, token); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "logged out", nil)
}

// Refresh exchanges a refresh token for a new access token.
// @Summary      Refresh access token
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "refresh token"
// @Success      200 {object} response.Response{data=staff.RefreshResponse}
// @Router       /api/v1/staff/refresh [post]
func (h *StaffHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.CodeBindError, "invalid request: "+err.Error())
		return
	}

	result, err := h.refresh.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
