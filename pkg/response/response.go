package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// Response is the envelope every endpoint returns: a status code for the
// client to branch on, a human-readable message, and an optional payload.
// Code 0 means success; anything else is a business error code from
// pkg/errors.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage writes a success envelope with a custom message.
// Used by lookups that matched nothing: an empty result is still a success,
// but the message tells the caller so ("no books matched", spec-wise a
// not-found status distinct from a hard failure).
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope from any error. AppErrors keep their code
// and message; everything else is wrapped as internal.
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// The cause never reaches the client; log it here.
	if appErr.Err != nil {
		log.Printf("request failed: %v", appErr)
	}

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode writes an error envelope with an explicit code and message.
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// PageData wraps a paged list result.
type PageData struct {
	List       interface{} `json:"list"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// NewPageData builds a PageData, deriving the page count.
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SuccessWithPage writes a paged success envelope.
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	Success(c, NewPageData(list, total, page, pageSize))
}
