package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError is one entry of the errors array in a failed response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalUsers  int  `json:"totalUsers"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// APIResponse is the common envelope. Data is an interface so an empty list
// is still serialized while a missing payload is dropped.
type APIResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Data       any          `json:"data,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// AuthResponse is returned by the auth endpoints; user and token sit at the top level.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    any    `json:"user"`
	Token   string `json:"token,omitempty"`
}

func Success(ctx *gin.Context, status int, data any, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse{Success: true, Message: message, Data: data})
}

func Paginated(ctx *gin.Context, data any, message string, p Pagination) {
	ctx.JSON(http.StatusOK, APIResponse{Success: true, Message: message, Data: data, Pagination: &p})
}

func Auth(ctx *gin.Context, status int, message string, user any, token string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, AuthResponse{Success: true, Message: message, User: user, Token: token})
}

// Error writes a failed envelope. detail fills the error field and may be empty.
func Error(ctx *gin.Context, status int, message string, detail string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, APIResponse{Success: false, Message: message, Error: detail})
}

// Invalid writes a 400 carrying per-field errors.
func Invalid(ctx *gin.Context, message string, errs []FieldError) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, APIResponse{Success: false, Message: message, Errors: errs})
}

// NewPagination computes page metadata; limit must be positive.
func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalUsers:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
