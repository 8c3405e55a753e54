package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hyb-mobile-app/hyb-api/internal/application"
	"github.com/hyb-mobile-app/hyb-api/pkg/response"
)

type UserHandler struct {
	Svc *application.UserService
	ErrorWriter
}

func NewUserHandler(svc *application.UserService, ew ErrorWriter) *UserHandler {
	return &UserHandler{Svc: svc, ErrorWriter: ew}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// queryInt parses a query parameter; anything non-numeric yields 0.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), application.CreateUserInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		// this endpoint reports duplicates as 400 with a machine-readable code
		if errors.Is(err, application.ErrDuplicateEmail) {
			response.Error(c, http.StatusBadRequest, "User with this email already exists", "DUPLICATE_EMAIL")
			return
		}
		h.write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserDTO(u), "User created successfully")
}

func (h *UserHandler) List(c *gin.Context) {
	page, err := h.Svc.ListUsers(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		h.write(c, err)
		return
	}
	response.Paginated(c, toUserDTOs(page.Users), "Users retrieved successfully", response.NewPagination(page.Page, page.Limit, page.Total))
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrInvalidID) {
			response.Error(c, http.StatusBadRequest, "Invalid user ID format", "")
			return
		}
		h.write(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserDTO(u), "User retrieved successfully")
}

// Search runs a full-text lookup on name and email: GET /users/search?q=ann&size=10
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("q"), queryInt(c, "size"))
	if err != nil {
		h.write(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserDTOs(users), "Users retrieved successfully")
}
