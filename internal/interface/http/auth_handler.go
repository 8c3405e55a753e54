package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyb-mobile-app/hyb-api/internal/application"
	"github.com/hyb-mobile-app/hyb-api/internal/infrastructure/storage"
	"github.com/hyb-mobile-app/hyb-api/internal/interface/middleware"
	"github.com/hyb-mobile-app/hyb-api/pkg/response"
)

type AuthHandler struct {
	Svc            *application.AuthService
	AvatarMaxBytes int64
	ErrorWriter
}

func NewAuthHandler(svc *application.AuthService, avatarMaxBytes int64, ew ErrorWriter) *AuthHandler {
	return &AuthHandler{Svc: svc, AvatarMaxBytes: avatarMaxBytes, ErrorWriter: ew}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,notblank,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"required,notblank,username"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		h.write(c, err)
		return
	}
	response.Auth(c, http.StatusCreated, "Registration successful", toUserDTO(res.User), res.Token)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.write(c, err)
		return
	}
	response.Auth(c, http.StatusOK, "Login successful", toUserDTO(res.User), res.Token)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.Svc.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.write(c, err)
		return
	}
	response.Auth(c, http.StatusOK, "Profile retrieved successfully", toUserDTO(u), "")
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		h.write(c, err)
		return
	}
	response.Auth(c, http.StatusOK, "Profile updated successfully", toUserDTO(u), "")
}

// UploadAvatar accepts a multipart "avatar" file (jpeg, png, webp or gif).
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.AvatarMaxBytes+(1<<20))
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Invalid(c, "Validation failed", []response.FieldError{{Field: "avatar", Message: "is required"}})
		return
	}
	if fh.Size > h.AvatarMaxBytes {
		response.Invalid(c, "Validation failed", []response.FieldError{{Field: "avatar", Message: fmt.Sprintf("must be at most %d bytes", h.AvatarMaxBytes)}})
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.internal(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		h.internal(c, err)
		return
	}
	contentType := http.DetectContentType(data)
	if !storage.AllowedContentType(contentType) {
		response.Invalid(c, "Validation failed", []response.FieldError{{Field: "avatar", Message: "must be a jpeg, png, webp or gif image"}})
		return
	}

	u, err := h.Svc.UploadAvatar(c.Request.Context(), middleware.UserID(c), contentType, bytes.NewReader(data))
	if err != nil {
		h.write(c, err)
		return
	}
	response.Auth(c, http.StatusOK, "Avatar updated successfully", toUserDTO(u), "")
}
