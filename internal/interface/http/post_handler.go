package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyb-mobile-app/hyb-api/internal/application"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/internal/interface/middleware"
	"github.com/hyb-mobile-app/hyb-api/pkg/response"
)

type PostHandler struct {
	Svc *application.PostService
	ErrorWriter
}

func NewPostHandler(svc *application.PostService, ew ErrorWriter) *PostHandler {
	return &PostHandler{Svc: svc, ErrorWriter: ew}
}

type createPostRequest struct {
	Content string `json:"content" binding:"required,notblank,max=2000"`
}

type statusRefRequest struct {
	StatusID string `json:"statusId" binding:"required"`
}

type commentRequest struct {
	StatusID string `json:"statusId" binding:"required"`
	Content  string `json:"content" binding:"required,notblank,max=1000"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}
	uid := middleware.UserID(c)
	p, err := h.Svc.Create(c.Request.Context(), uid, req.Content)
	if err != nil {
		h.write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toPostDTO(p, uid), "Status created successfully")
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.write(c, err)
		return
	}
	uid := middleware.UserID(c)
	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p, uid))
	}
	response.Success(c, http.StatusOK, out, "Statuses retrieved successfully")
}

func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.write(c, err)
		return
	}
	response.Success(c, http.StatusOK, toPostDTO(p, middleware.UserID(c)), "Status retrieved successfully")
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		h.write(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Status deleted successfully")
}

func (h *PostHandler) Like(c *gin.Context) {
	h.toggleLike(c, h.Svc.Like, "Status liked")
}

func (h *PostHandler) Unlike(c *gin.Context) {
	h.toggleLike(c, h.Svc.Unlike, "Status unliked")
}

func (h *PostHandler) toggleLike(c *gin.Context, fn func(ctx context.Context, postID, userID string) (*entity.Post, error), msg string) {
	var req statusRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}
	uid := middleware.UserID(c)
	p, err := fn(c.Request.Context(), req.StatusID, uid)
	if err != nil {
		h.write(c, err)
		return
	}
	response.Success(c, http.StatusOK, toPostDTO(p, uid), msg)
}

func (h *PostHandler) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}
	uid := middleware.UserID(c)
	p, err := h.Svc.Comment(c.Request.Context(), req.StatusID, uid, req.Content)
	if err != nil {
		h.write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toPostDTO(p, uid), "Comment added successfully")
}

// DeleteComment handles DELETE /comment/:commentId with {statusId} in the body.
func (h *PostHandler) DeleteComment(c *gin.Context) {
	var req statusRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}
	if err := h.Svc.DeleteComment(c.Request.Context(), req.StatusID, c.Param("commentId"), middleware.UserID(c)); err != nil {
		h.write(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Comment deleted successfully")
}
