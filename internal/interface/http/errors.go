package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hyb-mobile-app/hyb-api/internal/application"
	repo "github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
	"github.com/hyb-mobile-app/hyb-api/pkg/response"
	"github.com/hyb-mobile-app/hyb-api/pkg/validation"
)

// ErrorWriter maps service errors onto the response envelope.
// Production hides internal error details from clients.
type ErrorWriter struct {
	Logger     *logrus.Logger
	Production bool
}

func (w ErrorWriter) invalidPayload(c *gin.Context, err error) {
	response.Invalid(c, "Validation failed", validation.ToDetails(err))
}

func (w ErrorWriter) write(c *gin.Context, err error) {
	var verr *repo.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]response.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, response.FieldError{Field: f.Field, Message: f.Message})
		}
		response.Invalid(c, "Validation failed", details)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid email or password", "")
	case errors.Is(err, application.ErrDuplicateEmail):
		response.Error(c, http.StatusConflict, "User with this email already exists", "")
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", "")
	case errors.Is(err, application.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "Status not found", "")
	case errors.Is(err, application.ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, "Comment not found", "")
	case errors.Is(err, application.ErrInvalidID):
		response.Error(c, http.StatusBadRequest, "Invalid ID format", "")
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "You are not allowed to modify this resource", "")
	case errors.Is(err, application.ErrStorageUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "Service unavailable", "")
	default:
		w.internal(c, err)
	}
}

func (w ErrorWriter) internal(c *gin.Context, err error) {
	if w.Logger != nil {
		w.Logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	detail := ""
	if !w.Production {
		detail = err.Error()
	}
	response.Error(c, http.StatusInternalServerError, "Internal server error", detail)
}
