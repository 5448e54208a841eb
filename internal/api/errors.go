package api

import (
	"alcyxob/gympumped/internal/repository"
	"alcyxob/gympumped/internal/service"
	"alcyxob/gympumped/internal/session"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps service and repository errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var authErr *session.AuthError
	switch {
	case errors.As(err, &authErr):
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, authErr.Message)
		case errors.Is(err, service.ErrAuthenticationFailed),
			errors.Is(err, service.ErrInvalidToken),
			errors.Is(err, session.ErrSignedOut):
			abortWithError(c, http.StatusUnauthorized, authErr.Message)
		default:
			abortWithError(c, http.StatusBadRequest, authErr.Message)
		}
	case errors.Is(err, service.ErrInvalidDate):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrEncoding):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrPreconditionFailed):
		abortWithError(c, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, service.ErrSplitNotFound),
		errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusNotImplemented, err.Error())
	case errors.Is(err, repository.ErrStoreUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, "Storage is unavailable, try again later")
	default:
		log.Printf("ERROR: Unhandled error for %s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
