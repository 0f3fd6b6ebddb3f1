package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated actor from context.
func CurrentActor(c *gin.Context) model.Actor {
	val, ok := c.Get(middleware.ActorContextKey)
	if !ok {
		return model.Actor{}
	}
	actor, _ := val.(model.Actor)
	return actor
}

type errorResponse struct {
	Error string `json:"error"`
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{domainErrors.ErrNotFound, http.StatusNotFound},
	{domainErrors.ErrUnauthorized, http.StatusForbidden},
	{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{domainErrors.ErrPaymentVerificationFailed, http.StatusPaymentRequired},
	{domainErrors.ErrInvalidTransition, http.StatusConflict},
	{domainErrors.ErrStatusConflict, http.StatusConflict},
	{domainErrors.ErrAlreadyExists, http.StatusConflict},
	{domainErrors.ErrInvalidOrder, http.StatusUnprocessableEntity},
	{domainErrors.ErrInvalidTarget, http.StatusUnprocessableEntity},
	{domainErrors.ErrCapacityExceeded, http.StatusUnprocessableEntity},
	{domainErrors.ErrInvalidMenuItem, http.StatusUnprocessableEntity},
	{domainErrors.ErrTokenUnavailable, http.StatusServiceUnavailable},
}

// statusFor maps a domain error onto its HTTP status.
func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, errorResponse{Error: "internal error"})
		return
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
