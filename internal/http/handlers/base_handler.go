// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"convoy/internal/modules/asset"
	"convoy/internal/modules/directory"
	"convoy/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// writeDomainError maps service sentinels onto HTTP statuses. Everything
// unrecognized is a persistence failure: 500 and a retry hint, details stay
// in the server log.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrBadRequest), errors.Is(err, asset.ErrBadRequest),
		errors.Is(err, directory.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound), errors.Is(err, asset.ErrNotFound),
		errors.Is(err, directory.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrInvalidTransition), errors.Is(err, asset.ErrInvalidTransition):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, trip.ErrConflict), errors.Is(err, asset.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error, retry")
	}
}

// intQuery parses an optional integer query parameter; 0 means unset.
func intQuery(c *gin.Context, key string) int {
	v := c.Query(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
