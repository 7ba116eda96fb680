package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/usecase"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError renders err as JSON. ValidationError payloads are
// rendered verbatim with 422; sentinel errors resolve against the provided
// cases; everything else falls back to the generic response so raw storage
// errors never reach the client.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	if ve, ok := usecase.AsValidationError(err); ok {
		if len(ve.Fields) > 0 {
			c.JSON(http.StatusUnprocessableEntity, NewFieldErrorResponse(c, ve.Fields))
			return
		}
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(c, ve.Message))
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			c.JSON(cs.Status, NewErrorResponse(c, cs.Message))
			return
		}
	}

	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}
