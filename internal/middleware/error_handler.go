package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/card-fee-simulator/internal/dto"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

type ErrorResponse struct {
	Error      string                  `json:"error"`
	Details    string                  `json:"details,omitempty"`
	LoadErrors []dto.LoadErrorResponse `json:"load_errors,omitempty"`
}

func MapError(err error) (int, ErrorResponse) {
	var loadErrs service.LoadErrors
	if errors.As(err, &loadErrs) {
		resp := ErrorResponse{Error: "rate catalog unavailable"}
		for _, le := range loadErrs {
			resp.LoadErrors = append(resp.LoadErrors, dto.LoadErrorResponse{
				Kind:     string(le.Kind),
				Provider: le.Source.Provider,
				Brand:    le.Source.Brand,
				Locator:  le.Source.Locator,
				Message:  le.Error(),
			})
		}
		return http.StatusServiceUnavailable, resp
	}

	switch {
	case errors.Is(err, service.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "rate catalog unavailable"}
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{Error: err.Error()}
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"}
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: reqErr.Error()}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

// RequestError marks a malformed request, answered with 400.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
