// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/draftwise/internal/document"
	"github.com/pdiddy/draftwise/internal/draft"
	"github.com/pdiddy/draftwise/internal/generate"
	"github.com/pdiddy/draftwise/internal/pack"
	"github.com/pdiddy/draftwise/internal/studio"
)

// APIError is the body of every failed response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	apiErr := APIError{Message: msg, Code: code}
	var ie *studio.InputError
	if errors.As(err, &ie) {
		apiErr.Field = ie.Field
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: apiErr})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondErr maps a studio, pack or collaborator error to a status and
// error code.
func respondErr(c *gin.Context, err error) {
	var (
		ie *studio.InputError
		pe *pack.ParseError
		ve *pack.ValidationError
		ge *generate.Error
		de *document.Error
	)
	switch {
	case errors.As(err, &ie):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.As(err, &pe):
		RespondError(c, http.StatusBadRequest, "malformed_pack", err)
	case errors.As(err, &ve):
		RespondError(c, http.StatusUnprocessableEntity, "invalid_pack", err)
	case errors.Is(err, draft.ErrNotReviewed):
		RespondError(c, http.StatusForbidden, "not_reviewed", err)
	case errors.Is(err, draft.ErrUnavailable):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, document.ErrNoText), errors.As(err, &de):
		RespondError(c, http.StatusUnprocessableEntity, "extraction_failed", err)
	case errors.Is(err, context.DeadlineExceeded):
		RespondError(c, http.StatusGatewayTimeout, "generation_timeout", err)
	case errors.As(err, &ge):
		RespondError(c, http.StatusBadGateway, "generation_failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
