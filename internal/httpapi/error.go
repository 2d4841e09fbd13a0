package httpapi

import (
	"errors"
	"net/http"

	"dikra-store/internal/cart"
	"dikra-store/internal/logger"
	"dikra-store/internal/order"
	"dikra-store/internal/storefront"
	"dikra-store/internal/utils"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error   string             `json:"error"`
	Fields  []order.FieldError `json:"fields,omitempty"`
	Session *storefront.View   `json:"session,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		verrs order.ValidationErrors
		gerr  *order.GatewayError
	)

	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrSubmissionInProgress),
		errors.Is(err, storefront.ErrCheckoutClosed):
		return http.StatusConflict
	case errors.Is(err, cart.ErrCartEmpty),
		errors.Is(err, order.ErrInvalidLookupEmail),
		errors.Is(err, storefront.ErrUnknownEvent):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrGatewayNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &gerr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, view *storefront.View) {
	code := statusFor(err)

	resp := errorResponse{Error: err.Error(), Session: view}

	var verrs order.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Error = "invalid order form"
		resp.Fields = verrs
	}

	if code >= http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", code),
			zap.Error(err),
		)
	}

	utils.WriteJSON(w, code, resp)
}
