// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/masar-app/masar/internal/server/middleware"
	"github.com/masar-app/masar/internal/types"
)

type checkoutRequest struct {
	Plan types.Plan `json:"plan"`
}

// handleCheckout starts a payment for a plan upgrade and returns the
// redirect URL the client should follow.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := s.gateway.Checkout(req.Plan)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, session)
}

// handlePaymentCallback verifies the provider callback and commits the
// upgrade. A declined or malformed callback leaves the account untouched.
func (s *Server) handlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := s.gateway.ParseCallback(r.URL.Query())
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	user, err := s.userService.Upgrade(r.Context(), userID, result.Plan, result.PaymentRef, result.SubscriptionEnds)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, user)
}
