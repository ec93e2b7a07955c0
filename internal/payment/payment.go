// Package payment implements the checkout flow for plan upgrades. The
// gateway here is a stand-in that immediately redirects back with a paid
// status; the callback contract matches what a hosted provider would send,
// so swapping in a real one only changes session creation.
package payment

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/masar-app/masar/internal/types"
)

// Subscription term granted by a successful payment.
const subscriptionTerm = 30 * 24 * time.Hour

// Callback query parameters.
const (
	ParamStatus = "status"
	ParamRef    = "id"
	ParamPlan   = "plan"

	StatusPaid   = "paid"
	StatusFailed = "failed"
)

// Session is a started checkout the client should redirect to.
type Session struct {
	PaymentRef  string `json:"paymentRef"`
	RedirectURL string `json:"redirectUrl"`
	Amount      int    `json:"amount"`
}

// CallbackResult is a verified callback, ready to commit.
type CallbackResult struct {
	PaymentRef       string
	Plan             types.Plan
	SubscriptionEnds time.Time
}

// Gateway creates checkout sessions and verifies their callbacks.
type Gateway struct {
	baseURL string
}

// NewGateway creates a Gateway. baseURL is the public address callbacks
// return to.
func NewGateway(baseURL string) *Gateway {
	return &Gateway{baseURL: strings.TrimRight(baseURL, "/")}
}

func newPaymentRef() string {
	return "pay_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// Checkout starts a payment for a paid plan.
func (g *Gateway) Checkout(plan types.Plan) (*Session, error) {
	if !plan.Valid() {
		return nil, &InvalidPlanError{Plan: string(plan)}
	}
	if plan == types.PlanFree {
		return nil, &InvalidPlanError{Plan: string(plan), Reason: "free plan needs no payment"}
	}

	ref := newPaymentRef()
	params := url.Values{}
	params.Set(ParamStatus, StatusPaid)
	params.Set(ParamRef, ref)
	params.Set(ParamPlan, string(plan))

	return &Session{
		PaymentRef:  ref,
		RedirectURL: fmt.Sprintf("%s/payment/callback?%s", g.baseURL, params.Encode()),
		Amount:      plan.Price(),
	}, nil
}

// ParseCallback validates provider callback parameters. A non-paid status
// returns DeclinedError and the caller must leave the account untouched.
func (g *Gateway) ParseCallback(params url.Values) (*CallbackResult, error) {
	status := params.Get(ParamStatus)
	if status != StatusPaid {
		return nil, &DeclinedError{Status: status}
	}

	ref := params.Get(ParamRef)
	if ref == "" {
		return nil, &CallbackError{Message: "missing payment reference"}
	}

	plan := types.Plan(params.Get(ParamPlan))
	if !plan.Valid() || plan == types.PlanFree {
		return nil, &InvalidPlanError{Plan: params.Get(ParamPlan)}
	}

	return &CallbackResult{
		PaymentRef:       ref,
		Plan:             plan,
		SubscriptionEnds: time.Now().Add(subscriptionTerm),
	}, nil
}
