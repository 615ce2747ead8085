package handler

import (
	"booking-billing-gateway/internal/adapter/http/dto"
	"booking-billing-gateway/internal/adapter/http/middleware"
	"booking-billing-gateway/internal/core/ports"
	"booking-billing-gateway/pkg/apperror"
	"booking-billing-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// BillingHandler handles checkout and billing state endpoints.
type BillingHandler struct {
	checkoutSvc ports.CheckoutService
	reconciler  ports.Reconciler
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(checkoutSvc ports.CheckoutService, reconciler ports.Reconciler) *BillingHandler {
	return &BillingHandler{checkoutSvc: checkoutSvc, reconciler: reconciler}
}

func userFromContext(c *gin.Context) (userID, email string, ok bool) {
	uid, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return "", "", false
	}
	userID, _ = uid.(string)
	if em, exists := c.Get(middleware.CtxUserEmail); exists {
		email, _ = em.(string)
	}
	return userID, email, userID != ""
}

// CreateCheckoutSession handles POST /api/v1/checkout/sessions.
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	userID, email, ok := userFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	url, err := h.checkoutSvc.CreateCheckoutSession(c.Request.Context(), ports.CheckoutRequest{
		UserID:     userID,
		Email:      email,
		PriceID:    req.PriceID,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.CheckoutSessionResponse{CheckoutURL: url})
}

// CompleteCheckout handles POST /api/v1/checkout/complete.
//
// Called when the browser returns from the hosted checkout. The provider's
// event usually hasn't arrived yet, so an eager reconcile fetches the fresh
// state instead of serving the stale snapshot.
func (h *BillingHandler) CompleteCheckout(c *gin.Context) {
	userID, _, ok := userFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	state, err := h.reconciler.ReconcileUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPaymentStateResponse(state))
}

// GetBillingState handles GET /api/v1/billing/state.
func (h *BillingHandler) GetBillingState(c *gin.Context) {
	userID, _, ok := userFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	state, err := h.checkoutSvc.PaymentState(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPaymentStateResponse(state))
}
