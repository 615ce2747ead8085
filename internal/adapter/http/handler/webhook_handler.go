package handler

import (
	"io"

	"booking-billing-gateway/internal/adapter/http/dto"
	"booking-billing-gateway/internal/core/ports"
	"booking-billing-gateway/pkg/apperror"
	"booking-billing-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles inbound provider events.
type WebhookHandler struct {
	ingestor ports.EventIngestor
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(ingestor ports.EventIngestor) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor}
}

// HandleStripeEvent handles POST /webhooks/stripe.
//
// The body must reach the ingestor byte-for-byte as Stripe sent it:
// signature verification runs over the raw payload, so no JSON binding
// happens here.
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}

	ack, err := h.ingestor.Handle(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WebhookAckResponse{
		Received:  true,
		EventID:   ack.EventID,
		EventType: ack.EventType,
		Accepted:  ack.Accepted,
	})
}
