package stripewebhooks

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"hiringkit-app/config"
	"hiringkit-app/internal/app/http/httperr"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// POST /webhook
func StripeWebhook(c *gin.Context) {
	endpointSecret := config.STRIPE_WEBHOOK_SECRET
	if endpointSecret == "" {
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "STRIPE_WEBHOOK_SECRET not configured")
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		httperr.JSON(c, http.StatusServiceUnavailable, httperr.CodeInternal, "Error reading request body")
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		slog.Warn("stripe signature verification failed", "err", err)
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, "Signature verification failed")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, "Failed to parse session")
			return
		}
		if err := handleCheckoutCompleted(&session); err != nil {
			slog.Error("checkout completion failed", "session_id", session.ID, "err", err)
			httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to reconcile order")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	case "checkout.session.expired":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, "Failed to parse session")
			return
		}
		if err := handleCheckoutExpired(&session); err != nil {
			slog.Error("checkout expiry failed", "session_id", session.ID, "err", err)
			httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to reconcile order")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	default:
		// Acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
