package stripewebhooks

import (
	"errors"
	"fmt"
	"log/slog"

	"hiringkit-app/database"
	"hiringkit-app/internal/domain/kits"
	"hiringkit-app/internal/domain/orders"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleCheckoutCompleted marks the order for the session as paid and
// promotes the kit. One-time payment sessions carry everything needed in
// the event payload, so no follow-up Stripe call is made.
func handleCheckoutCompleted(session *stripe.CheckoutSession) error {
	var order orders.Order
	err := database.DB.Where("stripe_session_id = ?", session.ID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no order for session %s", session.ID)
		}
		return fmt.Errorf("order lookup for session %s: %w", session.ID, err)
	}

	if order.Status == orders.StatusPaid {
		// webhook replay
		return nil
	}

	if err := database.DB.Model(&orders.Order{}).
		Where("id = ?", order.ID).
		Update("status", orders.StatusPaid).Error; err != nil {
		return fmt.Errorf("order %s mark paid: %w", order.ID, err)
	}

	if err := database.DB.Model(&kits.Kit{}).
		Where("id = ?", order.KitID).
		Update("status", kits.StatusPaid).Error; err != nil {
		// order is paid either way; kit status is presentation state
		slog.Warn("kit status update failed", "kit_id", order.KitID, "err", err)
	}

	slog.Info("order paid", "order_id", order.ID, "kit_id", order.KitID, "session_id", session.ID)
	return nil
}

// handleCheckoutExpired fails the order for an abandoned session. Paid
// orders are never demoted.
func handleCheckoutExpired(session *stripe.CheckoutSession) error {
	err := database.DB.Model(&orders.Order{}).
		Where("stripe_session_id = ? AND status = ?", session.ID, orders.StatusAwaitingPayment).
		Update("status", orders.StatusFailed).Error
	if err != nil {
		return fmt.Errorf("order for session %s mark failed: %w", session.ID, err)
	}
	return nil
}
