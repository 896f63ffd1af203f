package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	"hiringkit-app/config"
	"hiringkit-app/database"
	"hiringkit-app/internal/api/kits"
	"hiringkit-app/internal/app/http/httperr"
	"hiringkit-app/internal/app/http/middleware"
	"hiringkit-app/internal/domain/identity"
	domkits "hiringkit-app/internal/domain/kits"
	"hiringkit-app/internal/domain/orders"
	"hiringkit-app/internal/domain/orgs"
	"hiringkit-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
)

// GET /plans
func ListPlans(c *gin.Context) {
	out := []plans.Plan{
		plans.Catalog[plans.PlanSolo],
		plans.Catalog[plans.PlanPro],
	}
	c.JSON(http.StatusOK, out)
}

// POST /checkout
//
// The order row is written as "pending" before the Stripe call, then
// promoted to "awaiting_payment" with the session id. A provider rejection
// marks it "failed"; a session without a recorded id can only exist when the
// follow-up update fails, and the pending row keeps it reconcilable.
func CreateCheckoutSession(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err.Error())
		return
	}

	plan, ok := plans.Lookup(req.PlanType)
	if !ok {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, "Unknown plan_type")
		return
	}

	ident := middleware.CurrentIdentity(c)

	kit, err := kits.FindAccessibleKit(database.DB, req.KitID, ident)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.JSON(c, http.StatusNotFound, httperr.CodeNotFound, "Kit not found")
			return
		}
		slog.Error("kit lookup failed", "kit_id", req.KitID, "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to load kit")
		return
	}

	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Stripe key not configured")
		return
	}

	orgID, err := resolveOrgID(ident, kit)
	if err != nil {
		slog.Error("guest org provisioning failed", "kit_id", kit.ID, "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to start checkout")
		return
	}

	order := orders.Order{
		OrgID:      orgID,
		UserID:     resolveUserID(ident, kit),
		KitID:      kit.ID,
		Status:     orders.StatusPending,
		TotalCents: plan.AmountCents,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		slog.Error("order insert failed", "kit_id", kit.ID, "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to create order")
		return
	}

	s, err := checkoutsession.New(sessionParams(kit, plan, req, ident))
	if err != nil {
		slog.Error("stripe session create failed", "order_id", order.ID, "err", err)
		if dbErr := database.DB.Model(&orders.Order{}).
			Where("id = ?", order.ID).
			Update("status", orders.StatusFailed).Error; dbErr != nil {
			slog.Error("order failure mark failed", "order_id", order.ID, "err", dbErr)
		}
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to create checkout session")
		return
	}

	if err := database.DB.Model(&orders.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"stripe_session_id": s.ID,
			"status":            orders.StatusAwaitingPayment,
		}).Error; err != nil {
		slog.Error("order session link failed", "order_id", order.ID, "session_id", s.ID, "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to record checkout session")
		return
	}

	if err := database.DB.Model(&domkits.Kit{}).
		Where("id = ?", kit.ID).
		Update("status", domkits.StatusAwaitingPayment).Error; err != nil {
		// order is already linked; kit status catches up via the webhook
		slog.Warn("kit status update failed", "kit_id", kit.ID, "err", err)
	}

	c.JSON(http.StatusOK, CheckoutResponse{URL: s.URL, SessionID: s.ID})
}

// resolveOrgID prefers the caller's organization, then the kit's. With
// neither present a placeholder guest organization is provisioned so the
// order has a tenant to reference.
func resolveOrgID(ident identity.Identity, kit *domkits.Kit) (string, error) {
	if ident.OrgID() != nil {
		return *ident.OrgID(), nil
	}
	if kit.OrgID != nil {
		return *kit.OrgID, nil
	}
	org, err := orgs.ProvisionGuest(database.DB)
	if err != nil {
		return "", err
	}
	return org.ID, nil
}

func resolveUserID(ident identity.Identity, kit *domkits.Kit) *string {
	if ident.IsAuthenticated() {
		uid := ident.UserID()
		return &uid
	}
	return kit.UserID
}

// payerID labels the session metadata: kit owner, else current user, else
// the literal "guest".
func payerID(kit *domkits.Kit, ident identity.Identity) string {
	if kit.UserID != nil {
		return *kit.UserID
	}
	if ident.IsAuthenticated() {
		return ident.UserID()
	}
	return "guest"
}

func sessionParams(kit *domkits.Kit, plan plans.Plan, req CheckoutRequest, ident identity.Identity) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:               stripe.String(req.SuccessURL),
		CancelURL:                stripe.String(req.CancelURL),
		AllowPromotionCodes:      stripe.Bool(true),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(plan.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(plan.Name),
						Description: stripe.String(plan.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	params.AddMetadata("kit_id", kit.ID)
	params.AddMetadata("plan_type", string(plan.Type))
	params.AddMetadata("payer_id", payerID(kit, ident))

	if ident.IsAuthenticated() && ident.Email() != "" {
		params.CustomerEmail = stripe.String(ident.Email())
	}

	return params
}
