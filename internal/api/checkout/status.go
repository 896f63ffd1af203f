package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	"hiringkit-app/database"
	"hiringkit-app/internal/app/http/httperr"
	"hiringkit-app/internal/domain/orders"
	"hiringkit-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /kits/:id/order
//
// Returns the most recent order for the kit. The plan label is derived from
// the stored amount; orders do not carry a plan column.
func GetOrderStatus(c *gin.Context) {
	kitID := c.Param("id")

	var order orders.Order
	err := database.DB.
		Preload("Kit").
		Where("kit_id = ?", kitID).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.JSON(c, http.StatusNotFound, httperr.CodeNotFound, "No order found for this kit")
			return
		}
		slog.Error("order lookup failed", "kit_id", kitID, "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to load order")
		return
	}

	resp := OrderStatusResponse{
		ID:         order.ID,
		Status:     order.Status,
		PlanType:   string(plans.TierForAmount(order.TotalCents)),
		TotalCents: order.TotalCents,
		CreatedAt:  order.CreatedAt,
	}
	if order.Kit != nil {
		resp.Kit = KitSnapshot{
			ID:     order.Kit.ID,
			Title:  order.Kit.Title,
			Status: order.Kit.Status,
		}
	}

	c.JSON(http.StatusOK, resp)
}
