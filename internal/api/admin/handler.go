package admin

import (
	"log/slog"
	"net/http"
	"time"

	"hiringkit-app/database"
	"hiringkit-app/internal/app/http/httperr"
	"hiringkit-app/internal/domain/kits"
	"hiringkit-app/internal/domain/orders"
	"hiringkit-app/internal/domain/plans"
	"hiringkit-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminOrder struct {
	ID              string  `json:"id"`
	KitID           string  `json:"kit_id"`
	KitTitle        string  `json:"kit_title"`
	OrgID           string  `json:"org_id"`
	UserID          *string `json:"user_id,omitempty"`
	Status          string  `json:"status"`
	PlanType        string  `json:"plan_type"`
	TotalCents      int64   `json:"total_cents"`
	StripeSessionID *string `json:"stripe_session_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers    int            `json:"total_users"`
	TotalKits     int            `json:"total_kits"`
	TotalOrders   int            `json:"total_orders"`
	PaidRevenue   int64          `json:"paid_revenue_cents"`
	RecentRevenue int64          `json:"recent_revenue_cents"`
	OrdersPerPlan map[string]int `json:"orders_per_plan"`
}

// GET /admin/orders
func ListAllOrders(c *gin.Context) {
	var rows []orders.Order
	if err := database.DB.Preload("Kit").Order("created_at DESC").Find(&rows).Error; err != nil {
		slog.Error("admin order list failed", "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to load orders")
		return
	}

	result := make([]AdminOrder, 0, len(rows))
	for _, o := range rows {
		row := AdminOrder{
			ID:              o.ID,
			KitID:           o.KitID,
			OrgID:           o.OrgID,
			UserID:          o.UserID,
			Status:          o.Status,
			PlanType:        string(plans.TierForAmount(o.TotalCents)),
			TotalCents:      o.TotalCents,
			StripeSessionID: o.StripeSessionID,
			CreatedAt:       o.CreatedAt.Format("2006-01-02 15:04"),
		}
		if o.Kit != nil {
			row.KitTitle = o.Kit.Title
		}
		result = append(result, row)
	}

	c.JSON(http.StatusOK, result)
}

// GET /admin/stats
func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers, totalKits, totalOrders int64
	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&kits.Kit{}).Count(&totalKits)
	database.DB.Model(&orders.Order{}).Count(&totalOrders)

	var paidRevenue, recentRevenue int64
	if err := database.DB.Model(&orders.Order{}).
		Where("status = ?", orders.StatusPaid).
		Select("COALESCE(SUM(total_cents), 0)").Scan(&paidRevenue).Error; err != nil {
		slog.Error("admin revenue query failed", "err", err)
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if err := database.DB.Model(&orders.Order{}).
		Where("status = ? AND created_at >= ?", orders.StatusPaid, thirtyDaysAgo).
		Select("COALESCE(SUM(total_cents), 0)").Scan(&recentRevenue).Error; err != nil {
		slog.Error("admin recent revenue query failed", "err", err)
	}

	var amounts []int64
	if err := database.DB.Model(&orders.Order{}).Pluck("total_cents", &amounts).Error; err != nil {
		slog.Error("admin plan bucket query failed", "err", err)
	}

	stats.TotalUsers = int(totalUsers)
	stats.TotalKits = int(totalKits)
	stats.TotalOrders = int(totalOrders)
	stats.PaidRevenue = paidRevenue
	stats.RecentRevenue = recentRevenue

	stats.OrdersPerPlan = map[string]int{}
	for _, cents := range amounts {
		stats.OrdersPerPlan[string(plans.TierForAmount(cents))]++
	}

	c.JSON(http.StatusOK, stats)
}
