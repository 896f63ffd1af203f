package routes

import (
	adminapi "hiringkit-app/internal/api/admin"
	authapi "hiringkit-app/internal/api/auth"
	"hiringkit-app/internal/api/checkout"
	kitsapi "hiringkit-app/internal/api/kits"
	stripewebhooks "hiringkit-app/internal/api/stripewebhook"
	usersapi "hiringkit-app/internal/api/users"
	"hiringkit-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// webhook body must stay untouched for signature verification
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", checkout.ListPlans)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Guest-or-authenticated: kit creation, intake edits and the whole
	// checkout flow work without an account.
	optional := r.Group("/")
	optional.Use(middleware.SanitizeAndCleanInputMiddleware(), middleware.OptionalAuthMiddleware())

	optional.POST("/kits", kitsapi.CreateKit)
	optional.GET("/kits/:id", kitsapi.GetKit)
	optional.PATCH("/kits/:id/intake", kitsapi.PatchIntake)
	optional.POST("/checkout", checkout.CreateCheckoutSession)
	optional.GET("/kits/:id/order", checkout.GetOrderStatus)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.GET("/kits", kitsapi.ListKits)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/orders", adminapi.ListAllOrders)
	admin.GET("/stats", adminapi.GetAdminStats)
}
