package users

import (
	"log/slog"
	"net/http"

	"hiringkit-app/database"
	"hiringkit-app/internal/app/http/httperr"
	"hiringkit-app/internal/app/http/middleware"
	"hiringkit-app/internal/domain/kits"
	"hiringkit-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type MeResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	AuthProvider string  `json:"auth_provider"`
	OrgID        *string `json:"org_id,omitempty"`
	KitCount     int64   `json:"kit_count"`
}

// GET /me
func GetCurrentUser(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)

	var user users.User
	if err := database.DB.Where("id = ?", ident.UserID()).First(&user).Error; err != nil {
		httperr.JSON(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "User not found")
		return
	}

	var kitCount int64
	if err := database.DB.Model(&kits.Kit{}).Where("user_id = ?", user.ID).Count(&kitCount).Error; err != nil {
		slog.Error("kit count failed", "user_id", user.ID, "err", err)
	}

	c.JSON(http.StatusOK, MeResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
		OrgID:        user.OrgID,
		KitCount:     kitCount,
	})
}
