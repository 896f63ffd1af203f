package kits

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"hiringkit-app/database"
	"hiringkit-app/internal/app/http/httperr"
	"hiringkit-app/internal/app/http/middleware"
	"hiringkit-app/internal/domain/intake"
	"hiringkit-app/internal/domain/kits"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// POST /kits
func CreateKit(c *gin.Context) {
	var req CreateKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err.Error())
		return
	}

	if req.IntakeData == nil {
		req.IntakeData = map[string]interface{}{}
	}
	if err := intake.ValidatePartial(req.IntakeData); err != nil {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeValidationFailed, err.Error())
		return
	}

	ident := middleware.CurrentIdentity(c)

	kit := kits.Kit{
		Title:      req.Title,
		Status:     kits.StatusDraft,
		IntakeData: datatypes.JSONMap(req.IntakeData),
	}
	if ident.IsAuthenticated() {
		uid := ident.UserID()
		kit.UserID = &uid
		kit.OrgID = ident.OrgID()
	}

	if err := database.DB.Create(&kit).Error; err != nil {
		slog.Error("kit insert failed", "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to create kit")
		return
	}

	c.JSON(http.StatusCreated, toKitDTO(&kit))
}

// GET /kits/:id
func GetKit(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)

	kit, err := FindAccessibleKit(database.DB, c.Param("id"), ident)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.JSON(c, http.StatusNotFound, httperr.CodeNotFound, "Kit not found")
			return
		}
		slog.Error("kit lookup failed", "kit_id", c.Param("id"), "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to load kit")
		return
	}

	c.JSON(http.StatusOK, toKitDTO(kit))
}

// GET /kits — authenticated; admins see everything
func ListKits(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)

	var rows []kits.Kit
	if err := accessibleKits(database.DB, ident).Order("created_at DESC").Find(&rows).Error; err != nil {
		slog.Error("kit list failed", "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to load kits")
		return
	}

	out := make([]KitDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toKitDTO(&rows[i]))
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /kits/:id/intake
func PatchIntake(c *gin.Context) {
	var req PatchIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err.Error())
		return
	}
	if len(req.FieldUpdates) == 0 {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, "field_updates must not be empty")
		return
	}

	ident := middleware.CurrentIdentity(c)

	kit, err := FindAccessibleKit(database.DB, c.Param("id"), ident)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.JSON(c, http.StatusNotFound, httperr.CodeNotFound, "Kit not found")
			return
		}
		slog.Error("kit lookup failed", "kit_id", c.Param("id"), "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to load kit")
		return
	}

	merged := intake.Merge(kit.IntakeData, req.FieldUpdates)
	if err := intake.ValidatePartial(merged); err != nil {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeValidationFailed, err.Error())
		return
	}

	if err := database.DB.Model(&kits.Kit{}).
		Where("id = ?", kit.ID).
		Updates(map[string]interface{}{
			"intake_data": datatypes.JSONMap(merged),
			"updated_at":  time.Now(),
		}).Error; err != nil {
		slog.Error("intake update failed", "kit_id", kit.ID, "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to save intake data")
		return
	}

	updatedFields := make([]string, 0, len(req.FieldUpdates))
	for k := range req.FieldUpdates {
		updatedFields = append(updatedFields, k)
	}
	sort.Strings(updatedFields)

	c.JSON(http.StatusOK, gin.H{
		"intake_data":    merged,
		"updated_fields": updatedFields,
	})
}
