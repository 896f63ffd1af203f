package kits

import (
	"hiringkit-app/internal/domain/identity"
	"hiringkit-app/internal/domain/kits"

	"gorm.io/gorm"
)

// accessibleKits scopes kit lookups to what the caller may see. An
// authenticated non-admin is constrained to kits they own, so an ownership
// mismatch surfaces as not-found rather than forbidden. Guests and admins
// read unconstrained.
func accessibleKits(db *gorm.DB, who identity.Identity) *gorm.DB {
	q := db.Model(&kits.Kit{})
	if who.IsAuthenticated() && !who.IsAdmin() {
		q = q.Where("user_id = ?", who.UserID())
	}
	return q
}

// FindAccessibleKit loads one kit through the access check. Returns
// gorm.ErrRecordNotFound for both absence and ownership mismatch.
func FindAccessibleKit(db *gorm.DB, id string, who identity.Identity) (*kits.Kit, error) {
	var kit kits.Kit
	if err := accessibleKits(db, who).Where("id = ?", id).First(&kit).Error; err != nil {
		return nil, err
	}
	return &kit, nil
}
