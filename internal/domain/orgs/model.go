package orgs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestOrgName is the placeholder name for organizations provisioned during
// a guest checkout.
const GuestOrgName = "Guest checkout"

type Organization struct {
	ID   string `gorm:"primaryKey;type:uuid"`
	Name string `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// ProvisionGuest creates a placeholder organization so a guest order has a
// tenant to reference. Not idempotent: every call creates a new row.
func ProvisionGuest(db *gorm.DB) (*Organization, error) {
	org := Organization{Name: GuestOrgName}
	if err := db.Create(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}
