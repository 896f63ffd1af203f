package kits

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusDraft           = "draft"
	StatusAwaitingPayment = "awaiting_payment"
	StatusPaid            = "paid"
	StatusFailed          = "failed"
)

// Kit is a purchasable generated document bundle. Guest-created kits have no
// owning user until one claims them.
type Kit struct {
	ID         string            `gorm:"primaryKey;type:uuid"`
	UserID     *string           `gorm:"type:uuid;index"`
	OrgID      *string           `gorm:"column:org_id;type:uuid;index"`
	Title      string            `gorm:"not null"`
	Status     string            `gorm:"type:varchar(32);not null"`
	IntakeData datatypes.JSONMap `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (k *Kit) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}
