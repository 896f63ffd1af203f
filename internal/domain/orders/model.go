package orders

import (
	"time"

	"hiringkit-app/internal/domain/kits"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status lifecycle: pending (row exists, no payment session yet) →
// awaiting_payment (session created) → paid | failed. Terminal states are
// driven by the payment webhook.
const (
	StatusPending         = "pending"
	StatusAwaitingPayment = "awaiting_payment"
	StatusPaid            = "paid"
	StatusFailed          = "failed"
)

// Order records one checkout attempt against a kit. TotalCents is fixed to
// the selected plan's price at creation time.
type Order struct {
	ID              string  `gorm:"primaryKey;type:uuid"`
	OrgID           string  `gorm:"column:org_id;type:uuid;not null;index"`
	UserID          *string `gorm:"type:uuid;index"`
	KitID           string  `gorm:"type:uuid;not null;index"`
	Status          string  `gorm:"type:varchar(32);not null"`
	StripeSessionID *string `gorm:"uniqueIndex:idx_orders_stripe_session_id"`
	TotalCents      int64   `gorm:"not null"`

	Kit *kits.Kit `gorm:"foreignKey:KitID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
