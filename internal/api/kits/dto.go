package kits

import (
	"time"

	"hiringkit-app/internal/domain/kits"
)

type CreateKitRequest struct {
	Title      string                 `json:"title" binding:"required"`
	IntakeData map[string]interface{} `json:"intake_data"`
}

type PatchIntakeRequest struct {
	FieldUpdates map[string]interface{} `json:"field_updates"`
}

type KitDTO struct {
	ID         string                 `json:"id"`
	UserID     *string                `json:"user_id,omitempty"`
	OrgID      *string                `json:"org_id,omitempty"`
	Title      string                 `json:"title"`
	Status     string                 `json:"status"`
	IntakeData map[string]interface{} `json:"intake_data"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

func toKitDTO(k *kits.Kit) KitDTO {
	data := map[string]interface{}(k.IntakeData)
	if data == nil {
		data = map[string]interface{}{}
	}
	return KitDTO{
		ID:         k.ID,
		UserID:     k.UserID,
		OrgID:      k.OrgID,
		Title:      k.Title,
		Status:     k.Status,
		IntakeData: data,
		CreatedAt:  k.CreatedAt,
		UpdatedAt:  k.UpdatedAt,
	}
}
