package checkout

import "time"

type CheckoutRequest struct {
	KitID      string `json:"kit_id" binding:"required"`
	PlanType   string `json:"plan_type" binding:"required"`
	SuccessURL string `json:"success_url" binding:"required,url"`
	CancelURL  string `json:"cancel_url" binding:"required,url"`
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type KitSnapshot struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

type OrderStatusResponse struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	PlanType   string      `json:"plan_type"`
	TotalCents int64       `json:"total_cents"`
	Kit        KitSnapshot `json:"kit"`
	CreatedAt  time.Time   `json:"created_at"`
}
