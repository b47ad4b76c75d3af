package model

import "time"

// Credential is the persisted admin session for the backend.
type Credential struct {
	Name      string    `gorm:"primaryKey;size:32;not null"` // "admin"
	UID       string    `gorm:"size:64"`
	Token     string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Credential) Expired(now time.Time) bool {
	return c == nil || c.Token == "" || !now.Before(c.ExpiresAt)
}

// Receipt records an order placed through this gateway.
type Receipt struct {
	OrderID       string    `gorm:"primaryKey;size:64;not null" json:"order_id"`
	PaymentMethod string    `gorm:"size:8;not null" json:"payment_method"`
	IsPaid        bool      `gorm:"not null" json:"is_paid"`
	Total         Amount    `gorm:"type:decimal(12,2);not null" json:"total"`
	Email         string    `gorm:"size:128;index" json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}
