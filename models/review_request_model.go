package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReviewRequestStatusOpen     = "open"
	ReviewRequestStatusAssigned = "assigned"
	ReviewRequestStatusClosed   = "closed"
)

// ReviewRequest is a seller's standing ask for a paid review. Task assignment
// may pull seller and product details from one of these.
type ReviewRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SellerID    uuid.UUID `gorm:"not null;index" json:"seller_id"`
	ProductLink string    `gorm:"size:500;not null" json:"product_link"`
	BrandName   string    `gorm:"size:255" json:"brand_name"`
	Commission  float64   `gorm:"type:numeric(12,2);not null;default:0.00" json:"commission"`
	Status      string    `gorm:"size:20;not null;default:'open';index" json:"status"`

	Seller Seller `gorm:"foreignkey:SellerID" json:"seller,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ReviewRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
