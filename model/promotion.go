package model

import "time"

type Promotion struct {
	DTO
	Code          string     `gorm:"unique;not null" json:"code"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	DiscountType  string     `gorm:"not null" json:"discountType"` // percent, fixed
	DiscountValue float64    `gorm:"type:decimal(10,2);not null" json:"discountValue"`
	MinOrder      float64    `gorm:"type:decimal(10,2);default:0" json:"minOrder"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidTo       *time.Time `json:"validTo"`
	MaxUsage      int        `gorm:"default:0" json:"maxUsage"` // 0 = unlimited
	UsageCount    int        `gorm:"default:0" json:"usageCount"`
	Active        bool       `gorm:"default:true" json:"active"`
}

type Promotions []Promotion

type CreatePromotionInput struct {
	Code          string  `validate:"required,min=3,max=20" json:"code"`
	Description   string  `validate:"required" json:"description"`
	DiscountType  string  `validate:"required,oneof=percent fixed" json:"discountType"`
	DiscountValue float64 `validate:"required,gte=0" json:"discountValue"`
	MinOrder      float64 `validate:"gte=0" json:"minOrder"`
	ValidFrom     string  `json:"validFrom"` // YYYY-MM-DD
	ValidTo       string  `json:"validTo"`
	MaxUsage      int     `validate:"gte=0" json:"maxUsage"`
	Active        bool    `json:"active"`
}

type ApplyPromoInput struct {
	PromoCode string     `validate:"required" json:"promoCode"`
	Items     []CartLine `validate:"required,min=1,dive" json:"items"`
}
