package model

import (
	"encoding/json"
	"time"
)

type Order struct {
	DTO
	PublicCode      string `gorm:"unique;not null" json:"orderCode"`
	CustomerName    string `gorm:"not null" json:"customerName"`
	CustomerPhone   string `gorm:"not null" json:"customerPhone"`
	CustomerAddress string `gorm:"type:text;not null" json:"customerAddress"`
	ItemsJson       string `gorm:"type:text;not null" json:"-"`

	Subtotal        float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	PromoDiscount   float64 `gorm:"type:decimal(10,2);default:0" json:"promoDiscount"`
	LoyaltyDiscount float64 `gorm:"type:decimal(10,2);default:0" json:"loyaltyDiscount"`
	Total           float64 `gorm:"type:decimal(10,2);not null" json:"total"`
	PointsRedeemed  int     `gorm:"default:0" json:"pointsRedeemed"`
	PointsEarned    int     `gorm:"default:0" json:"pointsEarned"`

	PaymentMethod string `gorm:"not null" json:"paymentMethod"`
	Status        string `gorm:"default:'pending'" json:"status"`
	PromoCode     string `json:"promoCode"`

	CustomerId       *uint     `gorm:"index" json:"customerId"`
	Customer         *Customer `gorm:"foreignKey:CustomerId" json:"-"`
	DeliveryPersonId *uint     `gorm:"index" json:"deliveryPersonId"`
	DeliveryPerson   *Customer `gorm:"foreignKey:DeliveryPersonId" json:"-"`

	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	Rating            *int       `json:"rating"`
	Feedback          string     `gorm:"type:text" json:"feedback"`
}

type Orders []Order

// CartLine is the per-checkout item payload. Only name and quantity are
// trusted from the client; unit price is re-resolved against the menu at
// settlement.
type CartLine struct {
	ItemName  string  `validate:"required" json:"itemName"`
	UnitPrice float64 `validate:"gte=0" json:"unitPrice"`
	Quantity  int     `validate:"required,gte=1" json:"quantity"`
}

func (o *Order) Items() []CartLine {
	var lines []CartLine
	if o.ItemsJson == "" {
		return lines
	}
	_ = json.Unmarshal([]byte(o.ItemsJson), &lines)
	return lines
}

type PlaceOrderInput struct {
	CustomerName    string     `validate:"required" json:"customerName"`
	CustomerPhone   string     `validate:"required" json:"customerPhone"`
	CustomerAddress string     `validate:"required" json:"customerAddress"`
	Items           []CartLine `validate:"required,min=1,dive" json:"items"`
	PaymentMethod   string     `validate:"required" json:"paymentMethod"`
	PromoCode       string     `json:"promoCode"`
	LoyaltyPoints   int        `json:"loyaltyPoints"`
}

type UpdateOrderStatusInput struct {
	OrderCode string `validate:"required" json:"orderCode"`
	Status    string `validate:"required" json:"status"`
}

type AssignDeliveryInput struct {
	OrderCode        string `validate:"required" json:"orderCode"`
	DeliveryPersonId uint   `validate:"required" json:"deliveryPersonId"`
}

type SubmitRatingInput struct {
	OrderCode string `validate:"required" json:"orderCode"`
	Rating    int    `validate:"required,min=1,max=5" json:"rating"`
	Feedback  string `json:"feedback"`
}

type DeliveryActionInput struct {
	OrderCode string `validate:"required" json:"orderCode"`
}
