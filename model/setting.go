package model

type Setting struct {
	DTO
	Key   string `gorm:"unique;not null" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

type Reward struct {
	DTO
	Name        string `gorm:"unique;not null" json:"name"`
	Points      int    `gorm:"not null" json:"points"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `json:"icon"`
	Active      bool   `gorm:"default:true" json:"active"`
}

type Rewards []Reward

// RewardRedemption records a voucher issued when points are spent outside an
// order.
type RewardRedemption struct {
	DTO
	CustomerId  uint     `gorm:"not null;index" json:"customerId"`
	RewardId    uint     `gorm:"not null;index" json:"rewardId"`
	VoucherCode string   `gorm:"unique;not null" json:"voucherCode"`
	PointsSpent int      `gorm:"not null" json:"pointsSpent"`
	Customer    Customer `gorm:"foreignKey:CustomerId" json:"-"`
	Reward      Reward   `gorm:"foreignKey:RewardId" json:"reward"`
}

type RedeemRewardInput struct {
	RewardId uint `validate:"required" json:"rewardId"`
}

// DailySales is the nightly revenue snapshot row written by the report job.
type DailySales struct {
	DTO
	Day        string  `gorm:"unique;not null" json:"day"` // YYYY-MM-DD
	OrderCount int64   `gorm:"not null" json:"orderCount"`
	Revenue    float64 `gorm:"type:decimal(12,2);not null" json:"revenue"`
}
