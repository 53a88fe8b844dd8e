package model

type MenuItem struct {
	DTO
	Name        string  `gorm:"unique;not null" json:"name"`
	Slug        string  `gorm:"unique;not null" json:"slug"`
	Category    string  `gorm:"not null" json:"category"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string  `gorm:"type:text" json:"description"`
	Emoji       string  `json:"emoji"`
	ImageUrl    *string `json:"imageUrl"`
	InStock     bool    `gorm:"default:true" json:"inStock"`
	Popularity  int     `gorm:"default:0" json:"popularity"`
}

type MenuItems []MenuItem

type CreateMenuItemInput struct {
	Name        string  `validate:"required" json:"name"`
	Category    string  `validate:"required" json:"category"`
	Price       float64 `validate:"required,gte=0" json:"price"`
	Description string  `json:"description"`
	Emoji       string  `json:"emoji"`
	ImageUrl    *string `json:"imageUrl"`
}

type EditMenuItemInput struct {
	Category    *string  `json:"category"`
	Price       *float64 `validate:"omitempty,gte=0" json:"price"`
	Description *string  `json:"description"`
	Emoji       *string  `json:"emoji"`
	ImageUrl    *string  `json:"imageUrl"`
	InStock     *bool    `json:"inStock"`
}

type ToggleStockInput struct {
	ItemName string `validate:"required" json:"itemName"`
	InStock  bool   `json:"inStock"`
}

type TrackPopularityInput struct {
	ItemName string `validate:"required" json:"itemName"`
}
