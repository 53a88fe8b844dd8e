package database

import (
	"biryani_club/constants"
	"biryani_club/model"
	"log"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashOr(plain string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), 10)
	if err != nil {
		return plain
	}
	return string(bytes)
}

func SeedData(db *gorm.DB) {
	accounts := []model.Customer{
		{Username: "admin", Email: "admin@biryaniclub.local", Password: hashOr("change-me-admin"), FullName: "Store Admin", Phone: "0000000000", Role: constants.ROLE_ADMIN, IsActive: true},
		{Username: "delivery", Email: "delivery@biryaniclub.local", Password: hashOr("change-me-delivery"), FullName: "Delivery Staff", Phone: "0000000001", Role: constants.ROLE_DELIVERY, IsActive: true},
	}
	for _, account := range accounts {
		if err := db.Where(model.Customer{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed account:", account.Username, "error:", err)
		}
	}

	menu := []model.MenuItem{
		{Name: "Hyderabadi Chicken Biryani", Category: "Biryani", Price: 320, Description: "Slow-cooked dum biryani with saffron", Emoji: "🍛", InStock: true},
		{Name: "Mutton Biryani", Category: "Biryani", Price: 420, Description: "Tender mutton layered with basmati", Emoji: "🍖", InStock: true},
		{Name: "Veg Biryani", Category: "Biryani", Price: 220, Description: "Seasonal vegetables, whole spices", Emoji: "🥕", InStock: true},
		{Name: "Chicken 65", Category: "Starters", Price: 180, Description: "Spicy deep-fried chicken bites", Emoji: "🌶️", InStock: true},
		{Name: "Paneer Tikka", Category: "Starters", Price: 200, Description: "Char-grilled cottage cheese", Emoji: "🧀", InStock: true},
		{Name: "Raita", Category: "Sides", Price: 40, Description: "Cucumber yogurt", Emoji: "🥒", InStock: true},
		{Name: "Mirchi Ka Salan", Category: "Sides", Price: 60, Description: "Chilli peanut curry", Emoji: "🫑", InStock: true},
		{Name: "Gulab Jamun", Category: "Desserts", Price: 80, Description: "Two pieces, rose syrup", Emoji: "🍮", InStock: true},
		{Name: "Double Ka Meetha", Category: "Desserts", Price: 90, Description: "Hyderabadi bread pudding", Emoji: "🍞", InStock: true},
		{Name: "Masala Chaas", Category: "Beverages", Price: 50, Description: "Spiced buttermilk", Emoji: "🥛", InStock: true},
	}
	for _, item := range menu {
		item.Slug = slug.Make(item.Name)
		if err := db.Where(model.MenuItem{Name: item.Name}).FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed menu item:", item.Name, "error:", err)
		}
	}

	var promoCount int64
	db.Model(&model.Promotion{}).Count(&promoCount)
	if promoCount == 0 {
		validTo := time.Now().AddDate(0, 1, 0)
		promo := model.Promotion{
			Code:          "WELCOME20",
			Description:   "20% off on first order",
			DiscountType:  constants.DISCOUNT_PERCENT,
			DiscountValue: 20,
			MinOrder:      500,
			MaxUsage:      100,
			ValidTo:       &validTo,
			Active:        true,
		}
		if err := db.Create(&promo).Error; err != nil {
			log.Println("failed to seed promotion:", err)
		}
	}

	rewards := []model.Reward{
		{Name: "₹50 Discount", Points: 100, Description: "Get ₹50 off your next order", Icon: "fa-tag", Active: true},
		{Name: "Free Drink", Points: 50, Description: "Free beverage with your order", Icon: "fa-coffee", Active: true},
		{Name: "Free Dessert", Points: 75, Description: "Complimentary dessert", Icon: "fa-ice-cream", Active: true},
		{Name: "Priority Delivery", Points: 200, Description: "Jump to front of the queue", Icon: "fa-bolt", Active: true},
		{Name: "Birthday Surprise", Points: 150, Description: "Special gift on your birthday", Icon: "fa-gift", Active: true},
	}
	for _, reward := range rewards {
		if err := db.Where(model.Reward{Name: reward.Name}).FirstOrCreate(&reward).Error; err != nil {
			log.Println("failed to seed reward:", reward.Name, "error:", err)
		}
	}

	storeOpen := model.Setting{Key: constants.SETTING_STORE_OPEN, Value: "true"}
	if err := db.Where(model.Setting{Key: storeOpen.Key}).FirstOrCreate(&storeOpen).Error; err != nil {
		log.Println("failed to seed store setting:", err)
	}
}
