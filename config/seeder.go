package config

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/models"
	"github.com/VictorRop4/alx-project-nexus/utils"
)

func SeedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Name: "Electronics", Slug: "electronics", Description: "Phones, laptops and accessories"},
		{Name: "Fashion", Slug: "fashion", Description: "Clothing and footwear"},
		{Name: "Home & Kitchen", Slug: "home-kitchen", Description: "Appliances and furniture"},
	}

	for _, category := range categories {
		var existing models.Category
		if err := db.Where("slug = ?", category.Slug).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Failed to seed category %s: %v", category.Name, err)
			}
		}
	}
}

func SeedUsers(db *gorm.DB) {
	log.Println("Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username: "admin",
			Email:    "admin@example.com",
			Password: password,
			Role:     models.RoleAdmin,
			Profile:  &models.CustomerProfile{FirstName: "Site", LastName: "Admin"},
		},
		{
			Username: "seller1",
			Email:    "seller1@example.com",
			Password: password,
			Role:     models.RoleSeller,
			Profile:  &models.CustomerProfile{FirstName: "Seller", LastName: "One"},
		},
		{
			Username: "customer1",
			Email:    "customer1@example.com",
			Password: password,
			Role:     models.RoleCustomer,
			Profile: &models.CustomerProfile{
				FirstName:   "Customer",
				LastName:    "One",
				PhoneNumber: "254708374149",
			},
		},
	}

	for _, user := range users {
		var existing models.User
		if err := db.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Username, err)
				} else {
					log.Printf("User seeded: %s (ID: %d)", user.Username, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Username)
		}
	}

	log.Println("Seeding complete.")
}

func SeedProducts(db *gorm.DB) {
	var seller models.User
	if err := db.Where("role = ?", models.RoleSeller).First(&seller).Error; err != nil {
		log.Printf("No seller to own seeded products: %v", err)
		return
	}

	var category models.Category
	if err := db.First(&category).Error; err != nil {
		log.Printf("No category for seeded products: %v", err)
		return
	}

	products := []models.Product{
		{
			SKU:           "SKU-0001",
			Slug:          "wireless-earbuds",
			Name:          "Wireless Earbuds",
			Description:   "Bluetooth 5.3 earbuds with charging case",
			Price:         decimal.NewFromFloat(2499.00),
			StockQuantity: 50,
			CategoryID:    category.ID,
			SellerID:      seller.ID,
		},
		{
			SKU:           "SKU-0002",
			Slug:          "usb-c-charger",
			Name:          "USB-C Charger 65W",
			Description:   "GaN fast charger",
			Price:         decimal.NewFromFloat(1850.00),
			StockQuantity: 120,
			CategoryID:    category.ID,
			SellerID:      seller.ID,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := db.Where("sku = ?", product.SKU).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&product).Error; err != nil {
				log.Printf("Failed to seed product %s: %v", product.Name, err)
			}
		}
	}
}
