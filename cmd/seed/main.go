package main

import (
	"fmt"

	"propmarket/internal/model"
	"propmarket/pkg/config"
	"propmarket/pkg/database"
	"propmarket/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		email    string
		username string
		name     string
		password string
		role     string
		limit    int
	}{
		{"admin@propmarket.test", "admin", "Site Admin", "admin123", "admin", 0},
		{"alice@propmarket.test", "alice_seller", "Alice Tan", "password123", "user", 5},
		{"bob@propmarket.test", "bob_seller", "Bob Wijaya", "password123", "user", 3},
		{"carol@propmarket.test", "carol_buyer", "Carol Lim", "password123", "user", 0},
	}

	userIDs := make(map[string]string, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &model.UserModel{
			Email:        userData.email,
			Username:     userData.username,
			Name:         userData.name,
			Password:     string(hashedPassword),
			Role:         userData.role,
			ListingLimit: userData.limit,
			IsActive:     true,
		}

		var existing model.UserModel
		result := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			userIDs[userData.username] = existing.ID
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs[userData.username] = user.ID
	}

	packages := []model.ListingPackageModel{
		{
			Name:         "Starter Pack",
			Description:  "Post up to 3 listings, no expiry",
			Price:        5000000,
			ListingLimit: 3,
			Type:         "TOPUP",
			IsActive:     true,
		},
		{
			Name:         "Agent Monthly",
			Description:  "Post up to 20 listings for 30 days",
			Price:        15000000,
			ListingLimit: 20,
			DurationDays: 30,
			Type:         "SUBSCRIPTION",
			IsActive:     true,
		},
		{
			Name:         "Agent Yearly",
			Description:  "Post up to 50 listings for a year",
			Price:        120000000,
			ListingLimit: 50,
			DurationDays: 365,
			Type:         "SUBSCRIPTION",
			IsActive:     true,
		},
	}

	for i := range packages {
		pkg := &packages[i]

		var existing model.ListingPackageModel
		result := db.Where("name = ?", pkg.Name).First(&existing)
		if result.Error == nil {
			log.Info("Package %s already exists, skipping", pkg.Name)
			continue
		}

		if err := db.Create(pkg).Error; err != nil {
			log.Error("Failed to create package %s: %v", pkg.Name, err)
			continue
		}
		log.Info("Created package: %s", pkg.Name)
	}

	properties := []struct {
		owner    string
		property model.PropertyModel
	}{
		{
			owner: "alice_seller",
			property: model.PropertyModel{
				Title:        "Sunny two bedroom apartment near the station",
				Description:  "Bright corner unit on the 8th floor, walking distance to the MRT.",
				Price:        85000000000,
				City:         "Jakarta",
				Address:      "Jl. Sudirman 12",
				Bedrooms:     2,
				Bathrooms:    1,
				SurfaceArea:  64,
				PropertyType: "apartment",
				ListingType:  "sale",
				Status:       "published",
			},
		},
		{
			owner: "alice_seller",
			property: model.PropertyModel{
				Title:        "Family house with garden",
				Description:  "Quiet street, renovated kitchen, small back garden.",
				Price:        210000000000,
				City:         "Bandung",
				Address:      "Jl. Dago Atas 5",
				Bedrooms:     4,
				Bathrooms:    2,
				SurfaceArea:  180,
				PropertyType: "house",
				ListingType:  "sale",
				Status:       "published",
			},
		},
		{
			owner: "bob_seller",
			property: model.PropertyModel{
				Title:        "Studio for rent in the city center",
				Description:  "Furnished studio, utilities included.",
				Price:        750000000,
				City:         "Jakarta",
				Address:      "Jl. Thamrin 88",
				Bedrooms:     1,
				Bathrooms:    1,
				SurfaceArea:  28,
				PropertyType: "apartment",
				ListingType:  "rent",
				Status:       "published",
			},
		},
	}

	for _, item := range properties {
		ownerID, ok := userIDs[item.owner]
		if !ok {
			continue
		}
		property := item.property
		property.UserID = ownerID

		var existing model.PropertyModel
		result := db.Where("title = ? AND user_id = ?", property.Title, ownerID).First(&existing)
		if result.Error == nil {
			log.Info("Property %q already exists, skipping", property.Title)
			continue
		}

		if err := db.Create(&property).Error; err != nil {
			log.Error("Failed to create property %q: %v", property.Title, err)
			continue
		}
		log.Info("Created property: %q", property.Title)
	}

	return nil
}
