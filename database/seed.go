package database

import (
	"errors"
	"fmt"

	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/models"

	"gorm.io/gorm"
)

// SampleBrandPassword is the password of every account created by SeedBrands.
const SampleBrandPassword = "password123"

var sampleBrands = []models.Brand{
	{
		CompanyName: "TechNova Solutions",
		Website:     "https://technova.com",
		Description: "Leading technology solutions provider specializing in digital transformation and cloud services.",
		Industry:    "Technology",
		Logo:        "https://via.placeholder.com/150x150/4F46E5/FFFFFF?text=TechNova",
	},
	{
		CompanyName: "Fashion Forward",
		Website:     "https://fashionforward.com",
		Description: "Premium fashion brand offering sustainable and trendy clothing for modern professionals.",
		Industry:    "Fashion",
		Logo:        "https://via.placeholder.com/150x150/E11D48/FFFFFF?text=Fashion",
	},
	{
		CompanyName: "GreenLife Wellness",
		Website:     "https://greenlifewellness.com",
		Description: "Organic wellness products and natural supplements for a healthier lifestyle.",
		Industry:    "Health & Wellness",
		Logo:        "https://via.placeholder.com/150x150/10B981/FFFFFF?text=GreenLife",
	},
	{
		CompanyName: "Creative Studio Pro",
		Website:     "https://creativestudiopro.com",
		Description: "Full-service creative agency specializing in branding, web design, and digital marketing.",
		Industry:    "Creative Services",
		Logo:        "https://via.placeholder.com/150x150/F59E0B/FFFFFF?text=Creative",
	},
	{
		CompanyName: "FitLife Nutrition",
		Website:     "https://fitlifenutrition.com",
		Description: "Premium sports nutrition and fitness supplements for athletes and fitness enthusiasts.",
		Industry:    "Fitness",
		Logo:        "https://via.placeholder.com/150x150/EF4444/FFFFFF?text=FitLife",
	},
}

// SeedFirstAdmin creates the admin account once. Empty credentials skip seeding.
func SeedFirstAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var existing models.User
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Email:            email,
		PasswordHash:     hash,
		Role:             models.UserRoleAdmin,
		Name:             "Administrator",
		ProfileCompleted: true,
		EmailVerified:    true,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("First admin user created", "email", email)
	return nil
}

// SeedBrands creates brand1..5@example.com with approved brand profiles.
// Re-running reuses the accounts and overwrites their profiles.
func SeedBrands(db *gorm.DB) ([]models.Brand, error) {
	hash, err := auth.HashPassword(SampleBrandPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash sample password: %w", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	created := make([]models.Brand, 0, len(sampleBrands))
	for i, sample := range sampleBrands {
		email := fmt.Sprintf("brand%d@example.com", i+1)

		var user models.User
		err := tx.Where("email = ?", email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				Email:            email,
				PasswordHash:     hash,
				Role:             models.UserRoleBrand,
				Name:             sample.CompanyName,
				ProfileCompleted: true,
				EmailVerified:    true,
			}
			if err := tx.Create(&user).Error; err != nil {
				return nil, fmt.Errorf("failed to create user %s: %w", email, err)
			}
		case err != nil:
			return nil, fmt.Errorf("failed to look up user %s: %w", email, err)
		}

		var brand models.Brand
		err = tx.Where("user_id = ?", user.ID).First(&brand).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up brand for %s: %w", email, err)
		}

		// Overwrite in place so campaigns keep pointing at the same profile.
		base := brand.BaseModel
		brand = sample
		brand.BaseModel = base
		brand.UserID = user.ID
		brand.Status = models.ProfileStatusApproved
		if err := tx.Save(&brand).Error; err != nil {
			return nil, fmt.Errorf("failed to save brand %s: %w", sample.CompanyName, err)
		}

		logger.Info("Seeded brand", "email", email, "company", brand.CompanyName)
		created = append(created, brand)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}
