package testutil

import (
	"fmt"
	"testing"
	"time"

	"marketplace_backend/database"
	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultPassword is the password of every user created by the fixtures.
const DefaultPassword = "password123"

// NewTestDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps the database alive and serialises writers.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateUser inserts a user with DefaultPassword and a unique email.
func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole, name string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Email:         fmt.Sprintf("%s_%s@test.com", role, uuid.NewString()[:8]),
		PasswordHash:  hash,
		Role:          role,
		Name:          name,
		EmailVerified: true,
	}
	require.NoError(t, db.Create(user).Error, "create user")
	return user
}

// CreateBrand inserts a brand user with a completed brand profile.
func CreateBrand(t *testing.T, db *gorm.DB) (*models.User, *models.Brand) {
	t.Helper()

	user := CreateUser(t, db, models.UserRoleBrand, "Test Brand")
	brand := &models.Brand{
		UserID:      user.ID,
		CompanyName: "Test Company Inc.",
		Website:     "https://example.com",
		Description: "A brand used in tests",
		Industry:    "Technology",
		Status:      models.ProfileStatusApproved,
	}
	require.NoError(t, db.Create(brand).Error, "create brand")
	require.NoError(t, db.Model(user).Update("profile_completed", true).Error)
	user.ProfileCompleted = true
	brand.User = user
	return user, brand
}

// CreateInfluencer inserts an influencer user with an Instagram platform.
func CreateInfluencer(t *testing.T, db *gorm.DB) (*models.User, *models.Influencer) {
	t.Helper()

	user := CreateUser(t, db, models.UserRoleInfluencer, "Test Influencer")
	influencer := &models.Influencer{
		UserID:     user.ID,
		Bio:        "Lifestyle creator",
		Categories: []string{"lifestyle"},
		SocialPlatforms: []models.SocialPlatform{
			{Platform: "instagram", Username: "test_creator", Followers: 12000},
		},
		Status: models.ProfileStatusApproved,
	}
	require.NoError(t, db.Create(influencer).Error, "create influencer")
	require.NoError(t, db.Model(user).Update("profile_completed", true).Error)
	user.ProfileCompleted = true
	influencer.User = user
	return user, influencer
}

// CreateCampaign inserts an active campaign owned by brand.
func CreateCampaign(t *testing.T, db *gorm.DB, brand *models.Brand, deadline time.Time) *models.Campaign {
	t.Helper()

	campaign := &models.Campaign{
		BrandID:     brand.ID,
		Title:       "Summer Promo",
		Description: "Promote our summer collection",
		Budget:      5000,
		Categories:  []string{"fashion"},
		Platforms:   []string{"instagram"},
		Deadline:    deadline,
		Status:      models.CampaignStatusActive,
	}
	require.NoError(t, db.Create(campaign).Error, "create campaign")
	return campaign
}
