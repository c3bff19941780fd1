package services

import (
	"testing"
	"time"

	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/internal/testutil"
	"marketplace_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestCampaignService(t *testing.T) (CampaignService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewCampaignService(repositories.NewCampaignRepository(), repositories.NewBrandRepository(), nil), db
}

func TestCampaignService_Create(t *testing.T) {
	svc, db := newTestCampaignService(t)
	brandUser, _ := testutil.CreateBrand(t, db)
	influencer, _ := testutil.CreateInfluencer(t, db)

	req := &dto.CreateCampaignRequest{
		Title:       "Summer Promo",
		Description: "Promote our summer line",
		Budget:      5000,
		Deadline:    &dto.FlexibleTime{Time: time.Now().Add(72 * time.Hour)},
	}

	campaign, err := svc.Create(db, brandUser.ID, req)
	require.NoError(t, err)
	assert.NotEmpty(t, campaign.ID)
	assert.Equal(t, models.CampaignStatusActive, campaign.Status)
	assert.NotNil(t, campaign.Categories)

	_, err = svc.Create(db, influencer.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrOnlyBrandsCreate)

	req.Deadline = &dto.FlexibleTime{Time: time.Now().Add(-time.Hour)}
	_, err = svc.Create(db, brandUser.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrDeadlineInPast)
}

func TestCampaignService_ListFiltersAndPaginates(t *testing.T) {
	svc, db := newTestCampaignService(t)
	_, brand := testutil.CreateBrand(t, db)
	deadline := time.Now().Add(48 * time.Hour)

	for i := 0; i < 3; i++ {
		testutil.CreateCampaign(t, db, brand, deadline)
	}
	tech := testutil.CreateCampaign(t, db, brand, deadline)
	require.NoError(t, db.Model(tech).Updates(map[string]interface{}{
		"categories": datatypes.NewJSONSlice([]string{"tech"}),
		"platforms":  datatypes.NewJSONSlice([]string{"youtube"}),
	}).Error)
	closed := testutil.CreateCampaign(t, db, brand, deadline)
	require.NoError(t, db.Model(closed).Update("status", models.CampaignStatusClosed).Error)

	all, err := svc.List(db, &dto.CampaignListQuery{}, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, all.Total, "closed campaigns are not listed")
	assert.Len(t, all.Campaigns, 2)
	assert.Equal(t, 2, all.Pages)

	byCategory, err := svc.List(db, &dto.CampaignListQuery{Category: "tech"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, byCategory.Campaigns, 1)
	assert.Equal(t, tech.ID, byCategory.Campaigns[0].ID)

	byPlatform, err := svc.List(db, &dto.CampaignListQuery{Platform: "instagram"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, byPlatform.Total)

	empty, err := svc.List(db, &dto.CampaignListQuery{Category: "none"}, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, empty.Campaigns)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.Pages)
}

func TestCampaignService_UpdateOwnership(t *testing.T) {
	svc, db := newTestCampaignService(t)
	owner, brand := testutil.CreateBrand(t, db)
	other, _ := testutil.CreateBrand(t, db)
	campaign := testutil.CreateCampaign(t, db, brand, time.Now().Add(24*time.Hour))

	_, err := svc.Update(db, other.ID, campaign.ID, &dto.UpdateCampaignRequest{Title: ptr("Hijacked")})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	updated, err := svc.Update(db, owner.ID, campaign.ID, &dto.UpdateCampaignRequest{
		Title:  ptr("Winter Promo"),
		Budget: ptr(7500.0),
		Status: ptr(models.CampaignStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, "Winter Promo", updated.Title)
	assert.Equal(t, 7500.0, updated.Budget)
	assert.Equal(t, models.CampaignStatusCompleted, updated.Status)

	_, err = svc.Update(db, owner.ID, "missing", &dto.UpdateCampaignRequest{})
	assert.ErrorIs(t, err, apperrors.ErrCampaignNotFound)
}

func TestCampaignService_Apply(t *testing.T) {
	svc, db := newTestCampaignService(t)
	brandUser, brand := testutil.CreateBrand(t, db)
	influencer, _ := testutil.CreateInfluencer(t, db)
	campaign := testutil.CreateCampaign(t, db, brand, time.Now().Add(24*time.Hour))

	err := svc.Apply(db, brandUser.ID, models.UserRoleBrand, campaign.ID, "hi")
	assert.ErrorIs(t, err, apperrors.ErrOnlyInfluencersApply)

	require.NoError(t, svc.Apply(db, influencer.ID, models.UserRoleInfluencer, campaign.ID, "I'd love to"))

	err = svc.Apply(db, influencer.ID, models.UserRoleInfluencer, campaign.ID, "again")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	got, err := svc.Get(db, campaign.ID)
	require.NoError(t, err)
	require.Len(t, got.Proposals, 1)
	assert.Equal(t, models.ApplicationStatusPending, got.Proposals[0].Status)

	require.NoError(t, db.Model(campaign).Update("status", models.CampaignStatusClosed).Error)
	other, _ := testutil.CreateInfluencer(t, db)
	err = svc.Apply(db, other.ID, models.UserRoleInfluencer, campaign.ID, "late")
	assert.ErrorIs(t, err, apperrors.ErrCampaignNotOpen)
}

func TestCampaignService_UpdateApplicationStatus(t *testing.T) {
	svc, db := newTestCampaignService(t)
	owner, brand := testutil.CreateBrand(t, db)
	stranger, _ := testutil.CreateBrand(t, db)
	influencer, _ := testutil.CreateInfluencer(t, db)
	campaign := testutil.CreateCampaign(t, db, brand, time.Now().Add(24*time.Hour))
	require.NoError(t, svc.Apply(db, influencer.ID, models.UserRoleInfluencer, campaign.ID, ""))

	got, err := svc.Get(db, campaign.ID)
	require.NoError(t, err)
	appID := got.Proposals[0].ID

	err = svc.UpdateApplicationStatus(db, stranger.ID, campaign.ID, appID, models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	err = svc.UpdateApplicationStatus(db, owner.ID, campaign.ID, "missing", models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)

	require.NoError(t, svc.UpdateApplicationStatus(db, owner.ID, campaign.ID, appID, models.ApplicationStatusAccepted))
	require.NoError(t, svc.UpdateApplicationStatus(db, owner.ID, campaign.ID, appID, models.ApplicationStatusAccepted), "same status is a no-op")

	err = svc.UpdateApplicationStatus(db, owner.ID, campaign.ID, appID, models.ApplicationStatusRejected)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}
