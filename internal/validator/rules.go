package validator

import (
	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			logger.Fatal("failed to register validation rule", "tag", tag, "error", err)
		}
	}

	// Admin accounts are seeded, never self-registered.
	mustRegister("is-signup-role", validateSignupRole)
	mustRegister("is-campaign-status", validateCampaignStatus)
	mustRegister("is-application-status", validateApplicationStatus)
	mustRegister("is-proposal-status", validateProposalStatus)
}

// Empty values pass; "required" covers presence.

func validateSignupRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	role := models.UserRole(value)
	return role == models.UserRoleInfluencer || role == models.UserRoleBrand
}

func validateCampaignStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.CampaignStatus(value).IsValid()
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ApplicationStatus(value).IsValid()
}

// completed is not settable by clients.
func validateProposalStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	status := models.ProposalStatus(value)
	return status.IsValid() && status != models.ProposalStatusCompleted
}
