package auth

import "marketplace_backend/internal/models"

// IsOwnerOrAdmin is the ownership rule shared by profile and stats endpoints.
func IsOwnerOrAdmin(actorID string, actorRole models.UserRole, ownerID string) bool {
	return actorID == ownerID || actorRole == models.UserRoleAdmin
}
