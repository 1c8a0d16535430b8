package service

import (
	"time"

	"github.com/sefazor/workshops-backend/internal/models"
)

// authorizeWorkshopMutation lets the creator or any admin edit or delete a
// workshop.
func authorizeWorkshopMutation(user *models.User, workshop *models.Workshop) error {
	if user.IsAdmin.Bool() || workshop.CreatedBy == user.Username {
		return nil
	}
	return newError(ErrForbidden, "You do not have permission to modify this workshop")
}

// authorizeWorkshopCreate applies only when create-access grants are
// enforced.
func authorizeWorkshopCreate(user *models.User, enforce bool, now time.Time) error {
	if !enforce || user.IsAdmin.Bool() || user.HasCreateAccess(now) {
		return nil
	}
	return newError(ErrForbidden, "You do not have access to create workshops")
}
