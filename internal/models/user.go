package models

import (
	"time"
)

type User struct {
	ID                 string     `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Username           string     `json:"username" bson:"username" gorm:"uniqueIndex;not null"`
	PasswordHash       string     `json:"-" bson:"password" gorm:"not null"`
	FullName           string     `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Email              string     `json:"email,omitempty" bson:"email,omitempty"`
	Department         string     `json:"department,omitempty" bson:"department,omitempty"`
	Designation        string     `json:"designation,omitempty" bson:"designation,omitempty"`
	Bio                string     `json:"bio,omitempty" bson:"bio,omitempty"`
	IsAdmin            Flag       `json:"isAdmin" bson:"isAdmin" gorm:"not null;default:false"`
	IsBlocked          Flag       `json:"isBlocked" bson:"isBlocked" gorm:"not null;default:false"`
	CanCreate          Flag       `json:"canCreate" bson:"canCreate" gorm:"not null;default:false"`
	CreateAccessExpiry *time.Time `json:"createAccessExpiry,omitempty" bson:"createAccessExpiry,omitempty"`
	CreatedAt          time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// HasCreateAccess reports whether an admin grant lets the user create
// workshops at the given moment. A grant without expiry never lapses.
func (u *User) HasCreateAccess(now time.Time) bool {
	if !u.CanCreate.Bool() {
		return false
	}
	return u.CreateAccessExpiry == nil || now.Before(*u.CreateAccessExpiry)
}

// ProfilePatch lists the profile fields a user may change on their own
// record. Username is deliberately absent.
type ProfilePatch struct {
	FullName    *string `json:"fullName" validate:"omitempty,max=120"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Department  *string `json:"department" validate:"omitempty,max=120"`
	Designation *string `json:"designation" validate:"omitempty,max=120"`
	Bio         *string `json:"bio" validate:"omitempty,max=2000"`
}

// Apply merges the supplied fields into u and reports whether anything
// actually changed.
func (p ProfilePatch) Apply(u *User) bool {
	changed := false
	set := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	set(&u.FullName, p.FullName)
	set(&u.Email, p.Email)
	set(&u.Department, p.Department)
	set(&u.Designation, p.Designation)
	set(&u.Bio, p.Bio)
	return changed
}
