package models

import "time"

type SignupRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64,username"`
	Password    string `json:"password" validate:"required"`
	FullName    string `json:"fullName" validate:"max=120"`
	Email       string `json:"email" validate:"omitempty,email"`
	Department  string `json:"department" validate:"max=120"`
	Designation string `json:"designation" validate:"max=120"`
	Bio         string `json:"bio" validate:"max=2000"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

type ToggleBlockRequest struct {
	IsBlocked *Flag `json:"isBlocked"`
}

type GrantCreateAccessRequest struct {
	ExpiryDate string `json:"expiryDate"`
}

// Expiry parses the optional expiry as RFC 3339 or a plain date. A plain
// date grants access until the end of that day in UTC.
func (r GrantCreateAccessRequest) Expiry() (*time.Time, error) {
	if r.ExpiryDate == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, r.ExpiryDate); err == nil {
		return &t, nil
	}
	d, err := time.Parse(time.DateOnly, r.ExpiryDate)
	if err != nil {
		return nil, err
	}
	end := d.Add(24*time.Hour - time.Nanosecond)
	return &end, nil
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
