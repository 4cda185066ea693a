package models

import "gorm.io/gorm"

// User is an account in the identity store. Address fields pre-fill the
// checkout form on the client.
type User struct {
	gorm.Model
	Name       string `gorm:"size:255;not null" json:"name"`
	Email      string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role       string `gorm:"size:50;default:customer" json:"role"`
	Phone      string `gorm:"size:50" json:"phone"`
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postalCode"`
}

// Actor returns the acting identity derived from this account.
func (u User) Actor() Actor {
	return Actor{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		Role:   u.Role,
	}
}
