package models

// Roles recognised by the ordering flow.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Actor is the identity performing an operation. A zero UserID means
// anonymous.
type Actor struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
}

// Anonymous reports whether the actor is unauthenticated.
func (a Actor) Anonymous() bool { return a.UserID == 0 }

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsCustomer reports whether the actor is an authenticated customer.
func (a Actor) IsCustomer() bool { return !a.Anonymous() && a.Role == RoleCustomer }
