package models

import "time"

// Privilege tiers. "god" is the super-admin account that may act on other
// admins; regular admins may only act on plain users.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGod   = "god"
)

type User struct {
	UserID      string    `json:"userid" bson:"userid"`
	Username    string    `json:"username" bson:"username"`
	Password    string    `json:"-" bson:"password"`
	Role        string    `json:"role" bson:"role"`
	DisplayName string    `json:"displayName,omitempty" bson:"displayname,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// IsAdmin reports whether the user may use admin-gated operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleGod
}

// Display is the name shown next to a booking: displayName when set,
// otherwise the username.
func (u *User) Display() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleGod
}
