package domain

import (
	"errors"
	"time"
)

// Role is the authorization level of a user. Roles form a total order:
// user < moderator < admin.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidCredential = errors.New("invalid credential")
var ErrInsufficientRole = errors.New("insufficient role")

var roleRank = map[Role]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// IsValid reports whether r is one of the three known roles.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the privileges of min.
// Unknown roles never satisfy any requirement.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && roleRank[r] > 0
}

// User models an actor known to the catalog. The ID is the opaque subject
// assigned by the external identity provider; the record is created lazily
// on first successful credential resolution.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Identity is the resolved principal attached to a request. It is produced
// once by the identity resolver and passed explicitly into every guarded
// operation, never read from ambient state.
type Identity struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}
