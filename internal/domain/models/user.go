// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Stored as numbers to match the public API contract.
const (
	RoleAdmin = 1
	RoleUser  = 2
)

// User is a registered account. Password holds a bcrypt hash and is never
// serialized into API responses.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	DisplayName string             `bson:"display_name" json:"displayName"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Role        int                `bson:"role" json:"role"` // 1 admin | 2 user
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// PublicUser is the projection of a User returned by login and anywhere
// else account data leaves the API.
type PublicUser struct {
	ID          primitive.ObjectID `json:"_id"`
	DisplayName string             `json:"displayName"`
	Email       string             `json:"email"`
}

// Public returns the API-safe projection of u.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, DisplayName: u.DisplayName, Email: u.Email}
}
