package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role determines which dashboard view and permissions apply to an account.
type Role string

const (
	RoleDonor Role = "donor"
	RoleNGO   Role = "ngo"
	RoleAdmin Role = "admin"
)

// User represents a marketplace account. The password hash never leaves the
// server: it is excluded from JSON serialization.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"        json:"id"`
	Name         string        `bson:"name"                 json:"name"`
	Email        string        `bson:"email"                json:"email"`
	PasswordHash string        `bson:"password_hash"        json:"-"`
	Role         Role          `bson:"role"                 json:"role"`
	Address      string        `bson:"address"              json:"address"`
	Phone        string        `bson:"phone"                json:"phone"`
	Verified     bool          `bson:"verified"             json:"verified"`
	Documents    []string      `bson:"documents,omitempty"  json:"documents,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"           json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at"           json:"updatedAt"`
}
