package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is one account in the users collection. Email is the unique key and
// the owner identity projects are filtered by.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	FullName     string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Summary is the outward view of a user. It never carries the password hash.
type Summary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func (u User) Summary() Summary {
	return Summary{
		ID:        u.ID.Hex(),
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	UserID  string
	Email   string
	TokenID string
	Expires time.Time
	// Provider is "session" for our own JWTs or "firebase" for ID tokens.
	Provider string
}

// Credentials is the body shared by the sign-in style endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of the register endpoint.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}
