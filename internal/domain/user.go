package domain

import (
	"time"
)

// User is the account record behind a session. Stored at users/{id}.
type User struct {
	ID           string    `bson:"-" json:"id"`
	DisplayName  string    `bson:"displayName" json:"displayName"`
	Email        string    `bson:"email" json:"email"`    // Unique, stored lowercase
	PasswordHash string    `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Identity is what the session provider hands out about the signed-in user.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Identity returns the public view of the user.
func (u *User) Identity() Identity {
	return Identity{UID: u.ID, DisplayName: u.DisplayName, Email: u.Email}
}
