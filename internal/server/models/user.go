package models

import "time"

// User is an identity record created by signup. Email and mobile are unique
// across users; records are never mutated or deleted by the auth flows.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
