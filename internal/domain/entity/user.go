package entity

import "time"

const (
	RoleCustomer = "customer"
	RoleMechanic = "mechanic"
	RoleAdmin    = "admin"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Role     string `json:"role" firestore:"role"`

	Latitude  float64 `json:"latitude,omitempty" firestore:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" firestore:"longitude,omitempty"`
	PhotoURL  string  `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
