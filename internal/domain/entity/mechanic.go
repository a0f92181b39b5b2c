package entity

import "time"

const (
	AvailabilityAvailable = "available"
	AvailabilityBusy      = "busy"
	AvailabilityOffline   = "offline"
)

// Mechanic is a workshop directory entry. UserID links the profile to the
// owning account; requests route chat through that account id.
type Mechanic struct {
	ID           string   `json:"id" firestore:"id"`
	UserID       string   `json:"user_id" firestore:"userId"`
	Name         string   `json:"name" firestore:"name"`
	WorkshopName string   `json:"workshop_name" firestore:"workshopName"`
	Phone        string   `json:"phone" firestore:"phone"`
	Email        string   `json:"email,omitempty" firestore:"email,omitempty"`
	Description  string   `json:"description,omitempty" firestore:"description,omitempty"`
	Address      string   `json:"address,omitempty" firestore:"address,omitempty"`
	City         string   `json:"city,omitempty" firestore:"city,omitempty"`
	Latitude     float64  `json:"latitude" firestore:"latitude"`
	Longitude    float64  `json:"longitude" firestore:"longitude"`
	Services     []string `json:"services" firestore:"services"` // car, bike, truck, emergency, towing, inspection
	Photo        string   `json:"photo,omitempty" firestore:"photo,omitempty"`
	IsOpen       bool     `json:"is_open" firestore:"isOpen"`
	Availability string   `json:"availability" firestore:"availability"`

	Rating       float64 `json:"rating" firestore:"rating"`
	ReviewsCount int     `json:"reviews_count" firestore:"reviewsCount"`

	IsVerified bool       `json:"is_verified" firestore:"isVerified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty" firestore:"verifiedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// OffersService reports whether the mechanic lists serviceType.
func (m *Mechanic) OffersService(serviceType string) bool {
	for _, s := range m.Services {
		if s == serviceType {
			return true
		}
	}
	return false
}
