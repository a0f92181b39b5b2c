package entity

import "time"

// Request statuses. A request moves strictly forward along the edges in
// requestTransitions; completed and cancelled are terminal.
const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	UrgencyLow       = "low"
	UrgencyMedium    = "medium"
	UrgencyHigh      = "high"
	UrgencyEmergency = "emergency"
)

// ChatVisibilityWindow is how long a completed request's chat stays viewable.
const ChatVisibilityWindow = 14 * 24 * time.Hour

type Request struct {
	ID             string `json:"id" firestore:"id"`
	UserID         string `json:"user_id" firestore:"userId"`
	MechanicID     string `json:"mechanic_id" firestore:"mechanicId"`
	MechanicUserID string `json:"mechanic_user_id" firestore:"mechanicUserId"`
	UserName       string `json:"user_name" firestore:"userName"`
	MechanicName   string `json:"mechanic_name" firestore:"mechanicName"`

	ServiceType string `json:"service_type" firestore:"serviceType"` // car, bike, truck, emergency, towing, inspection
	Status      string `json:"status" firestore:"status"`
	Urgency     string `json:"urgency" firestore:"urgency"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`

	// Customer location at creation time
	UserLatitude  float64 `json:"user_latitude,omitempty" firestore:"userLatitude,omitempty"`
	UserLongitude float64 `json:"user_longitude,omitempty" firestore:"userLongitude,omitempty"`
	UserAddress   string  `json:"user_address,omitempty" firestore:"userAddress,omitempty"`
	DistanceKm    float64 `json:"distance_km,omitempty" firestore:"distanceKm,omitempty"`

	Rated bool `json:"rated" firestore:"rated"`

	// Version increments on every status write; transitions compare it inside
	// a store transaction to reject lost updates.
	Version int64 `json:"version" firestore:"version"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty" firestore:"acceptedAt,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}

var requestTransitions = map[string][]string{
	StatusPending:    {StatusAccepted, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ValidStatus reports whether s is one of the five defined statuses.
func ValidStatus(s string) bool {
	_, ok := requestTransitions[s]
	return ok
}

func ValidUrgency(u string) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

// CanTransition reports whether the edge from→to exists in the lifecycle
// table. Re-applying the current status is not a permitted edge.
func CanTransition(from, to string) bool {
	for _, target := range requestTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from status.
func IsTerminal(status string) bool {
	return len(requestTransitions[status]) == 0
}

// IsChatAvailable decides whether the request's chat thread is viewable at
// now. Always true before completion; afterwards only within the 14-day
// window measured from the later of updatedAt and createdAt, inclusive.
func (r *Request) IsChatAvailable(now time.Time) bool {
	if r.Status != StatusCompleted {
		return true
	}
	ref := r.UpdatedAt
	if r.CreatedAt.After(ref) {
		ref = r.CreatedAt
	}
	return now.Sub(ref) <= ChatVisibilityWindow
}

// IsParticipant reports whether userID is the customer or the mechanic's
// account on this request.
func (r *Request) IsParticipant(userID string) bool {
	return userID == r.UserID || userID == r.MechanicUserID
}
