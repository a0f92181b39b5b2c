package entity

import "time"

// Review is a satisfaction rating left by a customer for a mechanic's
// workshop after a completed request. Never mutated or deleted once written.
type Review struct {
	ID         string    `json:"id" firestore:"id"`
	RequestID  string    `json:"request_id" firestore:"requestId"`
	ReviewerID string    `json:"reviewer_id" firestore:"reviewerId"`
	TargetID   string    `json:"target_id" firestore:"targetId"` // mechanic profile being rated
	Rating     int       `json:"rating" firestore:"rating"`      // 1-5
	Comment    string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}
