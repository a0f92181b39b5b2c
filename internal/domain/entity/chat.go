package entity

import "time"

// Chat is the message thread bound 1:1 to a service request. It is created
// lazily on first open by either participant, never by request creation.
type Chat struct {
	ID             string         `json:"id" firestore:"id"`
	RequestID      string         `json:"request_id" firestore:"requestId"`
	UserID         string         `json:"user_id" firestore:"userId"`
	MechanicUserID string         `json:"mechanic_user_id" firestore:"mechanicUserId"`
	Participants   []string       `json:"participants" firestore:"participants"`
	UserName       string         `json:"user_name,omitempty" firestore:"userName,omitempty"`
	MechanicName   string         `json:"mechanic_name,omitempty" firestore:"mechanicName,omitempty"`
	CreatedAt      time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time      `json:"updated_at" firestore:"updatedAt"`
	LastMessageAt  time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	LastMessage    string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	UnreadCount    map[string]int `json:"unread_count" firestore:"unreadCount"` // Map of userID to unread count
}
