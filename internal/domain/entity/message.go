package entity

import "time"

type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ChatID         string    `json:"chat_id" firestore:"chatId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	Text           string    `json:"text" firestore:"text"`
	IsFromMechanic bool      `json:"is_from_mechanic" firestore:"isFromMechanic"`
	ReadBy         []string  `json:"read_by" firestore:"readBy"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
