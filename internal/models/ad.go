package models

import "time"

type Ad struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Category    string       `json:"category"`
	UserID      int64        `json:"userId"`
	ImageURL    *string      `json:"imageUrl"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	User        *UserSummary `json:"user,omitempty"`
	Responses   []AdResponse `json:"responses,omitempty"`
}
