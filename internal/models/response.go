package models

import "time"

// AdResponse is a reply posted on an ad.
type AdResponse struct {
	ID        int64        `json:"id"`
	Message   string       `json:"message"`
	UserID    int64        `json:"userId"`
	AdID      int64        `json:"adId"`
	CreatedAt time.Time    `json:"createdAt"`
	User      *UserSummary `json:"user,omitempty"`
	Ad        *Ad          `json:"ad,omitempty"`
}
