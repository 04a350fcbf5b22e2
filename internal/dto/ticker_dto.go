package dto

import "time"

// TickerCreateRequest adds a headline to the ticker.
type TickerCreateRequest struct {
	Text     string `json:"text" validate:"required,min=3,max=280"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

// TickerEntry is one scrolling headline.
type TickerEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}
