package domain

import "time"

// JokeStatus represents the moderation state of a joke.
type JokeStatus string

// Joke statuses.
const (
	JokeStatusPending  JokeStatus = "PENDING"
	JokeStatusApproved JokeStatus = "APPROVED"
	JokeStatusRejected JokeStatus = "REJECTED"
)

// IsValid checks if the joke status is valid.
func (s JokeStatus) IsValid() bool {
	switch s {
	case JokeStatusPending, JokeStatusApproved, JokeStatusRejected:
		return true
	}
	return false
}

// Joke represents a submitted dad joke.
type Joke struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Status      JokeStatus `json:"status"`
	SubmittedBy string     `json:"submitted_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FallbackJoke is returned when no approved jokes exist yet.
func FallbackJoke() *Joke {
	return &Joke{
		ID:      "fallback",
		Content: "Sorry, no jokes available right now.",
		Status:  JokeStatusApproved,
	}
}
