package models

import "time"

// Job is the posting-facing slice the engine consumes for recommendations
// and radius filtering. Latitude/Longitude are nil until geocoded.
type Job struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Skills      string     `json:"skills"` // required skills, comma-separated
	Active      bool       `json:"active"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	PostedBy    string     `json:"postedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
