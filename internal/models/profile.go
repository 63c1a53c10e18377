package models

import "time"

// Profile is the candidate-facing slice of a job seeker's account that the
// matching engine consumes. The owning application manages the rest.
type Profile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Headline       string    `json:"headline"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	Skills         string    `json:"skills"` // comma-separated free text
	Education      string    `json:"education"`
	WorkExperience string    `json:"workExperience"`
	LinkedInURL    string    `json:"linkedinUrl"`
	GitHubURL      string    `json:"githubUrl"`
	PortfolioURL   string    `json:"portfolioUrl"`
	OtherURL       string    `json:"otherUrl"`
	CommuteRadius  int       `json:"commuteRadius"` // miles
	IsPublic       bool      `json:"isPublic"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
