package match

import "matchengine/internal/models"

// MatchResult is the outcome of scoring one candidate against one job.
// Computed fresh per pair; never stored. MatchedSkills is a subset of the
// job's skill set, in job-skill order.
type MatchResult struct {
	Score          float64  `json:"score"` // 0-100, one decimal place
	MatchedSkills  []string `json:"matchedSkills"`
	TotalJobSkills int      `json:"totalJobSkills"`
}

// Recommendation pairs a job with its match detail for one profile.
type Recommendation struct {
	Job            models.Job `json:"job"`
	MatchScore     float64    `json:"matchScore"`
	MatchedSkills  []string   `json:"matchedSkills"`
	MatchedCount   int        `json:"matchedCount"`
	TotalJobSkills int        `json:"totalJobSkills"`
}
