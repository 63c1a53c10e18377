// Package search implements the recruiter candidate-filter semantics shared
// by the candidate search endpoint and the saved-search delta tracker.
package search

import (
	"strings"

	"matchengine/internal/models"
)

// Criteria is a recruiter's candidate filter. All fields are free text; a
// blank field imposes no constraint. Matching semantics:
//
//   - Location: case-insensitive substring of the profile's location.
//   - Skills: every whitespace/comma-separated token must independently be a
//     case-insensitive substring of the profile's skills text.
//   - Projects: case-insensitive substring of any of work experience, bio,
//     education, or the profile's link URLs (OR-combined).
type Criteria struct {
	Skills   string `json:"skills"`
	Location string `json:"location"`
	Projects string `json:"projects"`
}

// IsEmpty reports whether all filter fields trim to blank.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Skills) == "" &&
		strings.TrimSpace(c.Location) == "" &&
		strings.TrimSpace(c.Projects) == ""
}

// Matches reports whether a profile satisfies every non-blank criterion.
func (c Criteria) Matches(p models.Profile) bool {
	if loc := strings.TrimSpace(c.Location); loc != "" {
		if !containsFold(p.Location, loc) {
			return false
		}
	}

	for _, token := range SkillTokens(c.Skills) {
		if !containsFold(p.Skills, token) {
			return false
		}
	}

	if q := strings.TrimSpace(c.Projects); q != "" {
		if !containsFold(p.WorkExperience, q) &&
			!containsFold(p.Bio, q) &&
			!containsFold(p.Education, q) &&
			!containsFold(p.LinkedInURL, q) &&
			!containsFold(p.GitHubURL, q) &&
			!containsFold(p.PortfolioURL, q) &&
			!containsFold(p.OtherURL, q) {
			return false
		}
	}

	return true
}

// Filter applies the criteria to a candidate pool, preserving input order.
func (c Criteria) Filter(pool []models.Profile) []models.Profile {
	matched := make([]models.Profile, 0, len(pool))
	for _, p := range pool {
		if c.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// SkillTokens splits a skills query on commas and whitespace into non-empty
// tokens. Unlike the scorer's skill tokens these are search terms, not
// normalized skill names.
func SkillTokens(query string) []string {
	replaced := strings.NewReplacer("\n", " ", "\t", " ").Replace(query)
	var tokens []string
	for _, chunk := range strings.Split(replaced, ",") {
		for _, t := range strings.Fields(chunk) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
