package notify

import (
	"fmt"
	"strings"

	"matchengine/internal/models"
)

// DefaultRepresentativeMatches caps how many candidates are named in a
// new-match alert body.
const DefaultRepresentativeMatches = 5

// NewMatchSummary builds the notification for a saved-search run that found
// new matches. The body lists up to maxRepresentatives candidates in pool
// order; the counts always reflect the full result, not the excerpt.
func NewMatchSummary(search *models.SavedSearch, recipientEmail string, totalMatches int, newMatches []models.Profile, maxRepresentatives int) models.Notification {
	if maxRepresentatives <= 0 {
		maxRepresentatives = DefaultRepresentativeMatches
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your saved candidate search has %d new match(es) (%d total).\n\n", len(newMatches), totalMatches)

	if desc := describeCriteria(search); desc != "" {
		fmt.Fprintf(&b, "Search filters: %s\n\n", desc)
	}

	fmt.Fprintf(&b, "New candidates:\n")
	reps := newMatches
	if len(reps) > maxRepresentatives {
		reps = reps[:maxRepresentatives]
	}
	for _, p := range reps {
		line := p.Name
		if p.Headline != "" {
			line += " - " + p.Headline
		}
		if p.Location != "" {
			line += " (" + p.Location + ")"
		}
		fmt.Fprintf(&b, "  * %s\n", line)
	}
	if remaining := len(newMatches) - len(reps); remaining > 0 {
		fmt.Fprintf(&b, "  ...and %d more.\n", remaining)
	}

	return models.Notification{
		RecipientID:    search.OwnerID,
		RecipientEmail: recipientEmail,
		Subject:        fmt.Sprintf("%d new candidate match(es) for your saved search", len(newMatches)),
		Body:           b.String(),
	}
}

func describeCriteria(search *models.SavedSearch) string {
	var parts []string
	if s := strings.TrimSpace(search.Skills); s != "" {
		parts = append(parts, "skills: "+s)
	}
	if l := strings.TrimSpace(search.Location); l != "" {
		parts = append(parts, "location: "+l)
	}
	if p := strings.TrimSpace(search.Projects); p != "" {
		parts = append(parts, "projects: "+p)
	}
	return strings.Join(parts, "; ")
}
