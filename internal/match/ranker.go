package match

import (
	"sort"

	"matchengine/internal/models"
)

// DefaultRecommendationLimit caps the recommendation list when the caller
// passes no explicit limit.
const DefaultRecommendationLimit = 20

// Recommend scores every job in the pool against the candidate's skills and
// returns the jobs with score > 0 ranked by (score desc, creation time
// desc), truncated to limit. An empty-skill candidate gets no
// recommendations rather than the whole pool. The input slice is not
// mutated; ordering is deterministic for a fixed pool snapshot.
func Recommend(candidateSkills []string, jobs []models.Job, limit int) []Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	candidate := NormalizeSkills(candidateSkills)
	if len(candidate) == 0 {
		return []Recommendation{}
	}

	recs := make([]Recommendation, 0, len(jobs))
	for _, job := range jobs {
		result := Score(candidate, SplitSkills(job.Skills))
		if result.Score <= 0 {
			continue
		}
		recs = append(recs, Recommendation{
			Job:            job,
			MatchScore:     result.Score,
			MatchedSkills:  result.MatchedSkills,
			MatchedCount:   len(result.MatchedSkills),
			TotalJobSkills: result.TotalJobSkills,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].MatchScore != recs[j].MatchScore {
			return recs[i].MatchScore > recs[j].MatchScore
		}
		return recs[i].Job.CreatedAt.After(recs[j].Job.CreatedAt)
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
