package match

import (
	"math"
	"strings"
)

// SplitSkills turns a comma-separated skills field into normalized tokens:
// trimmed, lower-cased, empties dropped. Order is preserved.
func SplitSkills(text string) []string {
	parts := strings.Split(text, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		token := strings.ToLower(strings.TrimSpace(p))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// NormalizeSkills lower-cases and trims a pre-split skill list, dropping
// empty entries.
func NormalizeSkills(skills []string) []string {
	tokens := make([]string, 0, len(skills))
	for _, s := range skills {
		token := strings.ToLower(strings.TrimSpace(s))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Score computes the 0-100 match between a candidate's skills and a job's
// required skills, scored from the job's perspective: each job token counts
// as matched when some candidate token contains it or is contained by it
// ("java" matches "javascript"). The first candidate token that satisfies
// the rule claims the job skill, so duplicate candidate tokens cannot
// inflate the count. Either side empty means score 0.
func Score(candidateSkills, jobSkills []string) MatchResult {
	candidate := NormalizeSkills(candidateSkills)
	job := NormalizeSkills(jobSkills)

	result := MatchResult{
		MatchedSkills:  []string{},
		TotalJobSkills: len(job),
	}
	if len(candidate) == 0 || len(job) == 0 {
		return result
	}

	for _, js := range job {
		for _, cs := range candidate {
			if strings.Contains(cs, js) || strings.Contains(js, cs) {
				result.MatchedSkills = append(result.MatchedSkills, js)
				break
			}
		}
	}

	result.Score = roundScore(float64(len(result.MatchedSkills)) / float64(len(job)) * 100)
	return result
}

func roundScore(s float64) float64 {
	return math.Round(s*10) / 10
}
