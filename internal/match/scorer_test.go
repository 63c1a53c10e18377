package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Skill Splitting Tests
// ==========================

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "comma separated",
			input:    "Python, Django, SQL",
			expected: []string{"python", "django", "sql"},
		},
		{
			name:     "extra whitespace and empty segments",
			input:    "  Go ,, , Rust  ",
			expected: []string{"go", "rust"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only separators",
			input:    ", , ,",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitSkills(tt.input))
		})
	}
}

// ==========================
// Scoring Tests
// ==========================

func TestScore(t *testing.T) {
	tests := []struct {
		name            string
		candidate       []string
		job             []string
		expectedScore   float64
		expectedMatched []string
	}{
		{
			name:            "two of three job skills",
			candidate:       []string{"python", "django"},
			job:             []string{"python", "django", "sql"},
			expectedScore:   66.7,
			expectedMatched: []string{"python", "django"},
		},
		{
			name:            "substring containment counts both directions",
			candidate:       []string{"java"},
			job:             []string{"javascript"},
			expectedScore:   100,
			expectedMatched: []string{"javascript"},
		},
		{
			name:            "reverse containment",
			candidate:       []string{"javascript"},
			job:             []string{"java"},
			expectedScore:   100,
			expectedMatched: []string{"java"},
		},
		{
			name:            "no overlap",
			candidate:       []string{"rust"},
			job:             []string{"python", "sql"},
			expectedScore:   0,
			expectedMatched: []string{},
		},
		{
			name:            "case insensitive",
			candidate:       []string{"PYTHON"},
			job:             []string{"Python"},
			expectedScore:   100,
			expectedMatched: []string{"python"},
		},
		{
			name:            "empty candidate skills",
			candidate:       nil,
			job:             []string{"python"},
			expectedScore:   0,
			expectedMatched: []string{},
		},
		{
			name:            "empty job skills",
			candidate:       []string{"python"},
			job:             nil,
			expectedScore:   0,
			expectedMatched: []string{},
		},
		{
			name:            "one third rounds to one decimal",
			candidate:       []string{"python"},
			job:             []string{"python", "sql", "redis"},
			expectedScore:   33.3,
			expectedMatched: []string{"python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(NormalizeSkills(tt.candidate), NormalizeSkills(tt.job))
			assert.Equal(t, tt.expectedScore, result.Score)
			assert.Equal(t, tt.expectedMatched, result.MatchedSkills)
		})
	}
}

func TestScore_MatchedSkillsFollowJobOrder(t *testing.T) {
	result := Score(
		[]string{"sql", "python", "django"},
		[]string{"python", "django", "sql"},
	)

	assert.Equal(t, float64(100), result.Score)
	assert.Equal(t, []string{"python", "django", "sql"}, result.MatchedSkills)
	assert.Equal(t, 3, result.TotalJobSkills)
}

func TestScore_DuplicateJobSkillsCountSeparately(t *testing.T) {
	// "python, python" as job skills: both tokens can match the same
	// candidate skill.
	result := Score(
		[]string{"python"},
		[]string{"python", "python"},
	)

	assert.Equal(t, float64(100), result.Score)
	assert.Equal(t, 2, result.TotalJobSkills)
}
