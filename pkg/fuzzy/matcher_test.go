package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchExact(t *testing.T) {
	m := NewMatcher(false, 0, 0.5)
	result := m.Match("work", "work")
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, 0, result.Distance)
}

func TestMatchHybridRanksCloserCandidateHigher(t *testing.T) {
	m := NewMatcher(false, 0, 0.0)
	close := m.Match("projcts", "projects")
	far := m.Match("projcts", "downloads")
	assert.Greater(t, close.Confidence, far.Confidence)
}

func TestMatchMultipleSortsByConfidenceDescending(t *testing.T) {
	m := NewMatcher(false, 0, 0.0)
	results := m.MatchMultiple("dl", []string{"downloads", "documents", "dl"})
	assert.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Match.Confidence, results[i].Match.Confidence)
	}
	assert.Equal(t, "dl", results[0].Target)
}

func TestTokenizeSplitsOnDelimiters(t *testing.T) {
	tokens := Tokenize("My-Documents_v2/final.txt")
	assert.Equal(t, []string{"my", "documents", "v2", "final", "txt"}, tokens)
}
