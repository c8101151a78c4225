package ats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateWithoutJobTitleRescalesBase(t *testing.T) {
	res := Calculate(Normalize(janeRaw()), "  ")

	// Base 28.5 of 40 rescales to 71.25.
	assert.Equal(t, 71, res.Score)
	assert.Equal(t, RatingGood, res.Rating)
	assert.Equal(t, 0.0, res.Breakdown.JobTitleRelevance)
	assert.Equal(t, MatchNotSpecified, res.JobTitleMatch)
	assert.Equal(t, []string{recFormatting, recKeywords, recContentQuality}, res.Recommendations)
}

func TestCalculateWithExactJobTitle(t *testing.T) {
	res := Calculate(Normalize(janeRaw()), "Backend Engineer")

	assert.Equal(t, 60.0, res.Breakdown.JobTitleRelevance)
	assert.Equal(t, 89, res.Score)
	assert.Equal(t, RatingExcellent, res.Rating)
	assert.Equal(t, "Exact Match (backend engineer)", res.JobTitleMatch)
	assert.NotContains(t, res.Recommendations, `Your experience doesn't strongly match "Backend Engineer". Consider highlighting relevant transferable skills or similar roles.`)
}

func TestCalculateWeakTitleAddsTitleAdvice(t *testing.T) {
	res := Calculate(Normalize(janeRaw()), "Data Scientist")

	assert.Equal(t, 29, res.Score)
	assert.Equal(t, RatingPoor, res.Rating)
	require.Len(t, res.Recommendations, 4)
	assert.Equal(t,
		`Your experience doesn't strongly match "Data Scientist". Consider highlighting relevant transferable skills or similar roles.`,
		res.Recommendations[3])
}

func TestCalculateStaysWithinBounds(t *testing.T) {
	inputs := []map[string]any{
		nil,
		{"skills": "Go"},
		janeRaw(),
		richRawResume(),
	}
	titles := []string{"", "Senior Software Engineer", "Junior Developer", "Chef"}

	for _, raw := range inputs {
		for _, title := range titles {
			res := Calculate(Normalize(raw), title)
			b := res.Breakdown
			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
			assert.LessOrEqual(t, b.Formatting, MaxFormatting)
			assert.LessOrEqual(t, b.Keywords, MaxKeywords)
			assert.LessOrEqual(t, b.Completeness, MaxCompleteness)
			assert.LessOrEqual(t, b.Parsing, MaxParsing)
			assert.LessOrEqual(t, b.ContentQuality, MaxContentQuality)
			assert.LessOrEqual(t, b.JobTitleRelevance, float64(MaxJobTitleRelevance))
			assert.Equal(t, res.Rating, Rating(res.Score))
			if title == "" {
				want := int(math.Round(b.Base() / 40 * 100))
				assert.Equal(t, min(100, want), res.Score)
			}
		}
	}
}

func TestRatingThresholds(t *testing.T) {
	assert.Equal(t, RatingExcellent, Rating(80))
	assert.Equal(t, RatingGood, Rating(79))
	assert.Equal(t, RatingGood, Rating(70))
	assert.Equal(t, RatingFair, Rating(60))
	assert.Equal(t, RatingPoor, Rating(59))
	assert.Equal(t, RatingPoor, Rating(0))
}

func TestRecommendationsOnlyMentionTitleWhenGiven(t *testing.T) {
	weak := Breakdown{Formatting: 10, Keywords: 10, Completeness: 10, Parsing: 5, ContentQuality: 5}
	assert.Empty(t, Recommendations(weak, ""))
	assert.Len(t, Recommendations(weak, "Nurse"), 1)

	weak.JobTitleRelevance = 30
	assert.Empty(t, Recommendations(weak, "Nurse"))
}

func TestResultJSONShape(t *testing.T) {
	_, res := Score(janeRaw(), "")
	data, err := json.Marshal(res)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Contains(t, payload, "ATS_Score")
	assert.Contains(t, payload, "jobTitleMatch")
	breakdown, ok := payload["breakdown"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"formatting", "keywords", "completeness", "parsing", "contentQuality", "jobTitleRelevance"} {
		assert.Contains(t, breakdown, key)
	}
}
