package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// janeRaw is a small resume with hand-checked scores:
// formatting 7.5, keywords 5, completeness 10, parsing 4, content 2.
func janeRaw() map[string]any {
	return map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "+1 555 0100",
		"summary": "Experienced backend engineer",
		"skills":  []any{"Go", "SQL"},
		"experience": []any{
			map[string]any{
				"title":            "Backend Engineer",
				"company":          "Acme",
				"responsibilities": []any{"Developed APIs", "Led migrations"},
			},
		},
		"education": map[string]any{"degree": "BSc Computer Science", "school": "State University"},
	}
}

// richRawResume populates every section and mentions every curated term.
func richRawResume() map[string]any {
	summary := "Professional summary. " +
		strings.Join(standardSections, ", ") + ". " +
		strings.Join(actionVerbs, " ") + ". " +
		strings.Join(professionalWords, " ") + " " + strings.Join(achievementWords, " ")
	return map[string]any{
		"personalInfo": map[string]any{
			"fullName": "Alex Rivera",
			"email":    "alex@example.com",
			"phone":    "+44 20 7946 0958",
			"location": "London",
			"linkedin": "linkedin.com/in/alex",
		},
		"professionalSummary": summary,
		"skills": map[string]any{
			"technical":      []any{"Go", "PostgreSQL"},
			"soft":           []any{"Mentoring"},
			"tools":          []any{"Docker", "Terraform"},
			"certifications": []any{"CKA"},
		},
		"workExperience": []any{
			map[string]any{
				"jobTitle":     "Senior Software Engineer",
				"company":      "Globex",
				"duration":     "2019 - 2024",
				"description":  "Owned the billing platform serving 2M users",
				"technologies": []any{"Go", "Kafka"},
			},
			map[string]any{"jobTitle": "Software Engineer", "company": "Initech"},
		},
		"education": []any{
			map[string]any{"degree": "BSc Computer Science", "institution": "UCL", "grade": "First"},
		},
		"projects": []any{
			map[string]any{"name": "ledger", "description": "Double-entry ledger", "technologies": "Go, SQLite"},
		},
		"achievements": []any{"Speaker at GopherCon"},
		"languages":    []any{"English", "Spanish"},
		"interests":    []any{"Climbing"},
	}
}

func TestScorersOnSmallResume(t *testing.T) {
	r := Normalize(janeRaw())
	blob := r.Blob()

	assert.Equal(t, 7.5, FormattingScore(r, blob))
	assert.Equal(t, 5.0, KeywordScore(r, blob))
	assert.Equal(t, 10.0, CompletenessScore(r))
	assert.Equal(t, 4.0, ParsingScore(r))
	assert.Equal(t, 2.0, ContentQualityScore(blob))
}

func TestScorersReachCaps(t *testing.T) {
	r := Normalize(richRawResume())
	blob := r.Blob()

	assert.Equal(t, MaxFormatting, FormattingScore(r, blob))
	assert.Equal(t, MaxKeywords, KeywordScore(r, blob))
	assert.Equal(t, MaxCompleteness, CompletenessScore(r))
	assert.InDelta(t, 4.8, ParsingScore(r), 1e-9)
	assert.Equal(t, MaxContentQuality, ContentQualityScore(blob))
}

func TestKeywordScoreWithoutVerbsDigitsOrSkills(t *testing.T) {
	r := Normalize(map[string]any{"name": "Ann", "summary": "Curious person"})
	assert.LessOrEqual(t, KeywordScore(r, r.Blob()), 4.0)
	assert.Equal(t, 0.0, KeywordScore(r, r.Blob()))
}

func TestKeywordScoreCertificationFromText(t *testing.T) {
	r := Normalize(map[string]any{"achievements": []any{"Certified Scrum Master"}})
	assert.Equal(t, 2.0, KeywordScore(r, r.Blob()))
}

func TestContentQualityLengthIsExclusive(t *testing.T) {
	assert.Equal(t, 0.0, ContentQualityScore(strings.Repeat("a", minContentLength)))
	assert.Equal(t, 1.0, ContentQualityScore(strings.Repeat("a", minContentLength+1)))
	assert.Equal(t, 0.0, ContentQualityScore(strings.Repeat("a", maxContentLength)))
}

func TestParsingNeedsTitleAndCompanyAnywhere(t *testing.T) {
	r := Normalize(map[string]any{"workExperience": []any{
		map[string]any{"jobTitle": "Analyst"},
		map[string]any{"company": "Umbrella"},
	}})
	// One populated section (0.2) plus the title/company point.
	assert.InDelta(t, 1.2, ParsingScore(r), 1e-9)
}

func TestBlobIsLowercaseValuesOnly(t *testing.T) {
	r := Normalize(map[string]any{"fullName": "Jane DOE", "skills": []any{"GoLang"}})
	blob := r.Blob()
	assert.Equal(t, "jane doe golang", blob)
	assert.NotContains(t, blob, "fullname")
}
