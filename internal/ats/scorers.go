package ats

import (
	"math"
	"strings"
	"unicode/utf8"
)

var standardSections = []string{
	"experience", "work experience", "professional experience", "employment",
	"education", "academic background", "qualifications",
	"skills", "technical skills", "core competencies", "expertise",
	"summary", "professional summary", "profile", "objective",
	"contact", "contact information", "personal information",
	"achievements", "accomplishments", "awards", "certifications",
}

var actionVerbs = []string{
	"managed", "developed", "led", "implemented", "created", "designed", "built", "established",
	"improved", "increased", "reduced", "optimized", "streamlined", "coordinated", "executed",
	"delivered", "achieved", "supervised", "directed", "organized", "planned", "initiated",
	"collaborated", "analyzed", "resolved", "enhanced", "maintained", "operated", "administered",
}

var (
	professionalWords = []string{"professional", "experienced", "skilled", "expertise", "proficient"}
	achievementWords  = []string{"achieved", "accomplished", "improved", "increased", "successful"}
)

const (
	minContentLength = 500
	maxContentLength = 10000
)

// FormattingScore rewards recognizable section headings and populated core sections.
func FormattingScore(r NormalizedResume, blob string) float64 {
	score := math.Min(3, float64(countContained(blob, standardSections))/2)
	for _, present := range []bool{
		r.PersonalInfo.populated(),
		len(r.WorkExperience) > 0,
		len(r.Education) > 0,
		r.Skills.populated(),
	} {
		if present {
			score++
		}
	}
	// Extraction succeeded, so the structure is taken as clean.
	score += 3
	return math.Min(score, MaxFormatting)
}

// KeywordScore rewards action verbs, listed skills, certifications and numbers.
func KeywordScore(r NormalizedResume, blob string) float64 {
	score := math.Min(4, float64(countContained(blob, actionVerbs))/2)
	if len(r.Skills.Technical) > 0 || len(r.Skills.Tools) > 0 {
		score += 3
	}
	if len(r.Skills.Certifications) > 0 || strings.Contains(blob, "certif") {
		score += 2
	}
	if strings.ContainsAny(blob, "0123456789") {
		score++
	}
	return math.Min(score, MaxKeywords)
}

// CompletenessScore checks the sections every resume is expected to carry.
func CompletenessScore(r NormalizedResume) float64 {
	score := 0.0
	if r.PersonalInfo.Email != "" {
		score += 2
	}
	if r.ProfessionalSummary != "" {
		score += 1.5
	}
	if len(r.WorkExperience) > 0 {
		score += 2.5
	}
	if len(r.Education) > 0 {
		score += 2
	}
	if len(r.Skills.Technical) > 0 {
		score += 2
	}
	return math.Min(score, MaxCompleteness)
}

// ParsingScore estimates how cleanly an ATS could pick the resume apart.
func ParsingScore(r NormalizedResume) float64 {
	score := math.Min(2, float64(r.populatedFields())/5)
	if r.PersonalInfo.Email != "" {
		score++
	}
	if r.PersonalInfo.Phone != "" {
		score++
	}
	hasTitle, hasCompany := false, false
	for _, w := range r.WorkExperience {
		hasTitle = hasTitle || w.JobTitle != ""
		hasCompany = hasCompany || w.Company != ""
	}
	if hasTitle && hasCompany {
		score++
	}
	return math.Min(score, MaxParsing)
}

// ContentQualityScore looks at overall length and the tone of the language used.
func ContentQualityScore(blob string) float64 {
	score := 0.0
	if n := utf8.RuneCountInString(blob); n > minContentLength && n < maxContentLength {
		score++
	}
	if countContained(blob, professionalWords) > 0 {
		score += 2
	}
	if countContained(blob, achievementWords) > 0 {
		score += 2
	}
	return math.Min(score, MaxContentQuality)
}

func countContained(blob string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(blob, term) {
			n++
		}
	}
	return n
}
