package ats

import (
	"fmt"
	"math"
	"strings"
)

// MatchNotSpecified labels a result scored without a target job title.
const MatchNotSpecified = "Not Specified - Generic ATS Score Only"

const (
	recFormatting     = "Use standard section headings like 'Experience', 'Education', 'Skills'"
	recKeywords       = "Include more action verbs and industry-specific terminology"
	recCompleteness   = "Ensure all essential sections are present: contact info, summary, experience, education, skills"
	recParsing        = "Use clear job titles, company names, and proper date formatting"
	recContentQuality = "Focus on achievements with quantifiable results and professional language"
	recJobTitleFormat = "Your experience doesn't strongly match \"%s\". Consider highlighting relevant transferable skills or similar roles."
)

// baseMax is the combined cap of the five title-independent scores.
const baseMax = MaxFormatting + MaxKeywords + MaxCompleteness + MaxParsing + MaxContentQuality

// Calculate scores a normalized resume, optionally against a target job title.
// A blank jobTitle yields the base-only score rescaled to 100.
func Calculate(r NormalizedResume, jobTitle string) Result {
	blob := r.Blob()
	b := Breakdown{
		Formatting:     FormattingScore(r, blob),
		Keywords:       KeywordScore(r, blob),
		Completeness:   CompletenessScore(r),
		Parsing:        ParsingScore(r),
		ContentQuality: ContentQualityScore(blob),
	}

	title := strings.TrimSpace(jobTitle)
	if title == "" {
		score := min(100, int(math.Round(b.Base()/baseMax*100)))
		return Result{
			Score:           score,
			Rating:          Rating(score),
			Breakdown:       b,
			JobTitleMatch:   MatchNotSpecified,
			Recommendations: Recommendations(b, ""),
		}
	}

	rel := MatchJobTitle(r, title)
	b.JobTitleRelevance = float64(rel.Score)
	score := int(math.Round(math.Max(0, math.Min(100, b.Base()+b.JobTitleRelevance))))
	return Result{
		Score:           score,
		Rating:          Rating(score),
		Breakdown:       b,
		JobTitleMatch:   rel.Match,
		Recommendations: Recommendations(b, title),
	}
}

// Score normalizes raw extraction output and scores it in one step.
func Score(raw map[string]any, jobTitle string) (NormalizedResume, Result) {
	r := Normalize(raw)
	return r, Calculate(r, jobTitle)
}

// Rating maps a final score to its qualitative band.
func Rating(score int) string {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 70:
		return RatingGood
	case score >= 60:
		return RatingFair
	default:
		return RatingPoor
	}
}

// Recommendations lists advice for every dimension below its threshold.
// The job-title advice is only given when jobTitle is non-blank.
func Recommendations(b Breakdown, jobTitle string) []string {
	out := []string{}
	if b.Formatting < 8 {
		out = append(out, recFormatting)
	}
	if b.Keywords < 7 {
		out = append(out, recKeywords)
	}
	if b.Completeness < 7 {
		out = append(out, recCompleteness)
	}
	if b.Parsing < 3 {
		out = append(out, recParsing)
	}
	if b.ContentQuality < 3 {
		out = append(out, recContentQuality)
	}
	if title := strings.TrimSpace(jobTitle); title != "" && b.JobTitleRelevance < 30 {
		out = append(out, fmt.Sprintf(recJobTitleFormat, title))
	}
	return out
}
