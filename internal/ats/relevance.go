package ats

import (
	"math"
	"strings"
	"unicode"
)

var entryLevelKeywords = []string{"junior", "entry", "intern", "trainee", "fresher", "graduate", "associate"}

var keyRoleKeywords = map[string]struct{}{
	"developer": {}, "engineer": {}, "manager": {}, "analyst": {}, "designer": {},
	"architect": {}, "specialist": {}, "lead": {}, "scientist": {}, "consultant": {},
}

const (
	MatchEntryLevel    = "Entry Level - Suitable for Freshers"
	MatchNoExperience  = "No Matching Experience Found"
	entryLevelScore    = 25
	noExperienceScore  = 5
	partialTokenCredit = 0.7
	keyRoleBonus       = 5
)

// Relevance is the outcome of comparing a target title against a work history.
type Relevance struct {
	Score        int    `json:"score"`
	Match        string `json:"match"`
	MatchedTitle string `json:"matchedTitle,omitempty"`
}

// MatchJobTitle scores how closely the resume's past job titles match target.
// The caller is expected to pass a non-blank target.
func MatchJobTitle(r NormalizedResume, target string) Relevance {
	target = strings.ToLower(strings.TrimSpace(target))

	candidates := make([]string, 0, len(r.WorkExperience))
	for _, w := range r.WorkExperience {
		if title := strings.ToLower(strings.TrimSpace(w.JobTitle)); title != "" {
			candidates = append(candidates, title)
		}
	}

	if len(candidates) == 0 {
		for _, kw := range entryLevelKeywords {
			if strings.Contains(target, kw) {
				return Relevance{Score: entryLevelScore, Match: MatchEntryLevel}
			}
		}
		return Relevance{Score: noExperienceScore, Match: MatchNoExperience}
	}

	targetTokens := tokenizeTitle(target)
	best := 0.0
	matched := ""
	for _, candidate := range candidates {
		if candidate == target {
			best = math.Max(best, MaxJobTitleRelevance)
			matched = candidate
			continue
		}
		if score := titleSimilarityScore(targetTokens, tokenizeTitle(candidate)); score > best {
			best = score
			matched = candidate
		}
	}

	score := int(math.Round(best))
	score = max(0, min(score, MaxJobTitleRelevance))

	label := matchLabel(score)
	if matched != "" {
		label += " (" + matched + ")"
	}
	return Relevance{Score: score, Match: label, MatchedTitle: matched}
}

func titleSimilarityScore(targetTokens, candidateTokens []string) float64 {
	if len(targetTokens) == 0 {
		return 0
	}
	matching := 0.0
	keywordMatch := false
	for _, t := range targetTokens {
		for _, c := range candidateTokens {
			switch {
			case t == c:
				matching++
				if _, ok := keyRoleKeywords[t]; ok {
					keywordMatch = true
				}
			case strings.Contains(c, t) || strings.Contains(t, c):
				matching += partialTokenCredit
			}
		}
	}

	similarity := matching / float64(len(targetTokens))
	var score float64
	switch {
	case similarity >= 0.9:
		score = 50 + (similarity-0.9)*80
	case similarity >= 0.7:
		score = 40 + (similarity-0.7)*50
	case similarity >= 0.5:
		score = 25 + (similarity-0.5)*75
	case similarity >= 0.3:
		score = 15 + (similarity-0.3)*50
	default:
		score = similarity * 50
	}
	if keywordMatch {
		score += keyRoleBonus
	}
	return score
}

func matchLabel(score int) string {
	switch {
	case score >= 58:
		return "Exact Match"
	case score >= 45:
		return "Strong Match"
	case score >= 30:
		return "Good Match"
	case score >= 15:
		return "Partial Match"
	default:
		return "Weak Match"
	}
}

func tokenizeTitle(title string) []string {
	return strings.FieldsFunc(title, func(r rune) bool {
		return r == '-' || r == '/' || unicode.IsSpace(r)
	})
}
