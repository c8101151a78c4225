package ats

// NormalizedResume is the canonical resume record produced by Normalize.
// Every slice is non-nil once normalized.
type NormalizedResume struct {
	PersonalInfo        PersonalInfo     `json:"personalInfo"`
	ProfessionalSummary string           `json:"professionalSummary"`
	Skills              Skills           `json:"skills"`
	WorkExperience      []WorkExperience `json:"workExperience"`
	Education           []Education      `json:"education"`
	Projects            []Project        `json:"projects"`
	Achievements        []string         `json:"achievements"`
	Languages           []string         `json:"languages"`
	Interests           []string         `json:"interests"`
}

type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

type Skills struct {
	Technical      []string `json:"technical"`
	Soft           []string `json:"soft"`
	Tools          []string `json:"tools"`
	Certifications []string `json:"certifications"`
}

type WorkExperience struct {
	JobTitle     string   `json:"jobTitle"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Achievements string   `json:"achievements"`
	Technologies []string `json:"technologies"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
	Grade       string `json:"grade"`
	Location    string `json:"location"`
	Coursework  string `json:"coursework"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Duration     string   `json:"duration"`
	Role         string   `json:"role"`
	Link         string   `json:"link"`
}

// Breakdown holds the per-dimension points that make up an ATS score.
type Breakdown struct {
	Formatting        float64 `json:"formatting"`
	Keywords          float64 `json:"keywords"`
	Completeness      float64 `json:"completeness"`
	Parsing           float64 `json:"parsing"`
	ContentQuality    float64 `json:"contentQuality"`
	JobTitleRelevance float64 `json:"jobTitleRelevance"`
}

// Base returns the sum of the five title-independent scores.
func (b Breakdown) Base() float64 {
	return b.Formatting + b.Keywords + b.Completeness + b.Parsing + b.ContentQuality
}

// Result is the scoring report returned to callers and persisted with a CV.
type Result struct {
	Score           int       `json:"ATS_Score"`
	Rating          string    `json:"rating"`
	Breakdown       Breakdown `json:"breakdown"`
	JobTitleMatch   string    `json:"jobTitleMatch"`
	Recommendations []string  `json:"recommendations"`
}

const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingFair      = "Fair"
	RatingPoor      = "Poor"
)

// Per-dimension caps. They sum to 100.
const (
	MaxFormatting        = 10.0
	MaxKeywords          = 10.0
	MaxCompleteness      = 10.0
	MaxParsing           = 5.0
	MaxContentQuality    = 5.0
	MaxJobTitleRelevance = 60
)

func (p PersonalInfo) populated() bool {
	return p.FullName != "" || p.Email != "" || p.Phone != "" || p.Location != "" || p.LinkedIn != "" || p.Portfolio != ""
}

func (s Skills) populated() bool {
	return len(s.Technical) > 0 || len(s.Soft) > 0 || len(s.Tools) > 0 || len(s.Certifications) > 0
}

// populatedFields counts the top-level sections that carry any content.
func (r NormalizedResume) populatedFields() int {
	checks := []bool{
		r.PersonalInfo.populated(),
		r.ProfessionalSummary != "",
		r.Skills.populated(),
		len(r.WorkExperience) > 0,
		len(r.Education) > 0,
		len(r.Projects) > 0,
		len(r.Achievements) > 0,
		len(r.Languages) > 0,
		len(r.Interests) > 0,
	}
	n := 0
	for _, ok := range checks {
		if ok {
			n++
		}
	}
	return n
}
