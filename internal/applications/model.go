package applications

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusAccepted    Status = "accepted"
)

// ValidStatuses lists every status an admin may set, in workflow order.
var ValidStatuses = []Status{StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusAccepted}

func (s Status) Valid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Application struct {
	ID                 string    `json:"applicationId"`
	UserID             string    `json:"userId"`
	JobID              string    `json:"jobId"`
	JobTitle           string    `json:"jobTitle"`
	JobType            string    `json:"jobType"`
	Salary             string    `json:"salary"`
	Openings           int       `json:"openings"`
	YearsOfExperience  string    `json:"yearsOfExperience"`
	RelevantExperience string    `json:"relevantExperience"`
	CurrentLocation    string    `json:"currentLocation"`
	ExpectedSalary     string    `json:"expectedSalary"`
	ATSScore           int       `json:"atsScore"`
	Status             Status    `json:"applicationStatus"`
	AppliedAt          time.Time `json:"appliedAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Applicant is the account snapshot shown to admins next to an application.
type Applicant struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type Listing struct {
	Application
	Applicant *Applicant `json:"applicant,omitempty"`
}

// ApplyInput is a parsed application form. Salary fields accept strings or numbers.
type ApplyInput struct {
	JobID              string
	JobTitle           string
	JobType            string
	Salary             string
	Openings           int
	YearsOfExperience  string
	RelevantExperience string
	CurrentLocation    string
	ExpectedSalary     string
}

var applyFields = []string{
	"jobId", "jobTitle", "jobType", "salary", "openings",
	"yearsOfExperience", "relevantExperience", "currentLocation", "expectedSalary",
}

// ParseApply reads an application form and reports, for every field, whether it is missing.
func ParseApply(raw map[string]any) (ApplyInput, map[string]bool) {
	in := ApplyInput{
		JobID:              flexString(raw["jobId"]),
		JobTitle:           flexString(raw["jobTitle"]),
		JobType:            flexString(raw["jobType"]),
		Salary:             flexString(raw["salary"]),
		Openings:           flexInt(raw["openings"]),
		YearsOfExperience:  flexString(raw["yearsOfExperience"]),
		RelevantExperience: flexString(raw["relevantExperience"]),
		CurrentLocation:    flexString(raw["currentLocation"]),
		ExpectedSalary:     flexString(raw["expectedSalary"]),
	}
	values := map[string]bool{
		"jobId":              in.JobID != "",
		"jobTitle":           in.JobTitle != "",
		"jobType":            in.JobType != "",
		"salary":             in.Salary != "",
		"openings":           in.Openings > 0,
		"yearsOfExperience":  in.YearsOfExperience != "",
		"relevantExperience": in.RelevantExperience != "",
		"currentLocation":    in.CurrentLocation != "",
		"expectedSalary":     in.ExpectedSalary != "",
	}
	missing := make(map[string]bool, len(applyFields))
	anyMissing := false
	for _, field := range applyFields {
		missing[field] = !values[field]
		anyMissing = anyMissing || missing[field]
	}
	if !anyMissing {
		return in, nil
	}
	return in, missing
}

func flexString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
	}
	return ""
}

func flexInt(v any) int {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0
		}
		return int(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
