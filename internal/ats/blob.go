package ats

import "strings"

// Blob joins every non-empty string value of the resume, in field order,
// separated by single spaces and lower-cased. Substring checks run against it.
func (r NormalizedResume) Blob() string {
	parts := make([]string, 0, 64)
	add := func(values ...string) {
		for _, v := range values {
			if v != "" {
				parts = append(parts, v)
			}
		}
	}

	p := r.PersonalInfo
	add(p.FullName, p.Email, p.Phone, p.Location, p.LinkedIn, p.Portfolio)
	add(r.ProfessionalSummary)
	add(r.Skills.Technical...)
	add(r.Skills.Soft...)
	add(r.Skills.Tools...)
	add(r.Skills.Certifications...)
	for _, w := range r.WorkExperience {
		add(w.JobTitle, w.Company, w.Duration, w.Location, w.Description, w.Achievements)
		add(w.Technologies...)
	}
	for _, e := range r.Education {
		add(e.Degree, e.Institution, e.Duration, e.Grade, e.Location, e.Coursework)
	}
	for _, pr := range r.Projects {
		add(pr.Name, pr.Description)
		add(pr.Technologies...)
		add(pr.Duration, pr.Role, pr.Link)
	}
	add(r.Achievements...)
	add(r.Languages...)
	add(r.Interests...)

	return strings.ToLower(strings.Join(parts, " "))
}
