package ats

// Alias tables map each canonical field to the keys extraction output is
// known to use for it. Lookup is first non-empty match, and the canonical
// key always comes first so a normalized record resolves to itself.

type scalarRule[T any] struct {
	keys []string
	set  func(*T, string)
}

type listRule[T any] struct {
	keys []string
	set  func(*T, []string)
}

var personalInfoContainers = []string{
	"personalInfo", "personal_info", "contact", "contactInfo", "contactInformation", "personalInformation",
}

var personalInfoRules = []scalarRule[PersonalInfo]{
	{keys: []string{"fullName", "full_name", "fullname", "name", "candidateName"}, set: func(p *PersonalInfo, v string) { p.FullName = v }},
	{keys: []string{"email", "emailAddress", "email_address", "mail"}, set: func(p *PersonalInfo, v string) { p.Email = v }},
	{keys: []string{"phone", "phoneNumber", "phone_number", "mobile", "contactNumber", "telephone"}, set: func(p *PersonalInfo, v string) { p.Phone = v }},
	{keys: []string{"location", "address", "city"}, set: func(p *PersonalInfo, v string) { p.Location = v }},
	{keys: []string{"linkedin", "linkedIn", "linkedinUrl", "linkedin_url", "linkedInProfile"}, set: func(p *PersonalInfo, v string) { p.LinkedIn = v }},
	{keys: []string{"portfolio", "website", "portfolioUrl", "personalWebsite", "github"}, set: func(p *PersonalInfo, v string) { p.Portfolio = v }},
}

var summaryKeys = []string{
	"professionalSummary", "professional_summary", "summary", "profile", "objective", "experienceSummary", "careerObjective", "about",
}

var skillsContainers = []string{"skills", "skillSet", "skill_set", "skillset"}

type skillsRule struct {
	keys []string
	slot func(*Skills) *[]string
}

var skillsRules = []skillsRule{
	{keys: []string{"technical", "technicalSkills", "technical_skills", "hardSkills", "programming"}, slot: func(s *Skills) *[]string { return &s.Technical }},
	{keys: []string{"soft", "softSkills", "soft_skills", "interpersonal"}, slot: func(s *Skills) *[]string { return &s.Soft }},
	{keys: []string{"tools", "technologies", "toolsAndTechnologies", "frameworks"}, slot: func(s *Skills) *[]string { return &s.Tools }},
	{keys: []string{"certifications", "certificates", "certification", "licenses"}, slot: func(s *Skills) *[]string { return &s.Certifications }},
}

// Top-level keys consulted when the skills container lacks a sub-list.
var skillsTopLevelRules = []skillsRule{
	{keys: []string{"technicalSkills", "technical_skills"}, slot: func(s *Skills) *[]string { return &s.Technical }},
	{keys: []string{"softSkills", "soft_skills"}, slot: func(s *Skills) *[]string { return &s.Soft }},
	{keys: []string{"tools", "technologies"}, slot: func(s *Skills) *[]string { return &s.Tools }},
	{keys: []string{"certifications", "certificates", "licenses"}, slot: func(s *Skills) *[]string { return &s.Certifications }},
}

var workExperienceKeys = []string{
	"workExperience", "work_experience", "experience", "experiences", "employment", "employmentHistory", "workHistory", "professionalExperience",
}

var workExperienceRules = []scalarRule[WorkExperience]{
	{keys: []string{"jobTitle", "job_title", "title", "position", "role", "designation"}, set: func(w *WorkExperience, v string) { w.JobTitle = v }},
	{keys: []string{"company", "companyName", "company_name", "employer", "organization"}, set: func(w *WorkExperience, v string) { w.Company = v }},
	{keys: []string{"duration", "period", "dates", "date", "tenure"}, set: func(w *WorkExperience, v string) { w.Duration = v }},
	{keys: []string{"location", "city"}, set: func(w *WorkExperience, v string) { w.Location = v }},
	{keys: []string{"description", "responsibilities", "jobDescription", "duties"}, set: func(w *WorkExperience, v string) { w.Description = v }},
	{keys: []string{"achievements", "accomplishments", "highlights"}, set: func(w *WorkExperience, v string) { w.Achievements = v }},
}

var workExperienceListRules = []listRule[WorkExperience]{
	{keys: []string{"technologies", "techStack", "tech_stack", "tools", "skills"}, set: func(w *WorkExperience, v []string) { w.Technologies = v }},
}

var educationKeys = []string{
	"education", "educations", "academicBackground", "academics", "qualifications",
}

var educationRules = []scalarRule[Education]{
	{keys: []string{"degree", "qualification", "program", "course", "major", "fieldOfStudy"}, set: func(e *Education, v string) { e.Degree = v }},
	{keys: []string{"institution", "school", "university", "college", "institute"}, set: func(e *Education, v string) { e.Institution = v }},
	{keys: []string{"duration", "period", "dates", "year", "graduationYear"}, set: func(e *Education, v string) { e.Duration = v }},
	{keys: []string{"grade", "gpa", "cgpa", "result", "percentage"}, set: func(e *Education, v string) { e.Grade = v }},
	{keys: []string{"location", "city"}, set: func(e *Education, v string) { e.Location = v }},
	{keys: []string{"coursework", "courses", "relevantCoursework", "subjects"}, set: func(e *Education, v string) { e.Coursework = v }},
}

var projectKeys = []string{"projects", "personalProjects", "project"}

var projectRules = []scalarRule[Project]{
	{keys: []string{"name", "title", "projectName", "project_name"}, set: func(p *Project, v string) { p.Name = v }},
	{keys: []string{"description", "summary", "details"}, set: func(p *Project, v string) { p.Description = v }},
	{keys: []string{"duration", "period", "dates"}, set: func(p *Project, v string) { p.Duration = v }},
	{keys: []string{"role", "position"}, set: func(p *Project, v string) { p.Role = v }},
	{keys: []string{"link", "url", "github", "repository", "demo"}, set: func(p *Project, v string) { p.Link = v }},
}

var projectListRules = []listRule[Project]{
	{keys: []string{"technologies", "techStack", "tech_stack", "tools", "stack"}, set: func(p *Project, v []string) { p.Technologies = v }},
}

var (
	achievementKeys = []string{"achievements", "accomplishments", "awards", "honors"}
	languageKeys    = []string{"languages", "spokenLanguages", "language"}
	interestKeys    = []string{"interests", "hobbies"}
)
