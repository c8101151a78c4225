package jobs

import "time"

// Job is an open position posted by an admin.
type Job struct {
	ID             string    `json:"id"`
	JobTitle       string    `json:"jobTitle"`
	CompanyName    string    `json:"companyName,omitempty"`
	Location       string    `json:"location,omitempty"`
	JobDescription string    `json:"jobDescription,omitempty"`
	Requirements   string    `json:"requirements,omitempty"`
	Vacancies      int       `json:"vacancies"`
	JobType        string    `json:"jobType"`
	Salary         string    `json:"salary"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateInput struct {
	JobTitle       string `json:"jobTitle" binding:"required,notblank"`
	CompanyName    string `json:"companyName"`
	Location       string `json:"location"`
	JobDescription string `json:"jobDescription"`
	Requirements   string `json:"requirements"`
	Vacancies      int    `json:"vacancies" binding:"required,gt=0"`
	JobType        string `json:"jobType" binding:"required,notblank"`
	Salary         string `json:"salary" binding:"required,notblank"`
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	JobTitle       *string `json:"jobTitle" binding:"omitempty,notblank"`
	CompanyName    *string `json:"companyName"`
	Location       *string `json:"location"`
	JobDescription *string `json:"jobDescription"`
	Requirements   *string `json:"requirements"`
	Vacancies      *int    `json:"vacancies" binding:"omitempty,gt=0"`
	JobType        *string `json:"jobType" binding:"omitempty,notblank"`
	Salary         *string `json:"salary" binding:"omitempty,notblank"`
}

func (in UpdateInput) apply(job *Job) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&job.JobTitle, in.JobTitle)
	set(&job.CompanyName, in.CompanyName)
	set(&job.Location, in.Location)
	set(&job.JobDescription, in.JobDescription)
	set(&job.Requirements, in.Requirements)
	set(&job.JobType, in.JobType)
	set(&job.Salary, in.Salary)
	if in.Vacancies != nil {
		job.Vacancies = *in.Vacancies
	}
}
