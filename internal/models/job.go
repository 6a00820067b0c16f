package models

import "time"

// DateLayout is the calendar date format used for posted, deadline, date and joinDate fields.
const DateLayout = "2006-01-02"

// Today formats t as a calendar date.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	return s == JobActive || s == JobClosed
}

// Job is an opening posted by an employer. Applicants only ever grows.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Salary      string    `json:"salary"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Posted      string    `json:"posted"`
	Deadline    string    `json:"deadline"`
	Applicants  int       `json:"applicants"`
	Status      JobStatus `json:"status"`
}

// JobInput carries the employer supplied fields of a new job.
type JobInput struct {
	Title       string   `json:"title" validate:"required"`
	Company     string   `json:"company"`
	Salary      string   `json:"salary"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Deadline    string   `json:"deadline" validate:"omitempty,date"`
}

// JobPatch is a partial update; nil fields are left untouched.
type JobPatch struct {
	Title       *string    `json:"title,omitempty"`
	Company     *string    `json:"company,omitempty"`
	Salary      *string    `json:"salary,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
	Skills      []string   `json:"skills,omitempty"`
	Deadline    *string    `json:"deadline,omitempty"`
	Status      *JobStatus `json:"status,omitempty"`
}

// Apply merges p into j.
func (p JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Company != nil {
		j.Company = *p.Company
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Skills != nil {
		j.Skills = append([]string(nil), p.Skills...)
	}
	if p.Deadline != nil {
		j.Deadline = *p.Deadline
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
}

// JobFilter narrows a job listing. Zero fields match everything.
type JobFilter struct {
	Query    string
	Skills   []string
	Location string
	Status   JobStatus
}
