package models

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a forward step:
// applied to shortlisted or rejected, shortlisted to hired.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	switch s {
	case StatusApplied:
		return next == StatusShortlisted || next == StatusRejected
	case StatusShortlisted:
		return next == StatusHired
	}
	return false
}

// Application links a student to a job. JobID may point at a deleted job.
type Application struct {
	ID        int64             `json:"id"`
	StudentID string            `json:"studentId"`
	JobID     int64             `json:"jobId"`
	Status    ApplicationStatus `json:"status"`
	Date      string            `json:"date"`
	Resume    string            `json:"resume"`
}

// StudentInfo identifies the applicant of ApplyJob.
type StudentInfo struct {
	StudentID string `json:"studentId" validate:"required"`
	Resume    string `json:"resume"`
}
