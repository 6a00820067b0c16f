package models

import "slices"

const avatarURL = "https://i.pravatar.cc/150?u="

// RoleProfile holds the role specific attributes of an account. Exactly one
// of the fields is set, matching the account role.
type RoleProfile struct {
	Student  *StudentProfile  `json:"student,omitempty"`
	Employer *EmployerProfile `json:"employer,omitempty"`
	Officer  *OfficerProfile  `json:"officer,omitempty"`
	Admin    *AdminProfile    `json:"admin,omitempty"`
}

type StudentProfile struct {
	Avatar       string   `json:"avatar"`
	Roll         string   `json:"roll"`
	Department   string   `json:"department"`
	GPA          float64  `json:"gpa"`
	Skills       []string `json:"skills"`
	Applications int      `json:"applications"`
	Applied      bool     `json:"applied"`
}

type EmployerProfile struct {
	Avatar             string `json:"avatar"`
	Company            string `json:"company"`
	PostedJobs         int    `json:"postedJobs"`
	ActiveApplications int    `json:"activeApplications"`
	Hires              int    `json:"hires"`
}

type OfficerProfile struct {
	Avatar         string  `json:"avatar"`
	Department     string  `json:"department"`
	TotalStudents  int     `json:"totalStudents"`
	PlacedStudents int     `json:"placedStudents"`
	AvgPackage     float64 `json:"avgPackage"`
}

type AdminProfile struct {
	Avatar      string   `json:"avatar"`
	Permissions []string `json:"permissions"`
}

// DefaultRoleProfile returns the profile a freshly registered account of the
// given role starts with. seed personalises the avatar URL.
func DefaultRoleProfile(role Role, seed string) RoleProfile {
	avatar := avatarURL + seed
	switch role {
	case RoleStudent:
		return RoleProfile{Student: &StudentProfile{
			Avatar:     avatar,
			Roll:       "MCS-2023-001",
			Department: "Computer Science",
			GPA:        3.8,
			Skills:     []string{"React", "Node.js", "Python", "MongoDB"},
		}}
	case RoleEmployer:
		return RoleProfile{Employer: &EmployerProfile{
			Avatar:  avatar,
			Company: "Tech Solutions",
		}}
	case RoleOfficer:
		return RoleProfile{Officer: &OfficerProfile{
			Avatar:        avatar,
			Department:    "Placements",
			TotalStudents: 450,
		}}
	case RoleAdmin:
		return RoleProfile{Admin: &AdminProfile{
			Avatar:      avatar,
			Permissions: []string{"manage_users", "manage_jobs", "manage_applications", "view_reports"},
		}}
	}
	return RoleProfile{}
}

// Only drops every sub-profile except the one belonging to role.
func (p RoleProfile) Only(role Role) RoleProfile {
	var out RoleProfile
	switch role {
	case RoleStudent:
		out.Student = p.Student
	case RoleEmployer:
		out.Employer = p.Employer
	case RoleOfficer:
		out.Officer = p.Officer
	case RoleAdmin:
		out.Admin = p.Admin
	}
	return out
}

// Clone returns a deep copy.
func (p RoleProfile) Clone() RoleProfile {
	var out RoleProfile
	if p.Student != nil {
		s := *p.Student
		s.Skills = slices.Clone(s.Skills)
		out.Student = &s
	}
	if p.Employer != nil {
		e := *p.Employer
		out.Employer = &e
	}
	if p.Officer != nil {
		o := *p.Officer
		out.Officer = &o
	}
	if p.Admin != nil {
		a := *p.Admin
		a.Permissions = slices.Clone(a.Permissions)
		out.Admin = &a
	}
	return out
}
