package memory

import "github.com/AMULYA007-hub/campus-hire/internal/models"

// Seed is an initial data set.
type Seed struct {
	Jobs         []models.Job
	Applications []models.Application
	Placements   []models.Placement
	Users        []models.User
}

// DemoSeed returns the demo data the portal ships with.
func DemoSeed() Seed {
	return Seed{
		Jobs: []models.Job{
			{
				ID: 1, Title: "Senior Frontend Developer", Company: "Tech Corp", Salary: "12-15 LPA", Location: "Bangalore",
				Description: "Looking for experienced React developers with strong TypeScript knowledge.",
				Skills:      []string{"React", "TypeScript", "Node.js"},
				Posted:      "2024-02-20", Deadline: "2024-03-20", Applicants: 45, Status: models.JobActive,
			},
			{
				ID: 2, Title: "Full Stack Developer", Company: "CloudNine", Salary: "10-12 LPA", Location: "Pune",
				Description: "Join our team to build scalable cloud applications.",
				Skills:      []string{"React", "Node.js", "MongoDB", "AWS"},
				Posted:      "2024-02-18", Deadline: "2024-03-18", Applicants: 32, Status: models.JobActive,
			},
			{
				ID: 3, Title: "Backend Developer", Company: "DataSoft", Salary: "11-13 LPA", Location: "Hyderabad",
				Description: "Experienced developer needed for distributed systems.",
				Skills:      []string{"Python", "Java", "PostgreSQL", "Docker"},
				Posted:      "2024-02-15", Deadline: "2024-03-15", Applicants: 28, Status: models.JobActive,
			},
			{
				ID: 4, Title: "DevOps Engineer", Company: "CloudInfra", Salary: "13-16 LPA", Location: "Mumbai",
				Description: "Manage and optimize cloud infrastructure.",
				Skills:      []string{"Kubernetes", "Docker", "AWS", "CI/CD"},
				Posted:      "2024-02-10", Deadline: "2024-03-10", Applicants: 18, Status: models.JobActive,
			},
			{
				ID: 5, Title: "Data Scientist", Company: "AI Labs", Salary: "14-17 LPA", Location: "Bangalore",
				Description: "Work on cutting-edge ML and AI projects.",
				Skills:      []string{"Python", "TensorFlow", "Data Analysis", "SQL"},
				Posted:      "2024-02-05", Deadline: "2024-03-05", Applicants: 56, Status: models.JobActive,
			},
		},
		Applications: []models.Application{
			{ID: 1, StudentID: "2", JobID: 1, Status: models.StatusApplied, Date: "2024-02-21", Resume: "resume.pdf"},
			{ID: 2, StudentID: "2", JobID: 2, Status: models.StatusShortlisted, Date: "2024-02-22", Resume: "resume.pdf"},
			{ID: 3, StudentID: "2", JobID: 3, Status: models.StatusRejected, Date: "2024-02-19", Resume: "resume.pdf"},
		},
		Placements: []models.Placement{
			{ID: 1, StudentName: "Ahmed Hassan", CompanyName: "Tech Corp", Position: "Senior Developer", Salary: "14 LPA", Date: "2024-02-20"},
			{ID: 2, StudentName: "Neha Sharma", CompanyName: "CloudNine", Position: "Full Stack Developer", Salary: "11 LPA", Date: "2024-02-19"},
		},
		Users: []models.User{
			{ID: 1, Name: "Raj Kumar", Email: "raj@campus.com", Role: models.RoleStudent, Status: models.UserActive, JoinDate: "2023-01-15"},
			{ID: 2, Name: "Priya Singh", Email: "priya@campus.com", Role: models.RoleStudent, Status: models.UserActive, JoinDate: "2023-01-16"},
			{ID: 3, Name: "Tech Corp", Email: "recruiter@techcorp.com", Role: models.RoleEmployer, Status: models.UserActive, JoinDate: "2024-01-01"},
			{ID: 4, Name: "CloudNine", Email: "recruiter@cloudnine.com", Role: models.RoleEmployer, Status: models.UserActive, JoinDate: "2024-01-02"},
		},
	}
}
