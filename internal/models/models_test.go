package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

func TestDefaultRoleProfile(t *testing.T) {
	tests := []struct {
		role  models.Role
		check func(t *testing.T, p models.RoleProfile)
	}{
		{
			role: models.RoleStudent,
			check: func(t *testing.T, p models.RoleProfile) {
				require.NotNil(t, p.Student)
				assert.Equal(t, "Computer Science", p.Student.Department)
				assert.Equal(t, 3.8, p.Student.GPA)
				assert.Equal(t, []string{"React", "Node.js", "Python", "MongoDB"}, p.Student.Skills)
				assert.Nil(t, p.Employer)
			},
		},
		{
			role: models.RoleEmployer,
			check: func(t *testing.T, p models.RoleProfile) {
				require.NotNil(t, p.Employer)
				assert.Equal(t, "Tech Solutions", p.Employer.Company)
			},
		},
		{
			role: models.RoleOfficer,
			check: func(t *testing.T, p models.RoleProfile) {
				require.NotNil(t, p.Officer)
				assert.Equal(t, 450, p.Officer.TotalStudents)
			},
		},
		{
			role: models.RoleAdmin,
			check: func(t *testing.T, p models.RoleProfile) {
				require.NotNil(t, p.Admin)
				assert.Len(t, p.Admin.Permissions, 4)
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			tt.check(t, models.DefaultRoleProfile(tt.role, "seed"))
		})
	}
}

func TestRoleProfile_CloneIsDeep(t *testing.T) {
	p := models.DefaultRoleProfile(models.RoleStudent, "x")
	c := p.Clone()
	c.Student.Skills[0] = "Go"
	c.Student.GPA = 1

	assert.Equal(t, "React", p.Student.Skills[0])
	assert.Equal(t, 3.8, p.Student.GPA)
}

func TestRoleProfile_Only(t *testing.T) {
	p := models.DefaultRoleProfile(models.RoleStudent, "x")
	p.Employer = &models.EmployerProfile{Company: "Acme"}

	only := p.Only(models.RoleStudent)
	assert.NotNil(t, only.Student)
	assert.Nil(t, only.Employer)
}

func TestAccount_PublicHasNoPassword(t *testing.T) {
	acc := models.Account{
		ID:           "1",
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: "hash",
		Role:         models.RoleStudent,
		CreatedAt:    time.Now(),
	}

	raw, err := json.Marshal(acc.Public())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "passwordHash")
	assert.Equal(t, "A", fields["name"])
}

func TestApplicationStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to models.ApplicationStatus
		want     bool
	}{
		{models.StatusApplied, models.StatusShortlisted, true},
		{models.StatusApplied, models.StatusRejected, true},
		{models.StatusApplied, models.StatusHired, false},
		{models.StatusShortlisted, models.StatusHired, true},
		{models.StatusShortlisted, models.StatusApplied, false},
		{models.StatusRejected, models.StatusShortlisted, false},
		{models.StatusHired, models.StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestJobPatch_Apply(t *testing.T) {
	job := models.Job{ID: 1, Title: "Old", Salary: "1", Applicants: 3, Status: models.JobActive}
	title := "New"
	closed := models.JobClosed

	models.JobPatch{Title: &title, Status: &closed}.Apply(&job)

	assert.Equal(t, "New", job.Title)
	assert.Equal(t, "1", job.Salary)
	assert.Equal(t, 3, job.Applicants)
	assert.Equal(t, models.JobClosed, job.Status)
}
