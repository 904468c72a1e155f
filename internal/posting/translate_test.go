package posting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobeditor/internal/domain"
)

func TestToPostingRoundTripsUnmodifiedPosting(t *testing.T) {
	src := samplePosting()

	got := Seed(src, StandardDefaults()).ToPosting(src.ID)

	assert.Equal(t, domain.JobTypeFullTime, got.JobType)
	assert.Equal(t, src.Title, got.Title)
	assert.Equal(t, src.SalaryType, got.SalaryType)
	assert.Equal(t, src.SalaryMin, got.SalaryMin)
	assert.Equal(t, src.SalaryMax, got.SalaryMax)
	assert.Equal(t, src.SalaryCurrency, got.SalaryCurrency)
	assert.Nil(t, got.SalaryAmount)
	assert.Equal(t, src.ApplicationDeadline, got.ApplicationDeadline)
	assert.Equal(t, src.Skills, got.Skills)
	assert.Equal(t, src.Requirements, got.Requirements)
	assert.Equal(t, src.ScreeningQuestions, got.ScreeningQuestions)
	assert.Equal(t, src.ApplicationURL, got.ApplicationURL)
	assert.Nil(t, got.ApplicationEmail)
}

func TestToPostingMapsEveryJobTypeBack(t *testing.T) {
	for _, jt := range []domain.JobType{
		domain.JobTypeFullTime, domain.JobTypePartTime, domain.JobTypeContract,
		domain.JobTypeFreelance, domain.JobTypeInternship, "seasonal",
	} {
		p := samplePosting()
		p.JobType = jt
		assert.Equal(t, jt, Seed(p, StandardDefaults()).ToPosting(p.ID).JobType)
	}
}

func TestToPostingNullsInactiveFields(t *testing.T) {
	f := Seed(samplePosting(), StandardDefaults())
	require.NoError(t, f.Set(FieldSalaryType, SalaryCustom))
	require.NoError(t, f.Set(FieldSalaryMessage, "Negotiable"))
	require.NoError(t, f.Set(FieldApplicationMethod, MethodEmail))
	require.NoError(t, f.Set(FieldApplicationEmail, " jobs@example.com "))
	require.NoError(t, f.Set(FieldDeadline, "soon"))

	got := f.ToPosting("job-1")

	assert.Nil(t, got.SalaryMin)
	assert.Nil(t, got.SalaryMax)
	assert.Nil(t, got.SalaryCurrency)
	require.NotNil(t, got.SalaryMessage)
	assert.Equal(t, "Negotiable", *got.SalaryMessage)
	assert.Nil(t, got.ApplicationURL)
	require.NotNil(t, got.ApplicationEmail)
	assert.Equal(t, "jobs@example.com", *got.ApplicationEmail)
	assert.Nil(t, got.ApplicationDeadline)
}

func TestToPostingKeepsTimeOfDayDeadline(t *testing.T) {
	p := samplePosting()
	at := time.Date(2026, 11, 30, 17, 0, 0, 0, time.UTC)
	p.ApplicationDeadline = &at

	f := Seed(p, StandardDefaults())
	assert.Equal(t, "2026-11-30T17:00:00Z", f.Snapshot().Deadline)
	assert.Equal(t, &at, f.ToPosting(p.ID).ApplicationDeadline)
}
