package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobeditor/internal/domain"
	"jobeditor/internal/sqlinline"
	"jobeditor/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func postingRow(id, employer string) testutil.Row {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)
	return testutil.NewRow(func(dest ...any) error {
		*dest[0].(*string) = id
		*dest[1].(*string) = employer
		*dest[2].(*string) = "Backend Engineer"
		*dest[3].(*string) = "Berlin"
		*dest[4].(*string) = "full_time"
		*dest[5].(*bool) = true
		*dest[6].(*string) = "range"
		*dest[7].(**float64) = nil
		*dest[8].(**float64) = ptr(60000.0)
		*dest[9].(**float64) = ptr(80000.0)
		*dest[10].(**string) = ptr("EUR")
		*dest[11].(**string) = nil
		*dest[12].(**time.Time) = &deadline
		*dest[13].(*string) = "Build APIs."
		*dest[14].(*[]string) = []string{"Go", "SQL"}
		*dest[15].(*[]string) = []string{}
		*dest[16].(*[]byte) = []byte(`[{"id":"q-1","text":"Work permit?","answer_type":"yes_no","options":["Yes","No"],"required":true,"auto_filter":false}]`)
		*dest[17].(*string) = "platform"
		*dest[18].(**string) = nil
		*dest[19].(**string) = nil
		*dest[20].(*time.Time) = created
		*dest[21].(*time.Time) = created
		return nil
	})
}

func TestGetJob(t *testing.T) {
	db := &testutil.FakeSQL{}
	db.QueueRow(postingRow("job-1", "emp-1"))
	r := NewJobRepository(db)

	job, err := r.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobTypeFullTime, job.JobType)
	assert.Equal(t, domain.SalaryTypeRange, job.SalaryType)
	assert.Equal(t, 60000.0, *job.SalaryMin)
	assert.Nil(t, job.SalaryAmount)
	require.Len(t, job.ScreeningQuestions, 1)
	assert.Equal(t, "yes_no", job.ScreeningQuestions[0].AnswerType)

	require.Len(t, db.Calls, 1)
	assert.Equal(t, sqlinline.QSelectJobPosting, db.Calls[0].Query)
	assert.Equal(t, []any{"job-1"}, db.Calls[0].Args)
}

func TestGetJobNotFound(t *testing.T) {
	r := NewJobRepository(&testutil.FakeSQL{})
	_, err := r.GetJob(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceJobScopesToEmployer(t *testing.T) {
	db := &testutil.FakeSQL{}
	db.QueueRow(postingRow("job-1", "emp-1"))
	r := NewJobRepository(db)

	p := domain.JobPosting{Title: "Backend Engineer", JobType: domain.JobTypeFullTime}
	job, err := r.ReplaceJob(context.Background(), domain.Credential{EmployerID: "emp-1"}, "job-1", p)
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)

	require.Len(t, db.Calls, 1)
	call := db.Calls[0]
	assert.Equal(t, sqlinline.QReplaceJobPosting, call.Query)
	assert.Equal(t, "job-1", call.Args[0])
	assert.Equal(t, "emp-1", call.Args[1])
	assert.Equal(t, []string{}, call.Args[14], "nil skills are written as an empty array")
	assert.Equal(t, []byte("[]"), call.Args[16])
}

func TestReplaceJobDistinguishesMissingFromForeign(t *testing.T) {
	db := &testutil.FakeSQL{}
	db.QueueRow(testutil.Row{})
	db.QueueRow(testutil.NewRow(func(dest ...any) error {
		*dest[0].(*string) = "emp-2"
		return nil
	}))
	r := NewJobRepository(db)

	_, err := r.ReplaceJob(context.Background(), domain.Credential{EmployerID: "emp-1"}, "job-1", domain.JobPosting{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	db = &testutil.FakeSQL{}
	r = NewJobRepository(db)
	_, err = r.ReplaceJob(context.Background(), domain.Credential{EmployerID: "emp-1"}, "job-1", domain.JobPosting{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, db.Calls, 2)
}

func TestReplaceJobInsertsNewPosting(t *testing.T) {
	db := &testutil.FakeSQL{}
	db.QueueRow(postingRow("job-9", "emp-1"))
	r := NewJobRepository(db)

	job, err := r.ReplaceJob(context.Background(), domain.Credential{EmployerID: "emp-1"}, "", domain.JobPosting{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "job-9", job.ID)
	assert.Equal(t, sqlinline.QInsertJobPosting, db.Calls[0].Query)
}

func TestReplaceJobRequiresEmployer(t *testing.T) {
	db := &testutil.FakeSQL{}
	_, err := NewJobRepository(db).ReplaceJob(context.Background(), domain.Credential{}, "job-1", domain.JobPosting{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, db.Calls)
}
