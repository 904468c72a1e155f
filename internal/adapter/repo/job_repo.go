package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"jobeditor/internal/domain"
	"jobeditor/internal/infra"
	"jobeditor/internal/sqlinline"
)

// JobRepositoryPG implements domain.JobRepository on PostgreSQL.
type JobRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewJobRepository creates a job repository running statements through sql.
func NewJobRepository(sql infra.SQLExecutor) *JobRepositoryPG {
	return &JobRepositoryPG{sql: sql}
}

// GetJob fetches a posting by id.
func (r *JobRepositoryPG) GetJob(ctx context.Context, jobID string) (*domain.JobPosting, error) {
	job, err := scanJob(r.sql.QueryRow(ctx, sqlinline.QSelectJobPosting, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select job posting: %w", err)
	}
	return job, nil
}

// ReplaceJob overwrites every editable field of the employer's posting. An
// empty jobID inserts a new posting instead.
func (r *JobRepositoryPG) ReplaceJob(ctx context.Context, cred domain.Credential, jobID string, p domain.JobPosting) (*domain.JobPosting, error) {
	if cred.EmployerID == "" {
		return nil, domain.ErrUnauthorized
	}
	questions, err := json.Marshal(nonNilQuestions(p.ScreeningQuestions))
	if err != nil {
		return nil, fmt.Errorf("encode screening questions: %w", err)
	}

	if jobID == "" {
		job, err := scanJob(r.sql.QueryRow(ctx, sqlinline.QInsertJobPosting,
			cred.EmployerID, p.Title, p.Location, string(p.JobType), p.IsRemote,
			string(p.SalaryType), p.SalaryAmount, p.SalaryMin, p.SalaryMax, p.SalaryCurrency, p.SalaryMessage,
			p.ApplicationDeadline, p.Description, nonNil(p.Skills), nonNil(p.Requirements), questions,
			string(p.ApplicationMethod), p.ApplicationURL, p.ApplicationEmail,
		))
		if err != nil {
			return nil, fmt.Errorf("insert job posting: %w", err)
		}
		return job, nil
	}

	job, err := scanJob(r.sql.QueryRow(ctx, sqlinline.QReplaceJobPosting,
		jobID, cred.EmployerID, p.Title, p.Location, string(p.JobType), p.IsRemote,
		string(p.SalaryType), p.SalaryAmount, p.SalaryMin, p.SalaryMax, p.SalaryCurrency, p.SalaryMessage,
		p.ApplicationDeadline, p.Description, nonNil(p.Skills), nonNil(p.Requirements), questions,
		string(p.ApplicationMethod), p.ApplicationURL, p.ApplicationEmail,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missingOrForeign(ctx, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("replace job posting: %w", err)
	}
	return job, nil
}

// missingOrForeign tells a deleted posting apart from one owned by someone else.
func (r *JobRepositoryPG) missingOrForeign(ctx context.Context, jobID string) error {
	var owner string
	err := r.sql.QueryRow(ctx, sqlinline.QJobPostingOwner, jobID).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select job owner: %w", err)
	}
	return domain.ErrForbidden
}

func scanJob(row pgx.Row) (*domain.JobPosting, error) {
	var (
		job       domain.JobPosting
		jobType   string
		salary    string
		method    string
		questions []byte
	)
	if err := row.Scan(
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Location,
		&jobType,
		&job.IsRemote,
		&salary,
		&job.SalaryAmount,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.SalaryCurrency,
		&job.SalaryMessage,
		&job.ApplicationDeadline,
		&job.Description,
		&job.Skills,
		&job.Requirements,
		&questions,
		&method,
		&job.ApplicationURL,
		&job.ApplicationEmail,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	job.JobType = domain.JobType(jobType)
	job.SalaryType = domain.SalaryType(salary)
	job.ApplicationMethod = domain.ApplicationMethod(method)
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &job.ScreeningQuestions); err != nil {
			return nil, fmt.Errorf("decode screening questions: %w", err)
		}
	}
	return &job, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilQuestions(in []domain.ScreeningQuestion) []domain.ScreeningQuestion {
	if in == nil {
		return []domain.ScreeningQuestion{}
	}
	return in
}
