package domain

import "time"

// JobType enumerates the employment types stored on a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeFreelance  JobType = "freelance"
	JobTypeInternship JobType = "internship"
)

// SalaryType enumerates the mutually exclusive salary shapes.
type SalaryType string

const (
	SalaryTypeFixed  SalaryType = "fixed"
	SalaryTypeRange  SalaryType = "range"
	SalaryTypeCustom SalaryType = "custom"
)

// ApplicationMethod enumerates how candidates apply to a posting.
type ApplicationMethod string

const (
	ApplicationMethodPlatform ApplicationMethod = "platform"
	ApplicationMethodWebsite  ApplicationMethod = "website"
	ApplicationMethodEmail    ApplicationMethod = "email"
)

// ScreeningQuestion is asked to every applicant before submission.
type ScreeningQuestion struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	AnswerType string   `json:"answer_type"`
	Options    []string `json:"options"`
	Required   bool     `json:"required"`
	AutoFilter bool     `json:"auto_filter"`
}

// JobPosting is the persisted listing. Nullable columns are pointers so that
// fields belonging to an inactive salary shape or application method are stored
// as NULL rather than stale values.
type JobPosting struct {
	ID                  string              `json:"id"`
	EmployerID          string              `json:"employer_id"`
	Title               string              `json:"title"`
	Location            string              `json:"location"`
	JobType             JobType             `json:"job_type"`
	IsRemote            bool                `json:"is_remote"`
	SalaryType          SalaryType          `json:"salary_type"`
	SalaryAmount        *float64            `json:"salary_amount"`
	SalaryMin           *float64            `json:"salary_min"`
	SalaryMax           *float64            `json:"salary_max"`
	SalaryCurrency      *string             `json:"salary_currency"`
	SalaryMessage       *string             `json:"salary_message"`
	ApplicationDeadline *time.Time          `json:"application_deadline"`
	Description         string              `json:"description"`
	Skills              []string            `json:"skills"`
	Requirements        []string            `json:"requirements"`
	ScreeningQuestions  []ScreeningQuestion `json:"screening_questions"`
	ApplicationMethod   ApplicationMethod   `json:"application_method"`
	ApplicationURL      *string             `json:"application_url"`
	ApplicationEmail    *string             `json:"application_email"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}
