package posting

import (
	"regexp"
	"strings"

	"jobeditor/internal/domain"
)

var (
	urlPattern   = regexp.MustCompile(`(?i)^https?://[^\s/$.?#][^\s]*$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateForSubmit checks the structural rules a posting must satisfy before it
// can be saved. Every violated rule is reported; nil means the form is valid.
func (f *Form) ValidateForSubmit() []domain.FieldError {
	return Validate(f.draft)
}

// Validate applies the submit rules to a draft.
func Validate(d Draft) []domain.FieldError {
	var errs []domain.FieldError
	add := func(field Field, msg string) {
		errs = append(errs, domain.FieldError{Field: string(field), Message: msg})
	}

	if strings.TrimSpace(d.Title) == "" {
		add(FieldTitle, "Job title is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		add(FieldDescription, "Job description is required")
	}
	if strings.TrimSpace(d.JobType) == "" {
		add(FieldJobType, "Job type is required")
	}

	switch d.ApplicationMethod {
	case MethodWebsite:
		if !urlPattern.MatchString(strings.TrimSpace(d.ApplicationURL)) {
			add(FieldApplicationURL, "Enter a valid URL starting with http:// or https://")
		}
	case MethodEmail:
		if !emailPattern.MatchString(strings.TrimSpace(d.ApplicationEmail)) {
			add(FieldApplicationEmail, "Enter a valid email address")
		}
	}

	switch d.SalaryType {
	case SalaryRange:
		if d.SalaryMin <= 0 || d.SalaryMax <= 0 {
			add(FieldSalaryMin, "Minimum and maximum salary must be greater than 0")
		} else if d.SalaryMin > d.SalaryMax {
			add(FieldSalaryMax, "Minimum salary cannot exceed maximum salary")
		}
	case SalaryFixed:
		if d.SalaryAmount <= 0 {
			add(FieldSalaryAmount, "Salary amount must be greater than 0")
		}
	}
	return errs
}

// RequiredForPersist is the last-line guard run right before a write: the
// fields without which a posting cannot be published at all.
func RequiredForPersist(p domain.JobPosting) []domain.FieldError {
	var errs []domain.FieldError
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, domain.FieldError{Field: string(FieldTitle), Message: "Job title is required"})
	}
	if strings.TrimSpace(p.Description) == "" {
		errs = append(errs, domain.FieldError{Field: string(FieldDescription), Message: "Job description is required"})
	}
	if strings.TrimSpace(p.Location) == "" {
		errs = append(errs, domain.FieldError{Field: string(FieldLocation), Message: "Location is required"})
	}
	return errs
}
