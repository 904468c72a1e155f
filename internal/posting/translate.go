package posting

import (
	"strings"

	"jobeditor/internal/domain"
)

// ToPosting translates the form back into the persisted vocabulary. Fields of
// the inactive salary shape and the destination of unused application methods
// are left nil so no stale value reaches storage.
func (f *Form) ToPosting(jobID string) domain.JobPosting {
	return ToPosting(jobID, f.draft)
}

// ToPosting translates a draft into a full replacement payload.
func ToPosting(jobID string, d Draft) domain.JobPosting {
	p := domain.JobPosting{
		ID:                  jobID,
		Title:               strings.TrimSpace(d.Title),
		Location:            strings.TrimSpace(d.Location),
		JobType:             ExternalJobType(d.JobType),
		IsRemote:            d.IsRemote,
		SalaryType:          externalSalaryType(d.SalaryType),
		ApplicationDeadline: ParseDeadline(d.Deadline),
		Description:         d.Description,
		Skills:              nonNil(d.Skills),
		Requirements:        nonNil(d.Requirements),
		ScreeningQuestions:  make([]domain.ScreeningQuestion, 0, len(d.Questions)),
		ApplicationMethod:   externalMethod(d.ApplicationMethod),
	}

	switch d.SalaryType {
	case SalaryFixed:
		p.SalaryAmount = floatPtr(d.SalaryAmount)
		p.SalaryCurrency = stringPtr(d.SalaryCurrency)
	case SalaryRange:
		p.SalaryMin = floatPtr(d.SalaryMin)
		p.SalaryMax = floatPtr(d.SalaryMax)
		p.SalaryCurrency = stringPtr(d.SalaryCurrency)
	case SalaryCustom:
		p.SalaryMessage = stringPtr(d.SalaryMessage)
	}

	switch d.ApplicationMethod {
	case MethodWebsite:
		p.ApplicationURL = stringPtr(strings.TrimSpace(d.ApplicationURL))
	case MethodEmail:
		p.ApplicationEmail = stringPtr(strings.TrimSpace(d.ApplicationEmail))
	}

	for _, q := range d.Questions {
		p.ScreeningQuestions = append(p.ScreeningQuestions, domain.ScreeningQuestion{
			ID:         q.ID,
			Text:       q.Text,
			AnswerType: q.AnswerType,
			Options:    nonNil(q.Options),
			Required:   q.Required,
			AutoFilter: q.AutoFilter,
		})
	}
	return p
}

func nonNil(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func floatPtr(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func stringPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
