package posting

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobeditor/internal/domain"
)

var jobTypeToForm = map[domain.JobType]string{
	domain.JobTypeFullTime:   "full-time",
	domain.JobTypePartTime:   "part-time",
	domain.JobTypeContract:   "contract",
	domain.JobTypeFreelance:  "freelance",
	domain.JobTypeInternship: "internship",
}

var jobTypeFromForm = func() map[string]domain.JobType {
	m := make(map[string]domain.JobType, len(jobTypeToForm))
	for ext, form := range jobTypeToForm {
		m[form] = ext
	}
	return m
}()

var jobTypeDisplay = map[string]string{
	"full-time":  "Full-time",
	"part-time":  "Part-time",
	"contract":   "Contract",
	"freelance":  "Freelance",
	"internship": "Internship",
}

// FormJobType maps a stored job type into form vocabulary. Unknown values pass
// through unchanged so that newer backend values survive an edit.
func FormJobType(t domain.JobType) string {
	if v, ok := jobTypeToForm[t]; ok {
		return v
	}
	return string(t)
}

// ExternalJobType is the inverse of FormJobType.
func ExternalJobType(v string) domain.JobType {
	if t, ok := jobTypeFromForm[v]; ok {
		return t
	}
	return domain.JobType(v)
}

// DisplayJobType returns the label shown in change summaries.
func DisplayJobType(v string) string {
	if label, ok := jobTypeDisplay[v]; ok {
		return label
	}
	if v == "" {
		return ""
	}
	words := strings.NewReplacer("_", " ", "-", " ").Replace(v)
	return cases.Title(language.English).String(words)
}

func formSalaryType(t domain.SalaryType) string {
	return string(t)
}

func externalSalaryType(v string) domain.SalaryType {
	return domain.SalaryType(v)
}

func formMethod(m domain.ApplicationMethod) string {
	return string(m)
}

func externalMethod(v string) domain.ApplicationMethod {
	return domain.ApplicationMethod(v)
}
