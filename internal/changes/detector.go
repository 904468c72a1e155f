// Package changes computes the human readable summary shown to an employer
// before an edited posting is saved.
//
// The list is rendered verbatim in the confirmation prompt, so both the order of
// entries and their wording are fixed:
//
//	Title: "<old>" → "<new>"
//	Location: "<old>" → "<new>"
//	Job type: <Old> → <New>
//	Remote: Yes → No
//	Description updated
//	Skills changed
//	Requirements changed
//	Salary information updated
//	Application method updated
//	Screening questions (<n>) | Screening questions removed
//	Application deadline changed
package changes

import (
	"fmt"
	"slices"

	"jobeditor/internal/posting"
)

const (
	DescriptionUpdated  = "Description updated"
	SkillsChanged       = "Skills changed"
	RequirementsChanged = "Requirements changed"
	SalaryUpdated       = "Salary information updated"
	MethodUpdated       = "Application method updated"
	QuestionsRemoved    = "Screening questions removed"
	DeadlineChanged     = "Application deadline changed"
)

// Detect compares the frozen baseline with the current draft. An empty result
// means nothing the user can see has changed.
func Detect(baseline, current posting.Draft) []string {
	changes := []string{}

	if baseline.Title != current.Title {
		changes = append(changes, fmt.Sprintf("Title: \"%s\" → \"%s\"", baseline.Title, current.Title))
	}
	if baseline.Location != current.Location {
		changes = append(changes, fmt.Sprintf("Location: \"%s\" → \"%s\"", baseline.Location, current.Location))
	}
	oldType, newType := posting.DisplayJobType(baseline.JobType), posting.DisplayJobType(current.JobType)
	if oldType != newType {
		changes = append(changes, fmt.Sprintf("Job type: %s → %s", oldType, newType))
	}
	if baseline.IsRemote != current.IsRemote {
		changes = append(changes, fmt.Sprintf("Remote: %s → %s", yesNo(baseline.IsRemote), yesNo(current.IsRemote)))
	}
	if baseline.Description != current.Description {
		changes = append(changes, DescriptionUpdated)
	}
	if !sameSet(baseline.Skills, current.Skills) {
		changes = append(changes, SkillsChanged)
	}
	if !sameSet(baseline.Requirements, current.Requirements) {
		changes = append(changes, RequirementsChanged)
	}
	if salaryChanged(baseline, current) {
		changes = append(changes, SalaryUpdated)
	}
	if methodChanged(baseline, current) {
		changes = append(changes, MethodUpdated)
	}
	if !sameQuestions(baseline.Questions, current.Questions) {
		if n := len(current.Questions); n == 0 {
			changes = append(changes, QuestionsRemoved)
		} else {
			changes = append(changes, fmt.Sprintf("Screening questions (%d)", n))
		}
	}
	if !sameDeadline(baseline.Deadline, current.Deadline) {
		changes = append(changes, DeadlineChanged)
	}
	return changes
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// sameSet reports whether two lists hold the same items ignoring order.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

// salaryChanged checks the shape and the fields that belong to the current
// shape; inactive fields are cleared by the form and never compared.
func salaryChanged(a, b posting.Draft) bool {
	if a.SalaryType != b.SalaryType {
		return true
	}
	switch b.SalaryType {
	case posting.SalaryFixed:
		return a.SalaryAmount != b.SalaryAmount || a.SalaryCurrency != b.SalaryCurrency
	case posting.SalaryRange:
		return a.SalaryMin != b.SalaryMin || a.SalaryMax != b.SalaryMax || a.SalaryCurrency != b.SalaryCurrency
	case posting.SalaryCustom:
		return a.SalaryMessage != b.SalaryMessage
	}
	return false
}

func methodChanged(a, b posting.Draft) bool {
	if a.ApplicationMethod != b.ApplicationMethod {
		return true
	}
	switch b.ApplicationMethod {
	case posting.MethodWebsite:
		return a.ApplicationURL != b.ApplicationURL
	case posting.MethodEmail:
		return a.ApplicationEmail != b.ApplicationEmail
	}
	return false
}

// sameQuestions compares question content in order. Ids are generated per
// session and are not part of what the applicant sees.
func sameQuestions(a, b []posting.Question) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.Text != y.Text || x.AnswerType != y.AnswerType || x.Required != y.Required ||
			x.AutoFilter != y.AutoFilter || !slices.Equal(x.Options, y.Options) {
			return false
		}
	}
	return true
}

func sameDeadline(a, b string) bool {
	x, y := posting.ParseDeadline(a), posting.ParseDeadline(b)
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	return x.Unix() == y.Unix()
}
