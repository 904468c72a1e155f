// Package posting holds the editable form model of a job posting: the draft
// representation, its vocabulary mapping to and from the persisted posting, and
// the structural validation run before submit.
package posting

// Question is a screening question as edited in the form.
type Question struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	AnswerType string   `json:"answerType"`
	Options    []string `json:"options"`
	Required   bool     `json:"required"`
	AutoFilter bool     `json:"autoFilter"`
}

// Draft is the working copy of a posting's editable fields in form vocabulary.
// Zero numbers and empty strings mean "unset".
type Draft struct {
	Title             string     `json:"title"`
	Location          string     `json:"location"`
	JobType           string     `json:"jobType"`
	IsRemote          bool       `json:"isRemote"`
	SalaryType        string     `json:"salaryType"`
	SalaryAmount      float64    `json:"salaryAmount"`
	SalaryMin         float64    `json:"salaryMin"`
	SalaryMax         float64    `json:"salaryMax"`
	SalaryCurrency    string     `json:"salaryCurrency"`
	SalaryMessage     string     `json:"salaryMessage"`
	Deadline          string     `json:"deadline"`
	Description       string     `json:"description"`
	Skills            []string   `json:"skills"`
	Requirements      []string   `json:"requirements"`
	Questions         []Question `json:"questions"`
	ApplicationMethod string     `json:"applicationMethod"`
	ApplicationURL    string     `json:"applicationUrl"`
	ApplicationEmail  string     `json:"applicationEmail"`
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	out := d
	out.Skills = cloneStrings(d.Skills)
	out.Requirements = cloneStrings(d.Requirements)
	if d.Questions != nil {
		out.Questions = make([]Question, len(d.Questions))
		for i, q := range d.Questions {
			q.Options = cloneStrings(q.Options)
			out.Questions[i] = q
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Salary shapes in form vocabulary.
const (
	SalaryFixed  = "fixed"
	SalaryRange  = "range"
	SalaryCustom = "custom"
)

// Application methods in form vocabulary.
const (
	MethodPlatform = "platform"
	MethodWebsite  = "website"
	MethodEmail    = "email"
)

func salaryNeedsCurrency(shape string) bool {
	return shape == SalaryFixed || shape == SalaryRange
}
