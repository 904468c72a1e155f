package posting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobeditor/internal/domain"
)

// Field names accepted by Form.Set.
type Field string

const (
	FieldTitle             Field = "title"
	FieldLocation          Field = "location"
	FieldJobType           Field = "jobType"
	FieldIsRemote          Field = "isRemote"
	FieldSalaryType        Field = "salaryType"
	FieldSalaryAmount      Field = "salaryAmount"
	FieldSalaryMin         Field = "salaryMin"
	FieldSalaryMax         Field = "salaryMax"
	FieldSalaryCurrency    Field = "salaryCurrency"
	FieldSalaryMessage     Field = "salaryMessage"
	FieldDeadline          Field = "deadline"
	FieldDescription       Field = "description"
	FieldApplicationMethod Field = "applicationMethod"
	FieldApplicationURL    Field = "applicationUrl"
	FieldApplicationEmail  Field = "applicationEmail"
	FieldSkills            Field = "skills"
	FieldRequirements      Field = "requirements"
)

// ErrQuestionNotFound is returned when a question id is not part of the form.
var ErrQuestionNotFound = errors.New("screening question not found")

// Form is the mutable model behind one edit session. It is not safe for
// concurrent use; callers serialize access.
type Form struct {
	draft    Draft
	defaults Defaults
	newID    func() string
}

// Seed builds a form from a persisted posting. A nil posting seeds from defaults.
func Seed(p *domain.JobPosting, defaults Defaults) *Form {
	if p == nil {
		return SeedDefaults(defaults)
	}
	f := newForm(defaults)
	d := Draft{
		Title:             p.Title,
		Location:          p.Location,
		JobType:           FormJobType(p.JobType),
		IsRemote:          p.IsRemote,
		SalaryType:        formSalaryType(p.SalaryType),
		SalaryAmount:      deref(p.SalaryAmount),
		SalaryMin:         deref(p.SalaryMin),
		SalaryMax:         deref(p.SalaryMax),
		SalaryCurrency:    derefString(p.SalaryCurrency),
		SalaryMessage:     derefString(p.SalaryMessage),
		Deadline:          FormatDeadline(p.ApplicationDeadline),
		Description:       p.Description,
		Skills:            cloneStrings(p.Skills),
		Requirements:      cloneStrings(p.Requirements),
		ApplicationMethod: formMethod(p.ApplicationMethod),
		ApplicationURL:    derefString(p.ApplicationURL),
		ApplicationEmail:  derefString(p.ApplicationEmail),
	}
	for _, q := range p.ScreeningQuestions {
		id := q.ID
		if id == "" {
			id = f.newID()
		}
		d.Questions = append(d.Questions, Question{
			ID:         id,
			Text:       q.Text,
			AnswerType: q.AnswerType,
			Options:    cloneStrings(q.Options),
			Required:   q.Required,
			AutoFilter: q.AutoFilter,
		})
	}
	f.draft = d
	clearInactiveSalary(&f.draft)
	return f
}

// SeedDefaults builds the form of a brand new posting.
func SeedDefaults(defaults Defaults) *Form {
	f := newForm(defaults)
	f.draft = Draft{
		Location:          f.defaults.Location,
		JobType:           f.defaults.JobType,
		IsRemote:          f.defaults.IsRemote,
		SalaryType:        f.defaults.SalaryType,
		ApplicationMethod: f.defaults.ApplicationMethod,
	}
	if salaryNeedsCurrency(f.draft.SalaryType) {
		f.draft.SalaryCurrency = f.defaults.Currency
	}
	return f
}

// FromDraft wraps a previously stored draft.
func FromDraft(d Draft, defaults Defaults) *Form {
	f := newForm(defaults)
	f.Restore(d)
	return f
}

func newForm(defaults Defaults) *Form {
	return &Form{defaults: defaults.Normalize(), newID: uuid.NewString}
}

// Snapshot returns a deep copy of the current draft.
func (f *Form) Snapshot() Draft {
	return f.draft.Clone()
}

// Restore replaces the whole draft. Values of salary shapes other than the
// active one are dropped.
func (f *Form) Restore(d Draft) {
	f.draft = d.Clone()
	clearInactiveSalary(&f.draft)
}

// Set updates one scalar field. Values arrive from JSON so strings, bools and
// numbers are all accepted where they can be coerced.
func (f *Form) Set(field Field, value any) error {
	switch field {
	case FieldTitle, FieldLocation, FieldJobType, FieldSalaryCurrency, FieldSalaryMessage,
		FieldDeadline, FieldDescription, FieldApplicationMethod, FieldApplicationURL,
		FieldApplicationEmail, FieldSalaryType:
		s, err := asString(field, value)
		if err != nil {
			return err
		}
		f.setString(field, s)
	case FieldIsRemote:
		b, err := asBool(field, value)
		if err != nil {
			return err
		}
		f.draft.IsRemote = b
	case FieldSalaryAmount, FieldSalaryMin, FieldSalaryMax:
		n, err := asNumber(field, value)
		if err != nil {
			return err
		}
		switch field {
		case FieldSalaryAmount:
			f.draft.SalaryAmount = n
		case FieldSalaryMin:
			f.draft.SalaryMin = n
		default:
			f.draft.SalaryMax = n
		}
	default:
		return domain.FieldError{Field: string(field), Message: "unknown field"}
	}
	return nil
}

func (f *Form) setString(field Field, s string) {
	d := &f.draft
	switch field {
	case FieldTitle:
		d.Title = s
	case FieldLocation:
		d.Location = s
	case FieldJobType:
		d.JobType = s
	case FieldSalaryType:
		f.switchSalaryType(s)
	case FieldSalaryCurrency:
		d.SalaryCurrency = s
	case FieldSalaryMessage:
		d.SalaryMessage = s
	case FieldDeadline:
		d.Deadline = s
	case FieldDescription:
		d.Description = s
	case FieldApplicationMethod:
		d.ApplicationMethod = s
	case FieldApplicationURL:
		d.ApplicationURL = s
	case FieldApplicationEmail:
		d.ApplicationEmail = s
	}
}

// switchSalaryType activates a salary shape and clears every field that does
// not belong to it.
func (f *Form) switchSalaryType(next string) {
	d := &f.draft
	if d.SalaryType == next {
		return
	}
	d.SalaryType = next
	clearInactiveSalary(d)
	if salaryNeedsCurrency(next) && d.SalaryCurrency == "" {
		d.SalaryCurrency = f.defaults.Currency
	}
}

// clearInactiveSalary zeroes every salary field the active shape does not use.
func clearInactiveSalary(d *Draft) {
	if d.SalaryType != SalaryFixed {
		d.SalaryAmount = 0
	}
	if d.SalaryType != SalaryRange {
		d.SalaryMin = 0
		d.SalaryMax = 0
	}
	if d.SalaryType != SalaryCustom {
		d.SalaryMessage = ""
	}
	if !salaryNeedsCurrency(d.SalaryType) {
		d.SalaryCurrency = ""
	}
}

// AddToCollection appends item to skills or requirements. Blank and duplicate
// items are ignored; the result reports whether the form changed.
func (f *Form) AddToCollection(field Field, item string) (bool, error) {
	list, err := f.collection(field)
	if err != nil {
		return false, err
	}
	item = strings.TrimSpace(item)
	if item == "" || contains(*list, item) {
		return false, nil
	}
	*list = append(*list, item)
	return true, nil
}

// RemoveFromCollection deletes item from skills or requirements.
func (f *Form) RemoveFromCollection(field Field, item string) (bool, error) {
	list, err := f.collection(field)
	if err != nil {
		return false, err
	}
	item = strings.TrimSpace(item)
	for i, v := range *list {
		if v == item {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *Form) collection(field Field) (*[]string, error) {
	switch field {
	case FieldSkills:
		return &f.draft.Skills, nil
	case FieldRequirements:
		return &f.draft.Requirements, nil
	}
	return nil, domain.FieldError{Field: string(field), Message: "not a collection"}
}

// AddSkill is AddToCollection for skills.
func (f *Form) AddSkill(skill string) bool {
	ok, _ := f.AddToCollection(FieldSkills, skill)
	return ok
}

// RemoveSkill is RemoveFromCollection for skills.
func (f *Form) RemoveSkill(skill string) bool {
	ok, _ := f.RemoveFromCollection(FieldSkills, skill)
	return ok
}

// AddRequirement is AddToCollection for requirements.
func (f *Form) AddRequirement(req string) bool {
	ok, _ := f.AddToCollection(FieldRequirements, req)
	return ok
}

// RemoveRequirement is RemoveFromCollection for requirements.
func (f *Form) RemoveRequirement(req string) bool {
	ok, _ := f.RemoveFromCollection(FieldRequirements, req)
	return ok
}

// AddQuestion appends a screening question under a freshly generated id and
// returns that id. Questions with identical text are allowed.
func (f *Form) AddQuestion(q Question) string {
	q.ID = f.newID()
	q.Options = dedupe(q.Options)
	f.draft.Questions = append(f.draft.Questions, q)
	return q.ID
}

// UpdateQuestion replaces the question with the same id.
func (f *Form) UpdateQuestion(q Question) error {
	idx := f.questionIndex(q.ID)
	if idx < 0 {
		return ErrQuestionNotFound
	}
	q.Options = dedupe(q.Options)
	f.draft.Questions[idx] = q
	return nil
}

// RemoveQuestion deletes a question by id.
func (f *Form) RemoveQuestion(id string) bool {
	idx := f.questionIndex(id)
	if idx < 0 {
		return false
	}
	qs := f.draft.Questions
	f.draft.Questions = append(qs[:idx:idx], qs[idx+1:]...)
	return true
}

// AddOption appends an answer option to a question; duplicates are ignored.
func (f *Form) AddOption(questionID, option string) (bool, error) {
	idx := f.questionIndex(questionID)
	if idx < 0 {
		return false, ErrQuestionNotFound
	}
	option = strings.TrimSpace(option)
	q := &f.draft.Questions[idx]
	if option == "" || contains(q.Options, option) {
		return false, nil
	}
	q.Options = append(q.Options, option)
	return true, nil
}

// RemoveOption deletes an answer option from a question.
func (f *Form) RemoveOption(questionID, option string) (bool, error) {
	idx := f.questionIndex(questionID)
	if idx < 0 {
		return false, ErrQuestionNotFound
	}
	q := &f.draft.Questions[idx]
	for i, v := range q.Options {
		if v == option {
			q.Options = append(q.Options[:i:i], q.Options[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *Form) questionIndex(id string) int {
	for i, q := range f.draft.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func asString(field Field, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	}
	return "", domain.FieldError{Field: string(field), Message: "must be a string"}
}

func asBool(field Field, v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b, nil
		}
	}
	return false, domain.FieldError{Field: string(field), Message: "must be true or false"}
}

func asNumber(field Field, v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		if n, err := t.Float64(); err == nil {
			return n, nil
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, nil
		}
	}
	return 0, domain.FieldError{Field: string(field), Message: fmt.Sprintf("must be a number, got %v", v)}
}

// FormatDeadline renders a stored deadline for the form: a plain date when the
// timestamp is midnight UTC, RFC 3339 otherwise.
func FormatDeadline(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(time.DateOnly)
	}
	return u.Format(time.RFC3339Nano)
}

// ParseDeadline parses a form deadline. Empty or invalid input yields nil.
func ParseDeadline(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
