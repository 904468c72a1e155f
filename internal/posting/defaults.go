package posting

import "strings"

// Defaults seeds new postings and fills in values a form needs but the user has
// not chosen yet.
type Defaults struct {
	JobType           string            `yaml:"job_type" json:"jobType"`
	SalaryType        string            `yaml:"salary_type" json:"salaryType"`
	Currency          string            `yaml:"currency" json:"currency"`
	ApplicationMethod string            `yaml:"application_method" json:"applicationMethod"`
	IsRemote          bool              `yaml:"is_remote" json:"isRemote"`
	Location          string            `yaml:"location" json:"location"`
	CountryCurrencies map[string]string `yaml:"country_currencies" json:"countryCurrencies,omitempty"`
}

// StandardDefaults are used when no defaults file is configured.
func StandardDefaults() Defaults {
	return Defaults{
		JobType:           "full-time",
		SalaryType:        SalaryRange,
		Currency:          "USD",
		ApplicationMethod: MethodPlatform,
	}
}

// CurrencyFor returns the currency configured for an ISO country code, falling
// back to the default currency.
func (d Defaults) CurrencyFor(country string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country != "" {
		if c, ok := d.CountryCurrencies[country]; ok && c != "" {
			return c
		}
	}
	return d.Currency
}

// Normalize fills empty settings from StandardDefaults.
func (d Defaults) Normalize() Defaults {
	std := StandardDefaults()
	if d.JobType == "" {
		d.JobType = std.JobType
	}
	if d.SalaryType == "" {
		d.SalaryType = std.SalaryType
	}
	if d.Currency == "" {
		d.Currency = std.Currency
	}
	if d.ApplicationMethod == "" {
		d.ApplicationMethod = std.ApplicationMethod
	}
	return d
}
