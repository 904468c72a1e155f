package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobeditor/internal/posting"
)

func TestLoadMissingFileUsesStandardDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "defaults.yaml"), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, posting.StandardDefaults(), p.Current())
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
job_type: contract
currency: eur
is_remote: true
country_currencies:
  gb: gbp
`), 0o644))

	p, err := Load(path, zerolog.Nop())
	require.NoError(t, err)
	d := p.Current()
	assert.Equal(t, "contract", d.JobType)
	assert.Equal(t, posting.SalaryRange, d.SalaryType, "unset values fall back")
	assert.True(t, d.IsRemote)
	assert.Equal(t, "GBP", d.CurrencyFor("gb"))
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("job_type: [unterminated"), 0o644))

	_, err := Load(path, zerolog.Nop())
	assert.Error(t, err)
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "defaults.yaml")
	p, err := Load(path, zerolog.Nop())
	require.NoError(t, err)

	d := posting.StandardDefaults()
	d.Location = "Remote"
	require.NoError(t, p.Save(d))
	assert.Equal(t, "Remote", p.Current().Location)

	reloaded, err := Load(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, p.Current(), reloaded.Current())
}

func TestCurrentReturnsCopy(t *testing.T) {
	p, err := Load("", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, p.Save(posting.Defaults{CountryCurrencies: map[string]string{"de": "eur"}}))

	d := p.Current()
	d.CountryCurrencies["DE"] = "USD"
	assert.Equal(t, "EUR", p.Current().CountryCurrencies["DE"])
}

func TestWatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("currency: USD\n"), 0o644))
	p, err := Load(path, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, p.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte("currency: CHF\n"), 0o644))
	assert.Eventually(t, func() bool {
		return p.Current().Currency == "CHF"
	}, 5*time.Second, 20*time.Millisecond)
}
