package geoip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolverWithoutPath(t *testing.T) {
	r, err := NewResolver("  ")
	require.NoError(t, err)
	assert.Nil(t, r)

	_, err = r.CountryCode("8.8.8.8")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, r.Close())
}

func TestNewResolverMissingFile(t *testing.T) {
	_, err := NewResolver(t.TempDir() + "/missing.mmdb")
	assert.Error(t, err)
}

func TestStatic(t *testing.T) {
	var r CountryResolver = Static("DE")
	code, err := r.CountryCode("203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "DE", code)
}
