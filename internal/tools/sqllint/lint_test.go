package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodSource = `package q

const cols = ` + "`id, title`" + `

const QOne = ` + "`--sql 186303d3-d873-468d-9e0c-50d51d244430\nselect `" + ` + cols + ` + "` from job_postings;`" + `
`

func TestLintAcceptsMarkedStatements(t *testing.T) {
	l := newLinter()
	require.NoError(t, l.lintSource("good.go", goodSource))
	assert.Empty(t, l.violations)
}

func TestLintFlagsMissingMarker(t *testing.T) {
	src := "package q\n\nconst QBad = `select 1 from job_postings`\n"
	l := newLinter()
	require.NoError(t, l.lintSource("bad.go", src))
	require.Len(t, l.violations, 1)
	assert.Equal(t, "QBad", l.violations[0].name)
	assert.Equal(t, 3, l.violations[0].line)
}

func TestLintFlagsUnmarkedConcatenation(t *testing.T) {
	src := "package q\n\nconst cols = `id`\n\nconst QBad = `select ` + cols + ` from t`\n"
	l := newLinter()
	require.NoError(t, l.lintSource("concat.go", src))
	require.Len(t, l.violations, 1)
	assert.Equal(t, "QBad", l.violations[0].name)
}

func TestLintFlagsDuplicateMarkers(t *testing.T) {
	l := newLinter()
	require.NoError(t, l.lintSource("a.go", goodSource))
	require.NoError(t, l.lintSource("b.go", goodSource))
	require.Len(t, l.violations, 1)
	assert.Contains(t, l.violations[0].message, "duplicate marker")
	assert.Equal(t, "b.go", l.violations[0].file)
}

func TestRunOnInlineQueries(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"../../sqlinline"}, &stderr)
	assert.Equal(t, 0, code, stderr.String())
}
