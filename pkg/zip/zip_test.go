package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveKeepsEntries(t *testing.T) {
	data, err := Archive([]Entry{
		{Name: "job-draft-1.json", Data: []byte(`{"title":"a"}`)},
		{Name: "job-draft-new.json", Data: []byte(`{"title":"b"}`)},
	})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "job-draft-1.json", zr.File[0].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"b"}`, string(body))
}

func TestArchiveEmpty(t *testing.T) {
	data, err := Archive(nil)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, zr.File)
}
