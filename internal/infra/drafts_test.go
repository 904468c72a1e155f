package infra

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobeditor/internal/draft"
)

func TestOpenDraftBackend(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		cfg  Config
		want any
	}{
		{"memory", Config{DraftBackend: DraftBackendMemory}, &draft.MemoryBackend{}},
		{"file", Config{DraftBackend: DraftBackendFile, DraftDir: filepath.Join(dir, "drafts")}, &draft.FileBackend{}},
		{"sqlite", Config{DraftBackend: DraftBackendSQLite, DraftSQLitePath: filepath.Join(dir, "drafts.db")}, &draft.SQLiteBackend{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, closeFn, err := OpenDraftBackend(&tc.cfg, nil)
			require.NoError(t, err)
			defer closeFn()
			assert.IsType(t, tc.want, b)

			ctx := context.Background()
			require.NoError(t, b.Put(ctx, "job-draft-7", []byte(`{"title":"x"}`)))
			got, err := b.Get(ctx, "job-draft-7")
			require.NoError(t, err)
			assert.JSONEq(t, `{"title":"x"}`, string(got))
		})
	}
}

func TestOpenDraftBackendErrors(t *testing.T) {
	_, _, err := OpenDraftBackend(&Config{DraftBackend: DraftBackendRedis}, nil)
	assert.Error(t, err)

	_, _, err = OpenDraftBackend(&Config{DraftBackend: "etcd"}, nil)
	assert.Error(t, err)
}
