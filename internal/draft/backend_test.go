package draft

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseBackend checks the behaviour every Backend must share.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()
	a, n := KeyFor("job-1"), NewKeyFor("emp-1")

	_, err := b.Get(ctx, a)
	require.ErrorIs(t, err, ErrNoDraft)
	assert.Nil(t, NewStore(b).Load(ctx, a))

	keys, err := b.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, b.Put(ctx, n, []byte(`{"title":"Cook"}`)))
	require.NoError(t, b.Put(ctx, a, []byte(`{"title":"first"}`)))
	require.NoError(t, b.Put(ctx, a, []byte(`{"title":"second"}`)))

	got, err := b.Get(ctx, a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"second"}`, string(got))

	keys, err = b.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-draft-job-1", "job-draft-new-emp-1"}, keys)

	require.NoError(t, b.Delete(ctx, a))
	require.NoError(t, b.Delete(ctx, a), "deleting an empty slot succeeds")
	_, err = b.Get(ctx, a)
	assert.ErrorIs(t, err, ErrNoDraft)

	keys, err = b.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-draft-new-emp-1"}, keys)
}

func TestBackendContract(t *testing.T) {
	cases := []struct {
		name string
		open func(t *testing.T) Backend
	}{
		{"memory", func(t *testing.T) Backend { return NewMemoryBackend() }},
		{"file", func(t *testing.T) Backend {
			fb, err := NewFileBackend(filepath.Join(t.TempDir(), "drafts"))
			require.NoError(t, err)
			return fb
		}},
		{"sqlite", func(t *testing.T) Backend {
			sb, err := OpenSQLite(filepath.Join(t.TempDir(), "drafts.db"))
			require.NoError(t, err)
			t.Cleanup(func() { sb.Close() })
			return sb
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exerciseBackend(t, tc.open(t))
		})
	}
}
