package storage

import (
	"context"
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logx "recur/pkg/logx"
)

func openMemFile(t *testing.T, fs afero.Fs, path string) Store {
	t.Helper()
	st, err := Open(fs, Config{Path: path}, logx.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	st := openMemFile(t, fs, ".state.json")

	want := State{LastRun: LastRun{
		"backup":           1_700_000_000,
		"update":           0,
		"weird name / ünï": 42,
		"max":              math.MaxUint64,
	}}
	require.NoError(t, st.Save(ctx, want))

	got := openMemFile(t, fs, ".state.json").Load(ctx)
	assert.Equal(t, want, got)

	ok, err := afero.Exists(fs, ".state.json.tmp")
	require.NoError(t, err)
	assert.False(t, ok, "temp file must not survive a successful save")
}

func TestFileStoreDocumentShape(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	st := openMemFile(t, fs, "state/.state.json")
	require.NoError(t, st.Save(context.Background(), State{LastRun: LastRun{"a": 7}}))

	b, err := afero.ReadFile(fs, "state/.state.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_run":{"a":7}}`, string(b))
}

func TestFileStoreSaveNilMap(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	st := openMemFile(t, fs, ".state.json")
	require.NoError(t, st.Save(context.Background(), State{}))

	b, err := afero.ReadFile(fs, ".state.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_run":{}}`, string(b))
}

func TestFileStoreOverwrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	st := openMemFile(t, fs, ".state.json")

	require.NoError(t, st.Save(ctx, State{LastRun: LastRun{"a": 1, "b": 2}}))
	require.NoError(t, st.Save(ctx, State{LastRun: LastRun{"a": 3}}))
	assert.Equal(t, State{LastRun: LastRun{"a": 3}}, st.Load(ctx))
}

func TestFileStoreLoadFallsBackToEmpty(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{name: "garbage", body: "not json at all"},
		{name: "truncated", body: `{"last_run":{"a":1`},
		{name: "negative timestamp", body: `{"last_run":{"a":-5}}`},
		{name: "string timestamp", body: `{"last_run":{"a":"yesterday"}}`},
		{name: "null map", body: `{"last_run":null}`},
		{name: "empty object", body: `{}`},
		{name: "empty file", body: ``},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, ".state.json", []byte(tt.body), 0o644))
			got := openMemFile(t, fs, ".state.json").Load(context.Background())
			require.NotNil(t, got.LastRun)
			assert.Empty(t, got.LastRun)
		})
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	t.Parallel()
	got := openMemFile(t, afero.NewMemMapFs(), ".state.json").Load(context.Background())
	require.NotNil(t, got.LastRun)
	assert.Empty(t, got.LastRun)
}

func TestFileStoreSaveFailure(t *testing.T) {
	t.Parallel()
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	st := openMemFile(t, fs, ".state.json")
	assert.Error(t, st.Save(context.Background(), State{LastRun: LastRun{"a": 1}}))
}

func TestLastRunHelpers(t *testing.T) {
	t.Parallel()
	m := LastRun{"a": 1}
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), v)
	_, ok = m.Get("b")
	assert.False(t, ok)

	c := m.Clone()
	c["a"] = 2
	assert.Equal(t, uint64(1), m["a"])
	assert.NotNil(t, LastRun(nil).Clone())
}
