package handle_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/scopetab/export"
	"go.jacobcolvin.com/scopetab/handle"
)

func saveToString(t *testing.T, tbl *handle.Table, h handle.ID) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trace.tsv")
	require.Equal(t, handle.StatusOK, tbl.Save(h, path))

	data, err := os.ReadFile(path) //nolint:gosec // Test-owned temp path.
	require.NoError(t, err)

	return string(data)
}

func TestTable_CreateAndDestroy(t *testing.T) {
	t.Parallel()

	tbl := handle.NewTable()

	h := tbl.Create()
	assert.NotZero(t, h)

	tbl.Destroy(h)

	// Destroyed handles are no longer usable.
	assert.Zero(t, tbl.ScopeStart(h, "after_destroy"))
	assert.Equal(t, handle.StatusOpenFailed, tbl.Save(h, filepath.Join(t.TempDir(), "t.tsv")))

	// Destroying again is a no-op.
	tbl.Destroy(h)
}

func TestTable_ScopeLifecycle(t *testing.T) {
	t.Parallel()

	tbl := handle.NewTable()
	h := tbl.Create()

	s := tbl.ScopeStart(h, "test_range")
	require.NotZero(t, s)

	tbl.ScopeEnd(h, s)

	out := saveToString(t, tbl, h)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, export.Header, lines[0])
	assert.Contains(t, lines[1], "\ttest_range\t")
}

func TestTable_ScopeEndInvalidatesHandle(t *testing.T) {
	t.Parallel()

	tbl := handle.NewTable()
	h := tbl.Create()

	s := tbl.ScopeStart(h, "once")
	tbl.ScopeEnd(h, s)
	// Reusing an ended scope handle must not record again.
	tbl.ScopeEnd(h, s)

	out := saveToString(t, tbl, h)
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestTable_ScopeEndMismatchedProfiler(t *testing.T) {
	t.Parallel()

	tbl := handle.NewTable()
	a := tbl.Create()
	b := tbl.Create()

	s := tbl.ScopeStart(a, "misdirected")
	tbl.ScopeEnd(b, s)

	// Neither profiler gains an entry.
	assert.Equal(t, export.Header+"\n", saveToString(t, tbl, a))
	assert.Equal(t, export.Header+"\n", saveToString(t, tbl, b))
}

func TestTable_SaveOpenFailure(t *testing.T) {
	t.Parallel()

	tbl := handle.NewTable()
	h := tbl.Create()

	status := tbl.Save(h, filepath.Join(t.TempDir(), "missing", "trace.tsv"))
	assert.Equal(t, handle.StatusOpenFailed, status)
}

func TestTable_UnknownHandlesAreIgnored(t *testing.T) {
	t.Parallel()

	tbl := handle.NewTable()

	assert.Zero(t, tbl.ScopeStart(handle.ID(99), "nope"))
	tbl.ScopeEnd(handle.ID(99), handle.ID(100))
	tbl.Destroy(handle.ID(99))
}
