package profiler_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/scopetab/export"
	"go.jacobcolvin.com/scopetab/profiler"
)

// saveRows exports p into memory and returns the data rows split into fields,
// requiring a well-formed header.
func saveRows(t *testing.T, p *profiler.Profiler) [][]string {
	t.Helper()

	var buf export.Buffer

	err := p.Save(&buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.NotEmpty(t, lines)
	require.Equal(t, export.Header, lines[0])

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 4)

		rows = append(rows, fields)
	}

	return rows
}

func ticks(t *testing.T, row []string) (uint64, uint64) {
	t.Helper()

	start, err := strconv.ParseUint(row[2], 10, 64)
	require.NoError(t, err)

	end, err := strconv.ParseUint(row[3], 10, 64)
	require.NoError(t, err)

	return start, end
}

func TestProfiler_RecordedRangeIsOrdered(t *testing.T) {
	t.Parallel()

	p := profiler.New()

	s := p.StartScope("ordered")
	p.EndScope(s)

	rows := saveRows(t, p)
	require.Len(t, rows, 1)

	start, end := ticks(t, rows[0])
	assert.GreaterOrEqual(t, end, start)
	assert.NotZero(t, start)
}

func TestProfiler_DisableBetweenStartAndEndDropsScope(t *testing.T) {
	t.Parallel()

	p := profiler.New()

	s := p.StartScope("dropped")
	p.Disable()
	p.EndScope(s)

	assert.Empty(t, saveRows(t, p))
}

func TestProfiler_StartDisabledEndEnabledRecordsZeroDuration(t *testing.T) {
	t.Parallel()

	p := profiler.New()
	p.Disable()

	s := p.StartScope("clamped")
	require.Zero(t, s.Start)

	p.Enable()
	p.EndScope(s)

	rows := saveRows(t, p)
	require.Len(t, rows, 1)

	start, end := ticks(t, rows[0])
	assert.Equal(t, start, end)
	assert.NotZero(t, end)
}

func TestProfiler_ConcurrentRecording(t *testing.T) {
	t.Parallel()

	const (
		goroutines = 8
		cycles     = 100
	)

	p := profiler.New()

	var wg sync.WaitGroup
	for range goroutines {
		wg.Go(func() {
			for range cycles {
				s := p.StartScope("worker")
				p.EndScope(s)
			}
		})
	}

	wg.Wait()

	rows := saveRows(t, p)
	require.Len(t, rows, goroutines*cycles)

	perThread := map[string]int{}
	for _, row := range rows {
		perThread[row[0]]++

		start, end := ticks(t, row)
		assert.GreaterOrEqual(t, end, start)
		assert.Equal(t, "worker", row[1])
	}

	require.Len(t, perThread, goroutines)

	for tid, n := range perThread {
		assert.Equal(t, cycles, n, "thread %s", tid)
	}
}

func TestProfiler_SaveIsIdempotent(t *testing.T) {
	t.Parallel()

	p := profiler.New()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		s := p.StartScope(name)
		p.EndScope(s)
	}

	var first, second export.Buffer

	require.NoError(t, p.Save(&first))
	require.NoError(t, p.Save(&second))

	assert.Equal(t, first.String(), second.String())
}

func TestProfiler_RoundTrip(t *testing.T) {
	t.Parallel()

	p := profiler.New()

	s := p.StartScope("test_range")
	p.EndScope(s)

	var buf export.Buffer

	err := p.Save(&buf)
	require.NoError(t, err)

	// Header plus one row must exceed a trivial payload.
	assert.Greater(t, buf.Len(), 20)

	rows := saveRows(t, p)
	require.Len(t, rows, 1)
	assert.Equal(t, "test_range", rows[0][1])

	start, end := ticks(t, rows[0])
	assert.GreaterOrEqual(t, end, start)
}

func TestProfiler_EmptySaveEmitsHeaderOnly(t *testing.T) {
	t.Parallel()

	var buf export.Buffer

	err := profiler.New().Save(&buf)
	require.NoError(t, err)

	assert.Equal(t, export.Header+"\n", buf.String())
}

func TestProfiler_CreatedDisabledRecordsNothing(t *testing.T) {
	t.Parallel()

	cfg := profiler.NewConfig()
	cfg.TraceDisabled = true

	p := cfg.NewProfiler()
	require.False(t, p.Enabled())

	s := p.StartScope("never")
	p.EndScope(s)

	assert.Empty(t, saveRows(t, p))
}

func TestProfiler_EnableDisableToggles(t *testing.T) {
	t.Parallel()

	p := profiler.New()
	assert.True(t, p.Enabled())

	p.Disable()
	assert.False(t, p.Enabled())

	p.Enable()
	assert.True(t, p.Enabled())
}

func TestProfiler_DisabledStartScopeKeepsName(t *testing.T) {
	t.Parallel()

	p := profiler.New()
	p.Disable()

	s := p.StartScope("named")
	assert.Equal(t, "named", s.Name)
	assert.Zero(t, s.Start)
	assert.Zero(t, s.End)
}

func TestProfiler_CloseDropsSubsequentScopes(t *testing.T) {
	t.Parallel()

	p := profiler.New()

	s := p.StartScope("before_close")
	require.NoError(t, p.Close())

	// Must not panic; the scope is silently dropped.
	p.EndScope(s)

	assert.Empty(t, saveRows(t, p))
}

func TestProfiler_SaveFile(t *testing.T) {
	t.Parallel()

	p := profiler.New()

	s := p.StartScope("to_disk")
	p.EndScope(s)

	path := filepath.Join(t.TempDir(), "trace.tsv")
	require.NoError(t, p.SaveFile(path))

	var buf export.Buffer

	require.NoError(t, p.Save(&buf))
	assertFileEquals(t, path, buf.String())
}

func assertFileEquals(t *testing.T, path, want string) {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // Test-owned temp path.
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestProfiler_SaveFileBadPath(t *testing.T) {
	t.Parallel()

	err := profiler.New().SaveFile(filepath.Join(t.TempDir(), "missing", "trace.tsv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating trace file")
}
